package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edutrack/edutrack-sync/internal/models"
	"github.com/edutrack/edutrack-sync/pkg/storage"
)

func newTestStore(t *testing.T) *DocumentStore {
	t.Helper()
	blobs, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	return New(blobs, "document.json", zap.NewNop())
}

func TestLoadFreshClientGetsDefaults(t *testing.T) {
	s := newTestStore(t)

	doc := s.Load()

	assert.Empty(t, doc.Students)
	assert.NotNil(t, doc.Students)
	assert.Equal(t, models.DefaultSettings().Currency, doc.Settings.Currency)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	doc := models.DefaultDocument()
	doc.Students = []models.Student{{ID: "s1", Name: "Amina", Grade: "GRADE 4", AdmissionNo: "001"}}
	doc.Payments = []models.Payment{{ID: "p1", StudentID: "s1", Amount: 4000, Items: map[string]float64{"t1": 4000}}}
	require.NoError(t, s.Save(doc))

	loaded := s.Load()

	require.Len(t, loaded.Students, 1)
	assert.Equal(t, "Amina", loaded.Students[0].Name)
	require.Len(t, loaded.Payments, 1)
	assert.Equal(t, 4000.0, loaded.Payments[0].Items["t1"])
}

func TestLoadCorruptSlotStartsFresh(t *testing.T) {
	dir := t.TempDir()
	blobs, err := storage.NewDiskStore(dir)
	require.NoError(t, err)
	_, err = blobs.Write("document.json", []byte("{not json"))
	require.NoError(t, err)

	s := New(blobs, "document.json", zap.NewNop())
	doc := s.Load()

	assert.Empty(t, doc.Students)
	assert.Equal(t, models.DefaultSettings().SchoolName, doc.Settings.SchoolName)
}

func TestLoadNormalizesMissingCollections(t *testing.T) {
	dir := t.TempDir()
	blobs, err := storage.NewDiskStore(dir)
	require.NoError(t, err)
	_, err = blobs.Write("document.json", []byte(`{"students":[{"id":"s1","name":"A","admissionNo":"1","grade":"GRADE 4"}]}`))
	require.NoError(t, err)

	s := New(blobs, "document.json", zap.NewNop())
	doc := s.Load()

	require.Len(t, doc.Students, 1)
	assert.NotNil(t, doc.Payments)
	assert.NotNil(t, doc.Remarks)
	assert.NotNil(t, doc.Archives)
}
