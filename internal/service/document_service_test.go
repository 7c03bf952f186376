package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutrack/edutrack-sync/internal/merge"
	"github.com/edutrack/edutrack-sync/internal/models"
	appErrors "github.com/edutrack/edutrack-sync/pkg/errors"
)

type mockPersister struct {
	saved []models.Document
	err   error
}

func (m *mockPersister) Save(doc models.Document) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, doc.Clone())
	return nil
}

func newDocs(t *testing.T) (*DocumentService, *mockPersister) {
	t.Helper()
	persister := &mockPersister{}
	return NewDocumentService(models.DefaultDocument(), persister, nil, nil), persister
}

func TestCreateStudentPersists(t *testing.T) {
	docs, persister := newDocs(t)

	student, err := docs.CreateStudent(CreateStudentRequest{
		Name: "Amina Odhiambo", Grade: "GRADE 4", AdmissionNo: "001",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, student.ID)
	require.Len(t, persister.saved, 1)
	require.Len(t, persister.saved[0].Students, 1)
}

func TestCreateStudentValidation(t *testing.T) {
	docs, persister := newDocs(t)

	_, err := docs.CreateStudent(CreateStudentRequest{Name: "No Grade"})

	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Empty(t, persister.saved)
}

func TestUpdateStudentNotFound(t *testing.T) {
	docs, _ := newDocs(t)

	_, err := docs.UpdateStudent("missing", UpdateStudentRequest{
		Name: "X", Grade: "GRADE 4", AdmissionNo: "002",
	})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDeleteStudent(t *testing.T) {
	docs, _ := newDocs(t)
	student, err := docs.CreateStudent(CreateStudentRequest{Name: "A", Grade: "GRADE 4", AdmissionNo: "001"})
	require.NoError(t, err)

	require.NoError(t, docs.DeleteStudent(student.ID))

	_, err = docs.GetStudent(student.ID)
	assert.Error(t, err)
}

func TestListStudentsFilterAndPaginate(t *testing.T) {
	docs, _ := newDocs(t)
	for _, s := range []CreateStudentRequest{
		{Name: "Amina", Grade: "GRADE 4", AdmissionNo: "001"},
		{Name: "Brian", Grade: "GRADE 4", AdmissionNo: "002"},
		{Name: "Carol", Grade: "GRADE 5", AdmissionNo: "003"},
	} {
		_, err := docs.CreateStudent(s)
		require.NoError(t, err)
	}

	page, pagination := docs.ListStudents(models.StudentFilter{Grade: "GRADE 4", Page: 1, Limit: 1})
	require.Len(t, page, 1)
	assert.Equal(t, 2, pagination.TotalItems)
	assert.Equal(t, 2, pagination.TotalPages)

	bySearch, _ := docs.ListStudents(models.StudentFilter{Search: "003"})
	require.Len(t, bySearch, 1)
	assert.Equal(t, "Carol", bySearch[0].Name)
}

func TestApplyRemoteIdempotent(t *testing.T) {
	docs, persister := newDocs(t)
	remote := models.DefaultDocument()
	remote.Students = []models.Student{{ID: "s1", Name: "Amina"}}

	docs.ApplyRemote(remote, merge.ScopeAll)
	docs.ApplyRemote(remote, merge.ScopeAll)

	snap := docs.Snapshot()
	require.Len(t, snap.Students, 1)
	assert.Len(t, persister.saved, 2)
}

func TestSaveFailureKeepsMutation(t *testing.T) {
	persister := &mockPersister{err: appErrors.ErrStorage}
	docs := NewDocumentService(models.DefaultDocument(), persister, nil, nil)

	student, err := docs.CreateStudent(CreateStudentRequest{Name: "A", Grade: "GRADE 4", AdmissionNo: "001"})

	require.NoError(t, err)
	_, err = docs.GetStudent(student.ID)
	assert.NoError(t, err)
}

func TestSnapshotIsDetached(t *testing.T) {
	docs, _ := newDocs(t)
	_, err := docs.CreateStudent(CreateStudentRequest{Name: "A", Grade: "GRADE 4", AdmissionNo: "001"})
	require.NoError(t, err)

	snap := docs.Snapshot()
	snap.Students[0].Name = "mutated"

	fresh := docs.Snapshot()
	assert.Equal(t, "A", fresh.Students[0].Name)
}

func TestUpsertRemarkReplaces(t *testing.T) {
	docs, _ := newDocs(t)

	_, err := docs.UpsertRemark(UpsertRemarkRequest{StudentID: "s1", Teacher: "first"})
	require.NoError(t, err)
	_, err = docs.UpsertRemark(UpsertRemarkRequest{StudentID: "s1", Teacher: "second"})
	require.NoError(t, err)

	remark := docs.Remarks("s1")
	assert.Equal(t, "second", remark.Teacher)
	snap := docs.Snapshot()
	assert.Len(t, snap.Remarks, 1)
}

func TestUpdateSettingsRoundTrip(t *testing.T) {
	docs, _ := newDocs(t)
	settings := docs.Settings()
	settings.SchoolName = "Hilltop Academy"

	_, err := docs.UpdateSettings(settings)
	require.NoError(t, err)

	assert.Equal(t, "Hilltop Academy", docs.Settings().SchoolName)
}
