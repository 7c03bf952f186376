package sync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	gosync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutrack/edutrack-sync/internal/merge"
	"github.com/edutrack/edutrack-sync/internal/models"
)

// fakeSource applies merges against an in-memory document.
type fakeSource struct {
	mu  gosync.Mutex
	doc models.Document
}

func newFakeSource(doc models.Document) *fakeSource {
	return &fakeSource{doc: doc}
}

func (f *fakeSource) Snapshot() models.Document {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.doc.Clone()
}

func (f *fakeSource) ApplyRemote(remote models.Document, scope merge.Scope) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.doc = merge.Merge(f.doc, remote, scope)
}

// memSnapshotStore is a shared in-memory object store two test nodes push to.
type memSnapshotStore struct {
	mu      gosync.Mutex
	latest  map[string][]byte
	baseURL string
}

func newMemSnapshotStore(baseURL string) *memSnapshotStore {
	return &memSnapshotStore{latest: make(map[string][]byte), baseURL: baseURL}
}

func (m *memSnapshotStore) Put(_ context.Context, projectID, snapshotID string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latest[projectID] = data
	return m.baseURL + "/" + snapshotID, nil
}

func (m *memSnapshotStore) Latest(_ context.Context, projectID string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latest[projectID], nil
}

// fakeBus delivers published messages to a single subscriber channel.
type fakeBus struct {
	mu           gosync.Mutex
	messages     chan string
	published    []string
	unsubscribed bool
}

func newFakeBus() *fakeBus {
	return &fakeBus{messages: make(chan string, 8)}
}

func (b *fakeBus) Publish(_ context.Context, message string) error {
	b.mu.Lock()
	b.published = append(b.published, message)
	b.mu.Unlock()
	b.messages <- message
	return nil
}

func (b *fakeBus) Subscribe(_ context.Context) (<-chan string, func(), error) {
	return b.messages, func() {
		b.mu.Lock()
		b.unsubscribed = true
		b.mu.Unlock()
	}, nil
}

func (b *fakeBus) publishedCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.published)
}

func docWith(students ...models.Student) models.Document {
	doc := models.DefaultDocument()
	doc.Students = students
	return doc
}

func mustJSON(t *testing.T, doc models.Document) []byte {
	t.Helper()
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	return raw
}

func TestPushStoresAndAnnounces(t *testing.T) {
	source := newFakeSource(docWith(models.Student{ID: "s1", Name: "Amina"}))
	snapshots := newMemSnapshotStore("http://node-a/snap")
	bus := newFakeBus()
	engine := NewEngine(source, snapshots, bus, nil, nil, EngineConfig{ProjectID: "school-1"})

	url, err := engine.Push(context.Background())

	require.NoError(t, err)
	assert.Contains(t, url, "http://node-a/snap/")
	require.Equal(t, 1, bus.publishedCount())
	a, ok := DecodeAnnouncement(bus.published[0])
	require.True(t, ok)
	assert.Equal(t, url, a.URL)
	assert.True(t, engine.Syncing())
}

func TestPullMergesLatestSnapshot(t *testing.T) {
	snapshots := newMemSnapshotStore("http://shared/snap")

	nodeA := newFakeSource(docWith(models.Student{ID: "s1", Name: "Amina"}))
	engineA := NewEngine(nodeA, snapshots, newFakeBus(), nil, nil, EngineConfig{ProjectID: "school-1"})
	_, err := engineA.Push(context.Background())
	require.NoError(t, err)

	nodeB := newFakeSource(docWith(models.Student{ID: "s2", Name: "Brian"}))
	engineB := NewEngine(nodeB, snapshots, newFakeBus(), nil, nil, EngineConfig{ProjectID: "school-1"})

	applied, err := engineB.Pull(context.Background())

	require.NoError(t, err)
	assert.True(t, applied)
	merged := nodeB.Snapshot()
	require.Len(t, merged.Students, 2)
}

func TestPullNoSnapshotYet(t *testing.T) {
	source := newFakeSource(models.DefaultDocument())
	engine := NewEngine(source, newMemSnapshotStore("http://x"), newFakeBus(), nil, nil, EngineConfig{ProjectID: "empty"})

	applied, err := engine.Pull(context.Background())

	require.NoError(t, err)
	assert.False(t, applied)
}

func TestAnnouncementFetchAndMerge(t *testing.T) {
	remoteDoc := docWith(models.Student{ID: "s9", Name: "Remote"})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(mustJSON(t, remoteDoc))
	}))
	defer server.Close()

	source := newFakeSource(docWith(models.Student{ID: "s1", Name: "Local"}))
	bus := newFakeBus()
	engine := NewEngine(source, newMemSnapshotStore("http://x"), bus, nil, nil, EngineConfig{ProjectID: "school-1"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	engine.Start(ctx)
	defer engine.Close()

	require.NoError(t, bus.Publish(ctx, Announcement{Kind: KindDataSync, URL: server.URL}.Encode()))

	require.Eventually(t, func() bool {
		return len(source.Snapshot().Students) == 2
	}, 3*time.Second, 20*time.Millisecond)
}

func TestCloseUnsubscribes(t *testing.T) {
	source := newFakeSource(models.DefaultDocument())
	bus := newFakeBus()
	engine := NewEngine(source, newMemSnapshotStore("http://x"), bus, nil, nil, EngineConfig{ProjectID: "school-1"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	engine.Start(ctx)
	engine.Close()

	bus.mu.Lock()
	defer bus.mu.Unlock()
	assert.True(t, bus.unsubscribed)
}

func TestSyncingFloorExpires(t *testing.T) {
	source := newFakeSource(models.DefaultDocument())
	engine := NewEngine(source, newMemSnapshotStore("http://x"), newFakeBus(), nil, nil, EngineConfig{
		ProjectID:    "school-1",
		SyncingFloor: 30 * time.Millisecond,
	})

	_, err := engine.Push(context.Background())
	require.NoError(t, err)
	assert.True(t, engine.Syncing())

	assert.Eventually(t, func() bool { return !engine.Syncing() }, time.Second, 10*time.Millisecond)
}
