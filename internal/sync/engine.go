package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	gosync "sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edutrack/edutrack-sync/internal/merge"
	"github.com/edutrack/edutrack-sync/internal/models"
	appErrors "github.com/edutrack/edutrack-sync/pkg/errors"
	"github.com/edutrack/edutrack-sync/pkg/jobs"
)

// documentSource is the engine's view of the live document: a snapshot for
// pushing and a funnel for applying remote snapshots.
type documentSource interface {
	Snapshot() models.Document
	ApplyRemote(remote models.Document, scope merge.Scope)
}

// engineMetrics receives sync instrumentation.
type engineMetrics interface {
	ObserveSyncPush(ok bool)
	ObserveSyncPull(ok bool)
	ObserveAnnouncement()
	ObserveMergeFailure()
}

// EngineConfig tunes the synchronization channel.
type EngineConfig struct {
	ProjectID     string
	SyncingFloor  time.Duration
	FetchTimeout  time.Duration
	WorkerRetries int
}

// Engine is the cloud synchronization channel. Pushes serialize the whole
// document, store it remotely and announce the URL; the listener fetches
// announced snapshots and merges them in with scope all. No in-flight
// operation is serialized against another: whichever response lands last
// determines the final merged state, which the id-union merge rule makes
// safe for duplicate and out-of-order delivery of the same snapshot.
type Engine struct {
	source    documentSource
	snapshots SnapshotStore
	bus       Bus
	queue     *jobs.Queue
	client    *http.Client
	logger    *zap.Logger
	metrics   engineMetrics
	cfg       EngineConfig

	mu           gosync.Mutex
	syncingUntil time.Time
	unsubscribe  func()
}

// NewEngine wires the channel. metrics may be nil.
func NewEngine(source documentSource, snapshots SnapshotStore, bus Bus, metrics engineMetrics, logger *zap.Logger, cfg EngineConfig) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ProjectID == "" {
		cfg.ProjectID = "default"
	}
	if cfg.SyncingFloor <= 0 {
		cfg.SyncingFloor = 2 * time.Second
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 30 * time.Second
	}

	e := &Engine{
		source:    source,
		snapshots: snapshots,
		bus:       bus,
		client:    &http.Client{Timeout: cfg.FetchTimeout},
		logger:    logger,
		metrics:   metrics,
		cfg:       cfg,
	}
	e.queue = jobs.NewQueue("sync-announcements", e.handleAnnouncement, jobs.QueueConfig{
		Workers:    1,
		MaxRetries: cfg.WorkerRetries,
		Logger:     logger,
	})
	return e
}

// Start catches up from the latest remote snapshot, then subscribes to the
// announcement bus. Both steps degrade gracefully: a client with no network
// keeps working from local state alone.
func (e *Engine) Start(ctx context.Context) {
	e.queue.Start(ctx)

	if _, err := e.Pull(ctx); err != nil {
		e.logger.Warn("initial cloud sync skipped", zap.Error(err))
	}

	messages, unsubscribe, err := e.bus.Subscribe(ctx)
	if err != nil {
		e.logger.Warn("announcement channel unavailable, running offline", zap.Error(err))
		return
	}
	e.mu.Lock()
	e.unsubscribe = unsubscribe
	e.mu.Unlock()

	go func() {
		for raw := range messages {
			announcement, ok := DecodeAnnouncement(raw)
			if !ok {
				continue
			}
			if e.metrics != nil {
				e.metrics.ObserveAnnouncement()
			}
			job := jobs.Job{ID: uuid.NewString(), Type: "fetch-snapshot", Payload: announcement.URL}
			if err := e.queue.Enqueue(job); err != nil {
				e.logger.Warn("dropping announcement", zap.Error(err))
			}
		}
	}()
}

// Close unsubscribes from the bus and stops the worker queue.
func (e *Engine) Close() {
	e.mu.Lock()
	unsubscribe := e.unsubscribe
	e.unsubscribe = nil
	e.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
	e.queue.Stop()
}

// Push uploads the current document as a project snapshot and announces it.
func (e *Engine) Push(ctx context.Context) (string, error) {
	doc := e.source.Snapshot()
	raw, err := json.Marshal(doc)
	if err != nil {
		e.observePush(false)
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode snapshot")
	}

	url, err := e.snapshots.Put(ctx, e.cfg.ProjectID, uuid.NewString(), raw)
	if err != nil {
		e.observePush(false)
		return "", appErrors.Wrap(err, appErrors.ErrSyncUnavailable.Code, appErrors.ErrSyncUnavailable.Status, "upload snapshot")
	}

	if err := e.bus.Publish(ctx, Announcement{Kind: KindDataSync, URL: url}.Encode()); err != nil {
		// The snapshot is stored; peers will still catch up on their next
		// pull even though the announcement was lost.
		e.logger.Warn("snapshot announced nowhere", zap.Error(err))
	}

	e.markSyncing()
	e.observePush(true)
	return url, nil
}

// Pull fetches the latest remote snapshot and merges it in. It returns false
// when the project has no snapshot yet. Failures are surfaced to the caller
// but safe to swallow: the local document stays authoritative.
func (e *Engine) Pull(ctx context.Context) (bool, error) {
	raw, err := e.snapshots.Latest(ctx, e.cfg.ProjectID)
	if err != nil {
		e.observePull(false)
		return false, err
	}
	if raw == nil {
		return false, nil
	}

	remote, err := decodeDocument(raw)
	if err != nil {
		e.observePull(false)
		return false, err
	}
	e.source.ApplyRemote(remote, merge.ScopeAll)
	e.observePull(true)
	return true, nil
}

// Syncing reports whether the visible syncing indicator should be on. The
// state is held for a floor duration after each sync regardless of actual
// latency; it exists for user feedback, not correctness.
func (e *Engine) Syncing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return time.Now().Before(e.syncingUntil)
}

func (e *Engine) handleAnnouncement(ctx context.Context, job jobs.Job) error {
	url, _ := job.Payload.(string)
	if url == "" {
		return nil
	}

	e.markSyncing()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("snapshot fetch returned %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	remote, err := decodeDocument(raw)
	if err != nil {
		if e.metrics != nil {
			e.metrics.ObserveMergeFailure()
		}
		return err
	}

	e.source.ApplyRemote(remote, merge.ScopeAll)
	return nil
}

func (e *Engine) markSyncing() {
	e.mu.Lock()
	defer e.mu.Unlock()
	until := time.Now().Add(e.cfg.SyncingFloor)
	if until.After(e.syncingUntil) {
		e.syncingUntil = until
	}
}

func (e *Engine) observePush(ok bool) {
	if e.metrics != nil {
		e.metrics.ObserveSyncPush(ok)
	}
}

func (e *Engine) observePull(ok bool) {
	if e.metrics != nil {
		e.metrics.ObserveSyncPull(ok)
	}
}

func decodeDocument(raw []byte) (models.Document, error) {
	doc := models.DefaultDocument()
	if err := json.Unmarshal(raw, &doc); err != nil {
		return models.Document{}, appErrors.Wrap(err, appErrors.ErrParse.Code, appErrors.ErrParse.Status, "decode remote snapshot")
	}
	return doc, nil
}
