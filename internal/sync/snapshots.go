package sync

import (
	"context"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/edutrack/edutrack-sync/pkg/storage"
)

// SnapshotStore is the project-scoped object storage snapshots are pushed
// to. Put returns a URL any peer can fetch the snapshot from; Latest returns
// the newest snapshot bytes for the project, or nil when none exists yet.
type SnapshotStore interface {
	Put(ctx context.Context, projectID, snapshotID string, data []byte) (string, error)
	Latest(ctx context.Context, projectID string) ([]byte, error)
}

// BlobSnapshotStore keeps snapshots in a disk blob store and hands out
// HMAC-signed download URLs served by this node's own snapshot endpoint.
type BlobSnapshotStore struct {
	blobs   *storage.DiskStore
	signer  *storage.SignedURLSigner
	baseURL string
}

// NewBlobSnapshotStore builds the store. baseURL is the externally reachable
// prefix of the snapshot download endpoint, e.g.
// "http://host:8080/api/v1/sync/snapshots".
func NewBlobSnapshotStore(blobs *storage.DiskStore, signer *storage.SignedURLSigner, baseURL string) *BlobSnapshotStore {
	return &BlobSnapshotStore{blobs: blobs, signer: signer, baseURL: baseURL}
}

// Put writes the snapshot object and a per-project latest pointer, then
// returns the signed fetch URL.
func (s *BlobSnapshotStore) Put(_ context.Context, projectID, snapshotID string, data []byte) (string, error) {
	relPath := path.Join(projectID, snapshotID+".json")
	if _, err := s.blobs.Write(relPath, data); err != nil {
		return "", fmt.Errorf("store snapshot: %w", err)
	}
	if _, err := s.blobs.Write(path.Join(projectID, "latest.json"), data); err != nil {
		return "", fmt.Errorf("store latest snapshot: %w", err)
	}

	token, _, err := s.signer.Generate(snapshotID, relPath)
	if err != nil {
		return "", fmt.Errorf("sign snapshot url: %w", err)
	}
	return s.baseURL + "/" + token, nil
}

// Latest returns the newest snapshot for the project, nil when the project
// has never pushed.
func (s *BlobSnapshotStore) Latest(_ context.Context, projectID string) ([]byte, error) {
	relPath := path.Join(projectID, "latest.json")
	if !s.blobs.Exists(relPath) {
		return nil, nil
	}
	data, err := s.blobs.Read(relPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read latest snapshot: %w", err)
	}
	return data, nil
}

// Open resolves a signed token to the snapshot bytes. Used by the download
// endpoint peers hit after an announcement.
func (s *BlobSnapshotStore) Open(token string) ([]byte, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, err
	}
	return s.blobs.Read(relPath)
}

// CleanupOlderThan prunes aged snapshot objects. The latest pointer is
// rewritten on every push, so it survives any reasonable TTL.
func (s *BlobSnapshotStore) CleanupOlderThan(ttl time.Duration) ([]string, error) {
	return s.blobs.CleanupOlderThan(ttl)
}
