// Package store persists the whole document to a single local slot. It is
// the only durable state a client owns; everything else is derived or
// fetched.
package store

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/edutrack/edutrack-sync/internal/models"
	appErrors "github.com/edutrack/edutrack-sync/pkg/errors"
	"github.com/edutrack/edutrack-sync/pkg/storage"
)

// DocumentStore loads and saves the document against one well-known blob.
type DocumentStore struct {
	blobs  *storage.DiskStore
	slot   string
	logger *zap.Logger
}

// New constructs a store over the given blob directory and slot name.
func New(blobs *storage.DiskStore, slot string, logger *zap.Logger) *DocumentStore {
	if slot == "" {
		slot = "document.json"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentStore{blobs: blobs, slot: slot, logger: logger}
}

// Load returns the last persisted document. An empty or unreadable slot
// yields the default document; Load never surfaces an error to callers. A
// client with no history is simply a fresh client.
func (s *DocumentStore) Load() models.Document {
	if !s.blobs.Exists(s.slot) {
		return models.DefaultDocument()
	}
	raw, err := s.blobs.Read(s.slot)
	if err != nil {
		s.logger.Warn("document slot unreadable, starting fresh", zap.Error(err))
		return models.DefaultDocument()
	}
	doc := models.DefaultDocument()
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.Warn("document slot corrupt, starting fresh", zap.Error(err))
		return models.DefaultDocument()
	}
	normalize(&doc)
	return doc
}

// Save persists the entire document, overwriting prior state. Failure (a
// full disk, a permission change) is recoverable: the caller keeps operating
// on the in-memory document and the previously persisted state stays intact.
func (s *DocumentStore) Save(doc models.Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "encode document")
	}
	if _, err := s.blobs.Write(s.slot, raw); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "persist document")
	}
	return nil
}

// normalize replaces absent collections with empty ones so downstream code
// never distinguishes a missing key from an empty collection.
func normalize(doc *models.Document) {
	if doc.Students == nil {
		doc.Students = []models.Student{}
	}
	if doc.Teachers == nil {
		doc.Teachers = []models.Teacher{}
	}
	if doc.Staff == nil {
		doc.Staff = []models.StaffMember{}
	}
	if doc.Assessments == nil {
		doc.Assessments = []models.Assessment{}
	}
	if doc.Payments == nil {
		doc.Payments = []models.Payment{}
	}
	if doc.Remarks == nil {
		doc.Remarks = []models.Remark{}
	}
	if doc.Timetables == nil {
		doc.Timetables = []models.TimetableEntry{}
	}
	if doc.Archives == nil {
		doc.Archives = []models.Archive{}
	}
}
