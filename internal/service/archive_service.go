package service

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edutrack/edutrack-sync/internal/models"
	appErrors "github.com/edutrack/edutrack-sync/pkg/errors"
)

// ArchiveService peels frozen academic snapshots off the live document at
// year end. Archives are read-only afterwards: they are never merged into
// and never mutated.
type ArchiveService struct {
	docs      *DocumentService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewArchiveService constructs ArchiveService.
func NewArchiveService(docs *DocumentService, validate *validator.Validate, logger *zap.Logger) *ArchiveService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArchiveService{docs: docs, validator: validate, logger: logger}
}

// ArchiveYearRequest closes an academic year.
type ArchiveYearRequest struct {
	AcademicYear string `json:"academicYear" validate:"required"`
	// ResetLogs clears the assessment and payment logs and remarks after
	// archiving, the usual year-end rollover.
	ResetLogs bool `json:"resetLogs"`
}

// ArchiveYear freezes the academic subset of the document under the given
// year tag.
func (s *ArchiveService) ArchiveYear(req ArchiveYearRequest) (*models.Archive, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid archive payload")
	}

	var archive models.Archive
	err := s.docs.mutate(func(doc *models.Document) error {
		for _, a := range doc.Archives {
			if a.AcademicYear == req.AcademicYear {
				return appErrors.Clone(appErrors.ErrConflict, "academic year already archived")
			}
		}
		frozen := doc.Clone()
		archive = models.Archive{
			ID:           "ARC-" + uuid.NewString(),
			AcademicYear: req.AcademicYear,
			ArchivedAt:   time.Now().Format(time.RFC3339),
			Snapshot: models.ArchiveSnapshot{
				Students:    frozen.Students,
				Assessments: frozen.Assessments,
				Payments:    frozen.Payments,
				Remarks:     frozen.Remarks,
			},
		}
		doc.Archives = append(doc.Archives, archive)
		if req.ResetLogs {
			doc.Assessments = []models.Assessment{}
			doc.Payments = []models.Payment{}
			doc.Remarks = []models.Remark{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &archive, nil
}

// List returns archive tags newest-last, without their snapshots.
func (s *ArchiveService) List() []models.Archive {
	doc := s.docs.Snapshot()
	out := make([]models.Archive, 0, len(doc.Archives))
	for _, a := range doc.Archives {
		a.Snapshot = models.ArchiveSnapshot{}
		out = append(out, a)
	}
	return out
}

// Get returns one archive including its frozen snapshot.
func (s *ArchiveService) Get(id string) (*models.Archive, error) {
	doc := s.docs.Snapshot()
	for _, a := range doc.Archives {
		if a.ID == id {
			out := a
			return &out, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "archive not found")
}
