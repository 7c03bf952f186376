package service

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edutrack/edutrack-sync/internal/ledger"
	"github.com/edutrack/edutrack-sync/internal/models"
	appErrors "github.com/edutrack/edutrack-sync/pkg/errors"
)

// AcademicService appends to the assessments log and serves derived report
// and analysis figures.
type AcademicService struct {
	docs      *DocumentService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAcademicService constructs AcademicService.
func NewAcademicService(docs *DocumentService, validate *validator.Validate, logger *zap.Logger) *AcademicService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AcademicService{docs: docs, validator: validate, logger: logger}
}

// RecordAssessmentRequest captures one score entry.
type RecordAssessmentRequest struct {
	StudentID string  `json:"studentId" validate:"required"`
	Subject   string  `json:"subject" validate:"required"`
	ExamType  string  `json:"examType" validate:"required,oneof=Opener Mid-Term End-Term"`
	Term      string  `json:"term" validate:"required,oneof=T1 T2 T3"`
	Score     float64 `json:"score" validate:"min=0,max=100"`
}

// RecordAssessment appends a score to the log. The referenced student must
// exist at creation time.
func (s *AcademicService) RecordAssessment(req RecordAssessmentRequest) (*models.Assessment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assessment payload")
	}
	if _, err := s.docs.GetStudent(req.StudentID); err != nil {
		return nil, err
	}

	assessment := models.Assessment{
		ID:        "ASM-" + uuid.NewString(),
		StudentID: req.StudentID,
		Subject:   req.Subject,
		ExamType:  req.ExamType,
		Term:      req.Term,
		Score:     req.Score,
		Date:      time.Now().Format("2006-01-02"),
	}
	err := s.docs.mutate(func(doc *models.Document) error {
		doc.Assessments = append(doc.Assessments, assessment)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

// VoidAssessment removes a score from the log.
func (s *AcademicService) VoidAssessment(id string) error {
	return s.docs.mutate(func(doc *models.Document) error {
		for i := range doc.Assessments {
			if doc.Assessments[i].ID == id {
				doc.Assessments = append(doc.Assessments[:i], doc.Assessments[i+1:]...)
				return nil
			}
		}
		return appErrors.Clone(appErrors.ErrNotFound, "assessment not found")
	})
}

// ReportCard derives one student's term report.
func (s *AcademicService) ReportCard(studentID, term, year string) (*ledger.StudentTermReport, error) {
	student, err := s.docs.GetStudent(studentID)
	if err != nil {
		return nil, err
	}
	doc := s.docs.Snapshot()
	report := ledger.Report(*student, doc.Assessments, term, year)
	return &report, nil
}

// Analysis derives the class standing for a grade and term.
func (s *AcademicService) Analysis(filter ledger.AnalysisFilter) ledger.ClassAnalysis {
	return ledger.Analyze(s.docs.Snapshot(), filter)
}

// TopRanking returns the best performers of an analysis run.
func (s *AcademicService) TopRanking(filter ledger.AnalysisFilter) []ledger.StudentTermReport {
	analysis := ledger.Analyze(s.docs.Snapshot(), filter)
	return ledger.TopRanking(analysis, filter)
}
