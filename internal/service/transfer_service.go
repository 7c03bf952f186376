package service

import (
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/edutrack/edutrack-sync/internal/ledger"
	"github.com/edutrack/edutrack-sync/internal/merge"
	"github.com/edutrack/edutrack-sync/internal/models"
	appErrors "github.com/edutrack/edutrack-sync/pkg/errors"
	"github.com/edutrack/edutrack-sync/pkg/export"
)

// exportWriter stores rendered export files.
type exportWriter interface {
	Write(name string, data []byte) (string, error)
}

// TransferService moves scoped document subsets in and out as files:
// granular JSON export/import between clients and printable CSV/PDF renders
// of derived figures.
type TransferService struct {
	docs     *DocumentService
	academic *AcademicService
	files    exportWriter
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewTransferService constructs TransferService.
func NewTransferService(docs *DocumentService, academic *AcademicService, files exportWriter, logger *zap.Logger) *TransferService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransferService{
		docs:     docs,
		academic: academic,
		files:    files,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// ExportResult describes a produced export file.
type ExportResult struct {
	Filename string `json:"filename"`
	Bytes    []byte `json:"-"`
}

// Export renders the subset named by scope as a JSON file. The filename
// embeds the export type and the current date.
func (s *TransferService) Export(scope merge.Scope) (*ExportResult, error) {
	if !merge.ValidScope(scope) || scope == merge.ScopeAll {
		return nil, appErrors.Clone(appErrors.ErrInvalidScope, fmt.Sprintf("unknown export type %q", scope))
	}

	doc := s.docs.Snapshot()
	subset := models.Document{}
	switch scope {
	case merge.ScopeStudents:
		subset.Students = doc.Students
	case merge.ScopeSeniorSchool:
		subset.Students = seniorOnly(doc.Students)
	case merge.ScopeAssessments:
		subset.Assessments = doc.Assessments
		subset.Remarks = doc.Remarks
	case merge.ScopeAcademicFull:
		subset.Students = doc.Students
		subset.Assessments = doc.Assessments
		subset.Remarks = doc.Remarks
	}

	raw, err := json.MarshalIndent(exportEnvelope(subset), "", "  ")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode export")
	}

	filename := fmt.Sprintf("edutrack_%s_%s.json", scope, time.Now().Format("2006-01-02"))
	if s.files != nil {
		if _, err := s.files.Write(filename, raw); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "write export file")
		}
	}
	return &ExportResult{Filename: filename, Bytes: raw}, nil
}

// Import parses a user-supplied JSON file and merges it into the live
// document under the declared scope. Malformed JSON surfaces a parse error
// and leaves the document untouched.
func (s *TransferService) Import(scope merge.Scope, raw []byte) error {
	if !merge.ValidScope(scope) {
		return appErrors.Clone(appErrors.ErrInvalidScope, fmt.Sprintf("unknown import type %q", scope))
	}

	var incoming models.Document
	if err := json.Unmarshal(raw, &incoming); err != nil {
		return appErrors.Wrap(err, appErrors.ErrParse.Code, appErrors.ErrParse.Status, "could not parse data file")
	}

	s.docs.ApplyRemote(incoming, scope)
	return nil
}

// ReportCardPDF renders one student's term report as a printable PDF.
func (s *TransferService) ReportCardPDF(studentID, term, year string) (*ExportResult, error) {
	student, err := s.docs.GetStudent(studentID)
	if err != nil {
		return nil, err
	}
	report, err := s.academic.ReportCard(studentID, term, year)
	if err != nil {
		return nil, err
	}
	settings := s.docs.Settings()

	dataset := export.Dataset{
		Headers: []string{"Learning Area", "Opener", "Mid", "End", "Average", "Level", "Pts"},
	}
	for _, subject := range report.Subjects {
		row := map[string]string{
			"Learning Area": subject.Subject,
			"Opener":        formatScore(subject.Scores[models.ExamOpener]),
			"Mid":           formatScore(subject.Scores[models.ExamMidTerm]),
			"End":           formatScore(subject.Scores[models.ExamEndTerm]),
			"Average":       formatScore(subject.Average),
			"Level":         "-",
			"Pts":           "-",
		}
		if subject.Average != nil {
			band := ledger.BandFor(*subject.Average)
			row["Level"] = band.Level
			row["Pts"] = fmt.Sprintf("%d", band.Points)
		}
		dataset.Rows = append(dataset.Rows, row)
	}

	title := settings.SchoolName
	subtitles := []string{
		fmt.Sprintf("Progressive Student Report - %s", term),
		fmt.Sprintf("%s  |  %s  |  Adm No. %s", student.Name, student.Grade, student.AdmissionNo),
		fmt.Sprintf("Overall Average: %.0f%%  |  %s  |  %d points", report.OverallAverage, report.Performance.Level, report.TotalPoints),
	}
	raw, err := s.pdf.Render(dataset, title, subtitles...)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render report card")
	}

	filename := fmt.Sprintf("edutrack_report_%s_%s.pdf", student.AdmissionNo, time.Now().Format("2006-01-02"))
	if s.files != nil {
		if _, err := s.files.Write(filename, raw); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "write report card")
		}
	}
	return &ExportResult{Filename: filename, Bytes: raw}, nil
}

// ClassAnalysisCSV renders per-subject class means for a grade and term.
func (s *TransferService) ClassAnalysisCSV(filter ledger.AnalysisFilter) (*ExportResult, error) {
	analysis := s.academic.Analysis(filter)

	dataset := export.Dataset{
		Headers: []string{"Subject", "Opener", "Mid-Term", "End-Term", "Average"},
	}
	for _, subject := range analysis.Subjects {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Subject":  subject.Subject,
			"Opener":   formatScore(subject.Opener),
			"Mid-Term": formatScore(subject.MidTerm),
			"End-Term": formatScore(subject.EndTerm),
			"Average":  formatScore(subject.Average),
		})
	}

	raw, err := s.csv.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render class analysis")
	}

	filename := fmt.Sprintf("edutrack_analysis_%s_%s_%s.csv", sanitize(filter.Grade), filter.Term, time.Now().Format("2006-01-02"))
	if s.files != nil {
		if _, err := s.files.Write(filename, raw); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "write class analysis")
		}
	}
	return &ExportResult{Filename: filename, Bytes: raw}, nil
}

// exportEnvelope trims the subset to only the populated collections so the
// produced file carries no empty keys.
func exportEnvelope(subset models.Document) map[string]interface{} {
	out := make(map[string]interface{})
	if subset.Students != nil {
		out["students"] = subset.Students
	}
	if subset.Assessments != nil {
		out["assessments"] = subset.Assessments
	}
	if subset.Remarks != nil {
		out["remarks"] = subset.Remarks
	}
	return out
}

func seniorOnly(students []models.Student) []models.Student {
	senior := make(map[string]struct{}, len(merge.SeniorGrades))
	for _, g := range merge.SeniorGrades {
		senior[g] = struct{}{}
	}
	out := make([]models.Student, 0)
	for _, st := range students {
		if _, ok := senior[st.Grade]; ok {
			out = append(out, st)
		}
	}
	return out
}

func formatScore(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f", *v)
}

func sanitize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == ' ' || r == '/' {
			out = append(out, '-')
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
