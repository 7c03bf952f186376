package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutrack/edutrack-sync/internal/ledger"
	"github.com/edutrack/edutrack-sync/internal/merge"
	"github.com/edutrack/edutrack-sync/internal/models"
	appErrors "github.com/edutrack/edutrack-sync/pkg/errors"
)

func transferFixture(t *testing.T) (*TransferService, *DocumentService) {
	t.Helper()
	initial := models.DefaultDocument()
	initial.Students = []models.Student{
		{ID: "s1", Name: "Amina", Grade: "GRADE 4", AdmissionNo: "001"},
		{ID: "s2", Name: "Brian", Grade: "GRADE 11", AdmissionNo: "002"},
	}
	initial.Assessments = []models.Assessment{
		{ID: "a1", StudentID: "s1", Subject: "Mathematics", ExamType: models.ExamOpener, Term: "T1", Score: 80},
	}
	initial.Remarks = []models.Remark{{StudentID: "s1", Teacher: "solid term"}}
	docs := NewDocumentService(initial, nil, nil, nil)
	academics := NewAcademicService(docs, nil, nil)
	return NewTransferService(docs, academics, nil, nil), docs
}

func TestExportStudentsScope(t *testing.T) {
	transfers, _ := transferFixture(t)

	result, err := transfers.Export(merge.ScopeStudents)

	require.NoError(t, err)
	assert.Contains(t, result.Filename, "edutrack_students_")

	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(result.Bytes, &payload))
	assert.Contains(t, payload, "students")
	assert.NotContains(t, payload, "assessments")
}

func TestExportSeniorSchoolFilters(t *testing.T) {
	transfers, _ := transferFixture(t)

	result, err := transfers.Export(merge.ScopeSeniorSchool)

	require.NoError(t, err)
	var payload struct {
		Students []models.Student `json:"students"`
	}
	require.NoError(t, json.Unmarshal(result.Bytes, &payload))
	require.Len(t, payload.Students, 1)
	assert.Equal(t, "s2", payload.Students[0].ID)
}

func TestExportRejectsAllScope(t *testing.T) {
	transfers, _ := transferFixture(t)

	_, err := transfers.Export(merge.ScopeAll)

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidScope.Code, appErrors.FromError(err).Code)
}

func TestImportMergesSubset(t *testing.T) {
	transfers, docs := transferFixture(t)
	raw := []byte(`{"students":[{"id":"s3","name":"Carol","grade":"GRADE 4","admissionNo":"003"}]}`)

	require.NoError(t, transfers.Import(merge.ScopeStudents, raw))

	snap := docs.Snapshot()
	assert.Len(t, snap.Students, 3)
}

func TestImportMalformedLeavesDocumentUntouched(t *testing.T) {
	transfers, docs := transferFixture(t)
	before := docs.Snapshot()

	err := transfers.Import(merge.ScopeStudents, []byte("{broken"))

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrParse.Code, appErrors.FromError(err).Code)
	assert.Equal(t, before, docs.Snapshot())
}

func TestImportUnknownScope(t *testing.T) {
	transfers, _ := transferFixture(t)

	err := transfers.Import(merge.Scope("everything"), []byte("{}"))

	assert.Equal(t, appErrors.ErrInvalidScope.Code, appErrors.FromError(err).Code)
}

func TestReportCardPDFRenders(t *testing.T) {
	transfers, _ := transferFixture(t)

	result, err := transfers.ReportCardPDF("s1", "T1", "")

	require.NoError(t, err)
	assert.Contains(t, result.Filename, "edutrack_report_001_")
	assert.NotEmpty(t, result.Bytes)
}

func TestClassAnalysisCSVRenders(t *testing.T) {
	transfers, _ := transferFixture(t)

	result, err := transfers.ClassAnalysisCSV(ledger.AnalysisFilter{Grade: "GRADE 4", Term: "T1"})

	require.NoError(t, err)
	assert.Contains(t, string(result.Bytes), "Mathematics")
	assert.Contains(t, result.Filename, "edutrack_analysis_GRADE-4_T1_")
}
