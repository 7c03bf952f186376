package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutrack/edutrack-sync/internal/ledger"
	"github.com/edutrack/edutrack-sync/internal/merge"
	"github.com/edutrack/edutrack-sync/internal/service"
	appErrors "github.com/edutrack/edutrack-sync/pkg/errors"
	"github.com/edutrack/edutrack-sync/pkg/response"
)

// Uploaded import files are read fully into memory; documents are small.
const maxImportBytes = 32 << 20

type transferService interface {
	Export(scope merge.Scope) (*service.ExportResult, error)
	Import(scope merge.Scope, raw []byte) error
	ReportCardPDF(studentID, term, year string) (*service.ExportResult, error)
	ClassAnalysisCSV(filter ledger.AnalysisFilter) (*service.ExportResult, error)
}

// TransferHandler exposes granular file export and import plus printable
// renders.
type TransferHandler struct {
	transfers transferService
}

// NewTransferHandler constructs TransferHandler.
func NewTransferHandler(transfers transferService) *TransferHandler {
	return &TransferHandler{transfers: transfers}
}

// Export godoc
// @Summary Export a scoped document subset as JSON
// @Tags Transfer
// @Produce json
// @Param scope path string true "Export scope" Enums(students, assessments, senior-school, academic-full)
// @Success 200 {string} string "Export file"
// @Router /transfer/export/{scope} [get]
func (h *TransferHandler) Export(c *gin.Context) {
	result, err := h.transfers.Export(merge.Scope(c.Param("scope")))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, "application/json", result.Bytes)
}

// Import godoc
// @Summary Import a scoped JSON file into the document
// @Tags Transfer
// @Accept multipart/form-data
// @Produce json
// @Param scope path string true "Import scope" Enums(all, students, assessments, senior-school, academic-full)
// @Param file formData file true "Data file"
// @Success 200 {object} response.Envelope
// @Router /transfer/import/{scope} [post]
func (h *TransferHandler) Import(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "missing data file"))
		return
	}
	defer file.Close() //nolint:errcheck

	raw, err := io.ReadAll(io.LimitReader(file, maxImportBytes))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "could not read data file"))
		return
	}
	if err := h.transfers.Import(merge.Scope(c.Param("scope")), raw); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"imported": true}, nil)
}

// ReportCardPDF godoc
// @Summary Printable student report card
// @Tags Transfer
// @Produce application/pdf
// @Param id path string true "Student ID"
// @Param term query string true "Term (T1, T2, T3)"
// @Param year query string false "Academic year"
// @Success 200 {string} string "PDF file"
// @Router /students/{id}/report/pdf [get]
func (h *TransferHandler) ReportCardPDF(c *gin.Context) {
	result, err := h.transfers.ReportCardPDF(c.Param("id"), c.Query("term"), c.Query("year"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", result.Bytes)
}

// ClassAnalysisCSV godoc
// @Summary Class analysis as CSV
// @Tags Transfer
// @Produce text/csv
// @Param grade query string true "Grade"
// @Param term query string true "Term (T1, T2, T3)"
// @Success 200 {string} string "CSV file"
// @Router /analysis/csv [get]
func (h *TransferHandler) ClassAnalysisCSV(c *gin.Context) {
	result, err := h.transfers.ClassAnalysisCSV(analysisFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, "text/csv", result.Bytes)
}
