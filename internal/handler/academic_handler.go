package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edutrack/edutrack-sync/internal/ledger"
	"github.com/edutrack/edutrack-sync/internal/models"
	"github.com/edutrack/edutrack-sync/internal/service"
	appErrors "github.com/edutrack/edutrack-sync/pkg/errors"
	"github.com/edutrack/edutrack-sync/pkg/response"
)

type academicService interface {
	RecordAssessment(req service.RecordAssessmentRequest) (*models.Assessment, error)
	VoidAssessment(id string) error
	ReportCard(studentID, term, year string) (*ledger.StudentTermReport, error)
	Analysis(filter ledger.AnalysisFilter) ledger.ClassAnalysis
	TopRanking(filter ledger.AnalysisFilter) []ledger.StudentTermReport
}

type remarkService interface {
	UpsertRemark(req service.UpsertRemarkRequest) (*models.Remark, error)
	Remarks(studentID string) models.Remark
}

// AcademicHandler exposes the assessments log, remarks and derived figures.
type AcademicHandler struct {
	academic academicService
	remarks  remarkService
}

// NewAcademicHandler constructs AcademicHandler.
func NewAcademicHandler(academic academicService, remarks remarkService) *AcademicHandler {
	return &AcademicHandler{academic: academic, remarks: remarks}
}

// Record godoc
// @Summary Record assessment score
// @Tags Academics
// @Accept json
// @Produce json
// @Param payload body service.RecordAssessmentRequest true "Assessment payload"
// @Success 201 {object} response.Envelope
// @Router /assessments [post]
func (h *AcademicHandler) Record(c *gin.Context) {
	var req service.RecordAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid assessment payload"))
		return
	}
	assessment, err := h.academic.RecordAssessment(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assessment)
}

// Void godoc
// @Summary Void assessment score
// @Tags Academics
// @Param id path string true "Assessment ID"
// @Success 204
// @Router /assessments/{id} [delete]
func (h *AcademicHandler) Void(c *gin.Context) {
	if err := h.academic.VoidAssessment(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ReportCard godoc
// @Summary Student term report
// @Tags Academics
// @Produce json
// @Param id path string true "Student ID"
// @Param term query string true "Term (T1, T2, T3)"
// @Param year query string false "Academic year"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/report [get]
func (h *AcademicHandler) ReportCard(c *gin.Context) {
	report, err := h.academic.ReportCard(c.Param("id"), c.Query("term"), c.Query("year"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// Analysis godoc
// @Summary Class analysis
// @Tags Academics
// @Produce json
// @Param grade query string true "Grade"
// @Param term query string true "Term (T1, T2, T3)"
// @Param year query string false "Academic year"
// @Param subject query string false "Single-subject focus"
// @Success 200 {object} response.Envelope
// @Router /analysis [get]
func (h *AcademicHandler) Analysis(c *gin.Context) {
	analysis := h.academic.Analysis(analysisFilter(c))
	response.JSON(c, http.StatusOK, analysis, nil)
}

// TopRanking godoc
// @Summary Best performers of a class
// @Tags Academics
// @Produce json
// @Param grade query string true "Grade"
// @Param term query string true "Term (T1, T2, T3)"
// @Param subject query string false "Rank by one subject instead of overall"
// @Param top query int false "Number of students"
// @Success 200 {object} response.Envelope
// @Router /analysis/top [get]
func (h *AcademicHandler) TopRanking(c *gin.Context) {
	ranking := h.academic.TopRanking(analysisFilter(c))
	response.JSON(c, http.StatusOK, ranking, nil)
}

// GetRemark godoc
// @Summary Report-card remarks for a student
// @Tags Academics
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/remarks [get]
func (h *AcademicHandler) GetRemark(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.remarks.Remarks(c.Param("id")), nil)
}

// UpsertRemark godoc
// @Summary Set report-card remarks
// @Tags Academics
// @Accept json
// @Produce json
// @Param payload body service.UpsertRemarkRequest true "Remark payload"
// @Success 200 {object} response.Envelope
// @Router /remarks [put]
func (h *AcademicHandler) UpsertRemark(c *gin.Context) {
	var req service.UpsertRemarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid remark payload"))
		return
	}
	remark, err := h.remarks.UpsertRemark(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, remark, nil)
}

func analysisFilter(c *gin.Context) ledger.AnalysisFilter {
	filter := ledger.AnalysisFilter{
		Grade:   c.Query("grade"),
		Term:    c.Query("term"),
		Year:    c.Query("year"),
		Subject: c.Query("subject"),
		Search:  c.Query("search"),
	}
	if top, err := strconv.Atoi(c.DefaultQuery("top", "0")); err == nil {
		filter.TopN = top
	}
	return filter
}
