package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutrack/edutrack-sync/internal/models"
	"github.com/edutrack/edutrack-sync/internal/service"
	appErrors "github.com/edutrack/edutrack-sync/pkg/errors"
	"github.com/edutrack/edutrack-sync/pkg/response"
)

type feeService interface {
	RecordPayment(req service.RecordPaymentRequest) (*models.Payment, *models.StudentFinancials, error)
	VoidPayment(id string) error
	Financials(studentID string) *models.StudentFinancials
	Payments(studentID string) []models.Payment
}

// FeeHandler exposes the payments log and derived fee positions.
type FeeHandler struct {
	fees feeService
}

// NewFeeHandler constructs FeeHandler.
func NewFeeHandler(fees feeService) *FeeHandler {
	return &FeeHandler{fees: fees}
}

// List godoc
// @Summary List payments
// @Tags Fees
// @Produce json
// @Param studentId query string false "Filter by student"
// @Success 200 {object} response.Envelope
// @Router /payments [get]
func (h *FeeHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.fees.Payments(c.Query("studentId")), nil)
}

// Record godoc
// @Summary Record payment
// @Tags Fees
// @Accept json
// @Produce json
// @Param payload body service.RecordPaymentRequest true "Payment payload"
// @Success 201 {object} response.Envelope
// @Router /payments [post]
func (h *FeeHandler) Record(c *gin.Context) {
	var req service.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payment payload"))
		return
	}
	payment, financials, err := h.fees.RecordPayment(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"payment": payment, "financials": financials}, nil)
}

// Void godoc
// @Summary Void payment
// @Tags Fees
// @Param id path string true "Payment ID"
// @Success 204
// @Router /payments/{id} [delete]
func (h *FeeHandler) Void(c *gin.Context) {
	if err := h.fees.VoidPayment(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Financials godoc
// @Summary Student fee position
// @Tags Fees
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/financials [get]
func (h *FeeHandler) Financials(c *gin.Context) {
	financials := h.fees.Financials(c.Param("id"))
	if financials == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "student not found"))
		return
	}
	response.JSON(c, http.StatusOK, financials, nil)
}
