package service

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edutrack/edutrack-sync/internal/ledger"
	"github.com/edutrack/edutrack-sync/internal/models"
	appErrors "github.com/edutrack/edutrack-sync/pkg/errors"
)

// FeeService records and voids payments and derives fee positions. Balances
// are never stored: every read recomputes them from the payments log, which
// is what keeps them correct across merges.
type FeeService struct {
	docs      *DocumentService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFeeService constructs FeeService.
func NewFeeService(docs *DocumentService, validate *validator.Validate, logger *zap.Logger) *FeeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeeService{docs: docs, validator: validate, logger: logger}
}

// RecordPaymentRequest captures one fee transaction. Amount is derived from
// the items, never supplied by the caller.
type RecordPaymentRequest struct {
	StudentID string             `json:"studentId" validate:"required"`
	Term      string             `json:"term" validate:"required,oneof=T1 T2 T3"`
	Items     map[string]float64 `json:"items" validate:"required,min=1"`
}

// RecordPayment appends a payment to the log and returns it together with
// the balance after the transaction.
func (s *FeeService) RecordPayment(req RecordPaymentRequest) (*models.Payment, *models.StudentFinancials, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}

	var total float64
	for _, v := range req.Items {
		total += v
	}
	if total <= 0 {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "payment needs an amount for at least one item")
	}

	student, err := s.docs.GetStudent(req.StudentID)
	if err != nil {
		return nil, nil, err
	}

	payment := models.Payment{
		ID:             "PAY-" + uuid.NewString(),
		StudentID:      req.StudentID,
		GradeAtPayment: student.Grade,
		Amount:         total,
		Items:          req.Items,
		Term:           req.Term,
		Date:           time.Now().Format("2006-01-02"),
		ReceiptNo:      fmt.Sprintf("RCP-%04d", rand.Intn(10000)),
	}

	err = s.docs.mutate(func(doc *models.Document) error {
		doc.Payments = append(doc.Payments, payment)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	financials := s.Financials(req.StudentID)
	return &payment, financials, nil
}

// VoidPayment removes a payment from the log. The removal is local,
// immediate and irreversible; confirmation belongs at the UI boundary.
func (s *FeeService) VoidPayment(id string) error {
	return s.docs.mutate(func(doc *models.Document) error {
		for i := range doc.Payments {
			if doc.Payments[i].ID == id {
				doc.Payments = append(doc.Payments[:i], doc.Payments[i+1:]...)
				return nil
			}
		}
		return appErrors.Clone(appErrors.ErrNotFound, "payment not found")
	})
}

// Financials derives the fee position of one student, nil when the student
// does not exist.
func (s *FeeService) Financials(studentID string) *models.StudentFinancials {
	doc := s.docs.Snapshot()
	for _, st := range doc.Students {
		if st.ID == studentID {
			f := ledger.StudentFinancials(st, doc.Payments, doc.Settings)
			return &f
		}
	}
	return nil
}

// Payments lists the payment log, optionally filtered by student.
func (s *FeeService) Payments(studentID string) []models.Payment {
	doc := s.docs.Snapshot()
	if studentID == "" {
		return doc.Payments
	}
	out := make([]models.Payment, 0)
	for _, p := range doc.Payments {
		if p.StudentID == studentID {
			out = append(out, p)
		}
	}
	return out
}
