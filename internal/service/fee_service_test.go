package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutrack/edutrack-sync/internal/models"
	appErrors "github.com/edutrack/edutrack-sync/pkg/errors"
)

func feeFixture(t *testing.T) (*FeeService, *DocumentService, string) {
	t.Helper()
	initial := models.DefaultDocument()
	initial.Settings.FeeStructures = []models.FeeStructure{
		{Grade: "GRADE 4", Items: map[string]float64{"t1": 4000, "t2": 3000, "t3": 3000}},
	}
	docs := NewDocumentService(initial, nil, nil, nil)
	fees := NewFeeService(docs, nil, nil)

	student, err := docs.CreateStudent(CreateStudentRequest{Name: "Amina", Grade: "GRADE 4", AdmissionNo: "001"})
	require.NoError(t, err)
	return fees, docs, student.ID
}

func TestRecordPaymentDerivesAmountAndBalance(t *testing.T) {
	fees, _, studentID := feeFixture(t)

	payment, financials, err := fees.RecordPayment(RecordPaymentRequest{
		StudentID: studentID,
		Term:      "T1",
		Items:     map[string]float64{"t1": 2500, "t2": 1500},
	})

	require.NoError(t, err)
	assert.Equal(t, 4000.0, payment.Amount)
	assert.NotEmpty(t, payment.ReceiptNo)
	require.NotNil(t, financials)
	assert.Equal(t, 10000.0, financials.TotalDue)
	assert.Equal(t, 6000.0, financials.Balance)
}

func TestRecordPaymentUnknownStudent(t *testing.T) {
	fees, _, _ := feeFixture(t)

	_, _, err := fees.RecordPayment(RecordPaymentRequest{
		StudentID: "missing", Term: "T1", Items: map[string]float64{"t1": 100},
	})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestRecordPaymentZeroAmountRejected(t *testing.T) {
	fees, _, studentID := feeFixture(t)

	_, _, err := fees.RecordPayment(RecordPaymentRequest{
		StudentID: studentID, Term: "T1", Items: map[string]float64{"t1": 0},
	})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestVoidPaymentRestoresBalance(t *testing.T) {
	fees, _, studentID := feeFixture(t)
	payment, _, err := fees.RecordPayment(RecordPaymentRequest{
		StudentID: studentID, Term: "T1", Items: map[string]float64{"t1": 4000},
	})
	require.NoError(t, err)

	require.NoError(t, fees.VoidPayment(payment.ID))

	financials := fees.Financials(studentID)
	require.NotNil(t, financials)
	assert.Equal(t, 10000.0, financials.Balance)
	assert.Empty(t, fees.Payments(studentID))
}

func TestVoidPaymentNotFound(t *testing.T) {
	fees, _, _ := feeFixture(t)

	err := fees.VoidPayment("missing")

	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPaymentsFilterByStudent(t *testing.T) {
	fees, docs, studentID := feeFixture(t)
	other, err := docs.CreateStudent(CreateStudentRequest{Name: "Brian", Grade: "GRADE 4", AdmissionNo: "002"})
	require.NoError(t, err)

	_, _, err = fees.RecordPayment(RecordPaymentRequest{StudentID: studentID, Term: "T1", Items: map[string]float64{"t1": 100}})
	require.NoError(t, err)
	_, _, err = fees.RecordPayment(RecordPaymentRequest{StudentID: other.ID, Term: "T1", Items: map[string]float64{"t1": 200}})
	require.NoError(t, err)

	assert.Len(t, fees.Payments(studentID), 1)
	assert.Len(t, fees.Payments(""), 2)
}
