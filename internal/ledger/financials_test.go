package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edutrack/edutrack-sync/internal/models"
)

func feeSettings() models.Settings {
	s := models.DefaultSettings()
	s.FeeStructures = []models.FeeStructure{
		{Grade: "GRADE 4", Items: map[string]float64{
			"t1": 4000, "t2": 3000, "t3": 3000, "lunch": 2500,
		}},
	}
	return s
}

func TestStudentFinancialsDefaultSelection(t *testing.T) {
	student := models.Student{ID: "s1", Grade: "GRADE 4"}
	payments := []models.Payment{
		{ID: "p1", StudentID: "s1", Amount: 4000},
	}

	f := StudentFinancials(student, payments, feeSettings())

	// Default selection is the three tuition terms, lunch not billed.
	assert.Equal(t, 10000.0, f.TotalDue)
	assert.Equal(t, 4000.0, f.TotalPaid)
	assert.Equal(t, 6000.0, f.Balance)
}

func TestStudentFinancialsExplicitSelection(t *testing.T) {
	student := models.Student{ID: "s1", Grade: "GRADE 4", SelectedFees: []string{"t1", "lunch"}}

	f := StudentFinancials(student, nil, feeSettings())

	assert.Equal(t, 6500.0, f.TotalDue)
}

func TestStudentFinancialsNoStructureForGrade(t *testing.T) {
	student := models.Student{ID: "s1", Grade: "GRADE 9"}
	payments := []models.Payment{{ID: "p1", StudentID: "s1", Amount: 1000}}

	f := StudentFinancials(student, payments, feeSettings())

	assert.Zero(t, f.TotalDue)
	assert.Equal(t, -1000.0, f.Balance)
}

func TestStudentFinancialsIgnoresOtherStudents(t *testing.T) {
	student := models.Student{ID: "s1", Grade: "GRADE 4"}
	payments := []models.Payment{
		{ID: "p1", StudentID: "s1", Amount: 2000},
		{ID: "p2", StudentID: "s2", Amount: 9999},
	}

	f := StudentFinancials(student, payments, feeSettings())

	assert.Equal(t, 2000.0, f.TotalPaid)
}

func TestStudentFinancialsOverpaymentGoesNegative(t *testing.T) {
	student := models.Student{ID: "s1", Grade: "GRADE 4"}
	payments := []models.Payment{{ID: "p1", StudentID: "s1", Amount: 12000}}

	f := StudentFinancials(student, payments, feeSettings())

	assert.Equal(t, -2000.0, f.Balance)
}
