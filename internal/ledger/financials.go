package ledger

import "github.com/edutrack/edutrack-sync/internal/models"

// StudentFinancials derives the fee position of one student from the
// payments log and the fee structure for the student's grade.
//
// TotalDue sums the structure amounts of the student's selected fee keys
// (the tuition terms t1..t3 when no selection exists); a grade without a fee
// structure owes nothing. TotalPaid sums every payment recorded against the
// student. Balance may go negative, which signifies credit.
func StudentFinancials(student models.Student, payments []models.Payment, settings models.Settings) models.StudentFinancials {
	var totalDue float64
	if structure := settings.FeeStructureFor(student.Grade); structure != nil {
		keys := student.SelectedFees
		if len(keys) == 0 {
			keys = models.DefaultSelectedFees
		}
		for _, key := range keys {
			totalDue += structure.Amount(key)
		}
	}

	var totalPaid float64
	for _, p := range payments {
		if p.StudentID == student.ID {
			totalPaid += p.Amount
		}
	}

	return models.StudentFinancials{
		TotalDue:  totalDue,
		TotalPaid: totalPaid,
		Balance:   totalDue - totalPaid,
	}
}
