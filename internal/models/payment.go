package models

// Payment is one fee transaction. Like assessments, payments form an
// append-only log keyed by creation-time-unique ids; a payment is voided by
// removal, never edited.
type Payment struct {
	ID             string             `json:"id"`
	StudentID      string             `json:"studentId"`
	GradeAtPayment string             `json:"gradeAtPayment,omitempty"`
	Amount         float64            `json:"amount"`
	Items          map[string]float64 `json:"items,omitempty"`
	Term           string             `json:"term"`
	Date           string             `json:"date"`
	ReceiptNo      string             `json:"receiptNo"`
}

// StudentFinancials is the derived fee position for one student. It is
// recomputed from the payments log on every read and never persisted.
type StudentFinancials struct {
	TotalDue  float64 `json:"total_due"`
	TotalPaid float64 `json:"total_paid"`
	Balance   float64 `json:"balance"`
}
