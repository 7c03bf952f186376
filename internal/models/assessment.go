package models

// Exam cycle identifiers recorded against an assessment. The three cycles
// together form one term's scores for a subject.
const (
	ExamOpener  = "Opener"
	ExamMidTerm = "Mid-Term"
	ExamEndTerm = "End-Term"
)

// ExamTypes lists the exam cycles in report-card column order.
var ExamTypes = []string{ExamOpener, ExamMidTerm, ExamEndTerm}

// Terms lists the academic terms.
var Terms = []string{"T1", "T2", "T3"}

// Assessment is one recorded score. The assessments collection is an
// append-only log: entries are created once and only ever removed (voided),
// never field-updated.
type Assessment struct {
	ID        string  `json:"id"`
	StudentID string  `json:"studentId"`
	Subject   string  `json:"subject"`
	ExamType  string  `json:"examType"`
	Term      string  `json:"term"`
	Score     float64 `json:"score"`
	Date      string  `json:"date,omitempty"`
}
