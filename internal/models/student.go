package models

// Student represents a learner registered in the institution.
type Student struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Grade        string `json:"grade"`
	Stream       string `json:"stream,omitempty"`
	AdmissionNo  string `json:"admissionNo"`
	AssessmentNo string `json:"assessmentNo,omitempty"`
	UPINo        string `json:"upiNo,omitempty"`
	Guardian     string `json:"guardian,omitempty"`
	GuardianTel  string `json:"guardianTel,omitempty"`
	// SelectedFees lists the fee keys this student is billed for. Nil means
	// the default tuition terms (t1, t2, t3).
	SelectedFees []string `json:"selectedFees,omitempty"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search string
	Grade  string
	Page   int
	Limit  int
}
