package models

// TimetableEntry is one scheduled lesson slot for a grade.
type TimetableEntry struct {
	ID      string `json:"id"`
	Grade   string `json:"grade"`
	Day     string `json:"day"`
	Time    string `json:"time"`
	Subject string `json:"subject"`
	Teacher string `json:"teacher,omitempty"`
}
