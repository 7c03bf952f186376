package models

// Remark holds the free-text report-card comments for one student. At most
// one remark record exists per student; upserts replace the whole record.
type Remark struct {
	StudentID string `json:"studentId"`
	Teacher   string `json:"teacher,omitempty"`
	Principal string `json:"principal,omitempty"`
}

// RemarkID keys remarks by their student: the collection has no id of its
// own in the persisted layout.
func (r Remark) RemarkID() string { return r.StudentID }
