package models

// Teacher represents a teaching staff member.
type Teacher struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	TSCNo             string  `json:"tscNo,omitempty"`
	Phone             string  `json:"phone,omitempty"`
	Subjects          string  `json:"subjects,omitempty"`
	IsClassTeacher    bool    `json:"isClassTeacher,omitempty"`
	ClassTeacherGrade string  `json:"classTeacherGrade,omitempty"`
	Salary            float64 `json:"salary,omitempty"`
}

// StaffMember represents non-teaching staff.
type StaffMember struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Role   string  `json:"role"`
	Phone  string  `json:"phone,omitempty"`
	Salary float64 `json:"salary,omitempty"`
}
