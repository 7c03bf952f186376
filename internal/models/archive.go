package models

// ArchiveSnapshot is the academic subset frozen at year end. Archives are
// immutable: they are read for historical lookup and never merged into.
type ArchiveSnapshot struct {
	Students    []Student    `json:"students"`
	Assessments []Assessment `json:"assessments"`
	Payments    []Payment    `json:"payments"`
	Remarks     []Remark     `json:"remarks"`
}

// Archive tags a frozen snapshot with the academic year it closed.
type Archive struct {
	ID           string          `json:"id"`
	AcademicYear string          `json:"academicYear"`
	ArchivedAt   string          `json:"archivedAt"`
	Snapshot     ArchiveSnapshot `json:"snapshot"`
}
