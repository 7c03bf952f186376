// Package merge combines two document snapshots into one. It is the only
// place reconciliation happens: every sync pull, announcement fetch and
// granular import funnels through Merge.
package merge

import "github.com/edutrack/edutrack-sync/internal/models"

// Scope selects which logical group of collections a merge touches.
// Collections outside the scope pass through from the local document
// untouched.
type Scope string

const (
	// ScopeAll merges every collection and overlays settings.
	ScopeAll Scope = "all"
	// ScopeStudents merges the students collection only.
	ScopeStudents Scope = "students"
	// ScopeAssessments merges assessments together with their remarks.
	ScopeAssessments Scope = "assessments"
	// ScopeSeniorSchool merges students filtered to the senior grades.
	ScopeSeniorSchool Scope = "senior-school"
	// ScopeAcademicFull merges students, assessments and remarks.
	ScopeAcademicFull Scope = "academic-full"
)

// SeniorGrades are the grades the senior-school scope filters to.
var SeniorGrades = []string{"GRADE 10", "GRADE 11", "GRADE 12"}

// ValidScope reports whether s names a known merge scope.
func ValidScope(s Scope) bool {
	switch s {
	case ScopeAll, ScopeStudents, ScopeAssessments, ScopeSeniorSchool, ScopeAcademicFull:
		return true
	}
	return false
}

// Merge unions local and remote by record id, collection by collection.
//
// Ids present on one side only are kept, so disjoint edits from two clients
// both survive. Ids present on both sides resolve remote-wins: the channel
// carries authoritative pushes and explicit imports, not interleaved field
// edits, and no causal ordering exists beyond "last merge applied wins".
// Repeated application of the same remote snapshot is therefore idempotent.
//
// Neither input is mutated; the result is a fresh document, so a failed
// follow-up push can retry against the pre-merge state.
func Merge(local, remote models.Document, scope Scope) models.Document {
	out := local.Clone()

	switch scope {
	case ScopeAll:
		out.Students = mergeByID(local.Students, remote.Students, studentID)
		out.Teachers = mergeByID(local.Teachers, remote.Teachers, teacherID)
		out.Staff = mergeByID(local.Staff, remote.Staff, staffID)
		out.Assessments = mergeByID(local.Assessments, remote.Assessments, assessmentID)
		out.Payments = mergeByID(local.Payments, remote.Payments, paymentID)
		out.Remarks = mergeByID(local.Remarks, remote.Remarks, remarkID)
		out.Timetables = mergeByID(local.Timetables, remote.Timetables, timetableID)
		out.Archives = mergeByID(local.Archives, remote.Archives, archiveID)
		out.Settings = overlaySettings(local.Settings, remote.Settings)
	case ScopeStudents:
		out.Students = mergeByID(local.Students, remote.Students, studentID)
	case ScopeSeniorSchool:
		out.Students = mergeByID(local.Students, filterSenior(remote.Students), studentID)
	case ScopeAssessments:
		out.Assessments = mergeByID(local.Assessments, remote.Assessments, assessmentID)
		out.Remarks = mergeByID(local.Remarks, remote.Remarks, remarkID)
	case ScopeAcademicFull:
		out.Students = mergeByID(local.Students, remote.Students, studentID)
		out.Assessments = mergeByID(local.Assessments, remote.Assessments, assessmentID)
		out.Remarks = mergeByID(local.Remarks, remote.Remarks, remarkID)
	}

	return out
}

// mergeByID keeps local order for surviving local records, substitutes the
// remote version where ids collide, and appends remote-only records in
// remote order.
func mergeByID[T any](local, remote []T, id func(T) string) []T {
	remoteByID := make(map[string]T, len(remote))
	for _, r := range remote {
		remoteByID[id(r)] = r
	}

	out := make([]T, 0, len(local)+len(remote))
	seen := make(map[string]struct{}, len(local))
	for _, l := range local {
		key := id(l)
		if r, ok := remoteByID[key]; ok {
			out = append(out, r)
		} else {
			out = append(out, l)
		}
		seen[key] = struct{}{}
	}
	for _, r := range remote {
		if _, ok := seen[id(r)]; ok {
			continue
		}
		out = append(out, r)
	}
	return out
}

// overlaySettings applies non-zero remote fields over local ones. Settings
// is a singleton record, not an id-keyed collection, so the collection rule
// does not apply.
func overlaySettings(local, remote models.Settings) models.Settings {
	out := local.Clone()
	if remote.SchoolName != "" {
		out.SchoolName = remote.SchoolName
	}
	if remote.SchoolAddress != "" {
		out.SchoolAddress = remote.SchoolAddress
	}
	if remote.SchoolLogo != "" {
		out.SchoolLogo = remote.SchoolLogo
	}
	if remote.Currency != "" {
		out.Currency = remote.Currency
	}
	if remote.Theme != "" {
		out.Theme = remote.Theme
	}
	if remote.PrimaryColor != "" {
		out.PrimaryColor = remote.PrimaryColor
	}
	if remote.SecondaryColor != "" {
		out.SecondaryColor = remote.SecondaryColor
	}
	if remote.AcademicYear != "" {
		out.AcademicYear = remote.AcademicYear
	}
	if len(remote.Grades) > 0 {
		out.Grades = append([]string(nil), remote.Grades...)
	}
	if len(remote.FeeStructures) > 0 {
		out.FeeStructures = remote.Clone().FeeStructures
	}
	return out
}

func filterSenior(students []models.Student) []models.Student {
	senior := make(map[string]struct{}, len(SeniorGrades))
	for _, g := range SeniorGrades {
		senior[g] = struct{}{}
	}
	out := make([]models.Student, 0, len(students))
	for _, s := range students {
		if _, ok := senior[s.Grade]; ok {
			out = append(out, s)
		}
	}
	return out
}

func studentID(s models.Student) string       { return s.ID }
func teacherID(t models.Teacher) string       { return t.ID }
func staffID(s models.StaffMember) string     { return s.ID }
func assessmentID(a models.Assessment) string { return a.ID }
func paymentID(p models.Payment) string       { return p.ID }
func remarkID(r models.Remark) string         { return r.StudentID }
func timetableID(t models.TimetableEntry) string { return t.ID }
func archiveID(a models.Archive) string       { return a.ID }
