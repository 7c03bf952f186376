// Package ledger derives financial balances and academic aggregates from the
// document's append-only logs. Every function is pure: snapshot in, value
// out. Nothing computed here is cached back into the document, which is what
// keeps report figures consistent across arbitrary merges.
package ledger

import "strings"

// lowerSubjects is the learning-area list for pre-primary and lower primary
// grades, in report-card column order.
var lowerSubjects = []string{
	"English",
	"Kiswahili",
	"Mathematics",
	"Science & Technology",
	"Social Studies",
	"CRE",
	"Creative Arts",
	"Physical & Health Education",
	"Agriculture",
}

// seniorSubjects is the learning-area list from GRADE 7 upward.
var seniorSubjects = []string{
	"English",
	"Kiswahili",
	"Mathematics",
	"Integrated Science",
	"Social Studies",
	"CRE",
	"Business Studies",
	"Pre-Technical Studies",
	"Agriculture",
	"Computer Science",
}

// SubjectsForGrade returns the ordered curriculum for a grade. The returned
// order determines report and analysis column order everywhere else, so
// callers must not sort it.
func SubjectsForGrade(grade string) []string {
	if isSeniorBand(grade) {
		return append([]string(nil), seniorSubjects...)
	}
	return append([]string(nil), lowerSubjects...)
}

func isSeniorBand(grade string) bool {
	g := strings.ToUpper(strings.TrimSpace(grade))
	switch g {
	case "GRADE 7", "GRADE 8", "GRADE 9", "GRADE 10", "GRADE 11", "GRADE 12":
		return true
	}
	return false
}
