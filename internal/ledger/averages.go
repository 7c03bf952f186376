package ledger

import (
	"math"

	"github.com/edutrack/edutrack-sync/internal/models"
)

// SubjectScores holds the per-cycle scores and derived average for one
// subject. A cycle without a recorded score stays nil and is excluded from
// the average rather than counted as zero.
type SubjectScores struct {
	Subject string              `json:"subject"`
	Scores  map[string]*float64 `json:"scores"`
	Average *float64            `json:"average"`
}

// StudentTermReport is the full derived academic position of one student for
// one term.
type StudentTermReport struct {
	StudentID      string          `json:"student_id"`
	Term           string          `json:"term"`
	Subjects       []SubjectScores `json:"subjects"`
	OverallAverage float64         `json:"overall_average"`
	TotalMarks     float64         `json:"total_marks"`
	TotalPoints    int             `json:"total_points"`
	Performance    GradeInfo       `json:"performance"`
}

// SubjectAverages computes, per curriculum subject, the mean of whichever
// exam-cycle scores exist for that subject in the given assessment slice.
// Rounding happens here, at the subject step; overall aggregation rounds a
// second time. The double rounding is kept deliberately for numeric parity
// with printed report cards.
func SubjectAverages(grade string, assessments []models.Assessment) []SubjectScores {
	out := make([]SubjectScores, 0, len(SubjectsForGrade(grade)))
	for _, subject := range SubjectsForGrade(grade) {
		scores := make(map[string]*float64, len(models.ExamTypes))
		var sum float64
		var n int
		for _, examType := range models.ExamTypes {
			if score, ok := findScore(assessments, subject, examType); ok {
				v := score
				scores[examType] = &v
				sum += score
				n++
			} else {
				scores[examType] = nil
			}
		}
		entry := SubjectScores{Subject: subject, Scores: scores}
		if n > 0 {
			avg := math.Round(sum / float64(n))
			entry.Average = &avg
		}
		out = append(out, entry)
	}
	return out
}

// Report derives one student's term report from the assessments log.
// Assessments for other students, terms or (when year is non-empty) other
// academic years are ignored.
func Report(student models.Student, assessments []models.Assessment, term, year string) StudentTermReport {
	filtered := filterAssessments(assessments, student.ID, term, year)
	subjects := SubjectAverages(student.Grade, filtered)

	var sum float64
	var n int
	var totalMarks float64
	var totalPoints int
	for _, s := range subjects {
		if s.Average == nil {
			continue
		}
		sum += *s.Average
		n++
		totalMarks += *s.Average
		totalPoints += BandFor(*s.Average).Points
	}

	var overall float64
	if n > 0 {
		overall = math.Round(sum / float64(n))
	}

	return StudentTermReport{
		StudentID:      student.ID,
		Term:           term,
		Subjects:       subjects,
		OverallAverage: overall,
		TotalMarks:     totalMarks,
		TotalPoints:    totalPoints,
		Performance:    BandFor(overall),
	}
}

func filterAssessments(assessments []models.Assessment, studentID, term, year string) []models.Assessment {
	out := make([]models.Assessment, 0, len(assessments))
	for _, a := range assessments {
		if a.StudentID != studentID || a.Term != term {
			continue
		}
		if year != "" && !yearMatches(a.Date, year) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// yearMatches accepts dates belonging to an academic year written as
// "2024/2025": the date must start with the opening calendar year.
func yearMatches(date, academicYear string) bool {
	if date == "" {
		return false
	}
	opening := academicYear
	for i := 0; i < len(academicYear); i++ {
		if academicYear[i] == '/' {
			opening = academicYear[:i]
			break
		}
	}
	return len(date) >= len(opening) && date[:len(opening)] == opening
}

func findScore(assessments []models.Assessment, subject, examType string) (float64, bool) {
	for _, a := range assessments {
		if a.Subject == subject && a.ExamType == examType {
			return a.Score, true
		}
	}
	return 0, false
}
