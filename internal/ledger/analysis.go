package ledger

import (
	"math"
	"sort"
	"strings"

	"github.com/edutrack/edutrack-sync/internal/models"
)

// ClassSubjectMean aggregates one subject across every student of a class:
// per-cycle means plus the mean of the students' non-nil subject averages.
// A nil field means no student recorded a score for that cycle.
type ClassSubjectMean struct {
	Subject string   `json:"subject"`
	Opener  *float64 `json:"opener"`
	MidTerm *float64 `json:"mid_term"`
	EndTerm *float64 `json:"end_term"`
	Average *float64 `json:"average"`
}

// ClassAnalysis bundles the derived term standing of one grade.
type ClassAnalysis struct {
	Grade    string              `json:"grade"`
	Term     string              `json:"term"`
	Reports  []StudentTermReport `json:"reports"`
	Subjects []ClassSubjectMean  `json:"subjects"`
}

// AnalysisFilter narrows a class analysis run.
type AnalysisFilter struct {
	Grade   string
	Term    string
	Year    string
	Subject string
	Search  string
	TopN    int
}

// Analyze derives per-student reports and per-subject class means for every
// student of the filter's grade. The class mean of a subject is independent
// from the per-student overall averages: it averages the students' subject
// averages for that one subject.
func Analyze(doc models.Document, filter AnalysisFilter) ClassAnalysis {
	reports := make([]StudentTermReport, 0)
	for _, student := range doc.Students {
		if student.Grade != filter.Grade {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(student.Name), strings.ToLower(filter.Search)) {
			continue
		}
		reports = append(reports, Report(student, doc.Assessments, filter.Term, filter.Year))
	}

	subjects := make([]ClassSubjectMean, 0)
	for i, subject := range SubjectsForGrade(filter.Grade) {
		mean := ClassSubjectMean{Subject: subject}
		var openerSum, midSum, endSum, avgSum float64
		var openerN, midN, endN, avgN int
		for _, r := range reports {
			s := r.Subjects[i]
			if v := s.Scores[models.ExamOpener]; v != nil {
				openerSum += *v
				openerN++
			}
			if v := s.Scores[models.ExamMidTerm]; v != nil {
				midSum += *v
				midN++
			}
			if v := s.Scores[models.ExamEndTerm]; v != nil {
				endSum += *v
				endN++
			}
			if s.Average != nil {
				avgSum += *s.Average
				avgN++
			}
		}
		mean.Opener = roundedMean(openerSum, openerN)
		mean.MidTerm = roundedMean(midSum, midN)
		mean.EndTerm = roundedMean(endSum, endN)
		mean.Average = roundedMean(avgSum, avgN)
		subjects = append(subjects, mean)
	}

	return ClassAnalysis{Grade: filter.Grade, Term: filter.Term, Reports: reports, Subjects: subjects}
}

// TopRanking orders the analysis reports best-first, by overall average or,
// when the filter names one subject, by that subject's average. Students
// without a score in the ranking dimension are dropped.
func TopRanking(analysis ClassAnalysis, filter AnalysisFilter) []StudentTermReport {
	ranked := append([]StudentTermReport(nil), analysis.Reports...)
	key := func(r StudentTermReport) float64 {
		if filter.Subject == "" {
			return r.OverallAverage
		}
		for _, s := range r.Subjects {
			if s.Subject == filter.Subject && s.Average != nil {
				return *s.Average
			}
		}
		return 0
	}
	sort.SliceStable(ranked, func(i, j int) bool { return key(ranked[i]) > key(ranked[j]) })

	n := filter.TopN
	if n <= 0 {
		n = 10
	}
	out := make([]StudentTermReport, 0, n)
	for _, r := range ranked {
		if len(out) == n {
			break
		}
		if key(r) > 0 {
			out = append(out, r)
		}
	}
	return out
}

func roundedMean(sum float64, n int) *float64 {
	if n == 0 {
		return nil
	}
	v := math.Round(sum / float64(n))
	return &v
}
