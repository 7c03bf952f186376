package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutrack/edutrack-sync/internal/models"
)

func classDoc() models.Document {
	doc := models.DefaultDocument()
	doc.Students = []models.Student{
		{ID: "s1", Name: "Amina", Grade: "GRADE 4"},
		{ID: "s2", Name: "Brian", Grade: "GRADE 4"},
		{ID: "s3", Name: "Carol", Grade: "GRADE 5"},
	}
	doc.Assessments = []models.Assessment{
		asm("s1", "Mathematics", models.ExamOpener, "T1", 80),
		asm("s2", "Mathematics", models.ExamOpener, "T1", 60),
		asm("s1", "English", models.ExamOpener, "T1", 90),
		asm("s3", "Mathematics", models.ExamOpener, "T1", 100),
	}
	return doc
}

func TestAnalyzeClassMeans(t *testing.T) {
	analysis := Analyze(classDoc(), AnalysisFilter{Grade: "GRADE 4", Term: "T1"})

	require.Len(t, analysis.Reports, 2)

	var maths, english *ClassSubjectMean
	for i := range analysis.Subjects {
		switch analysis.Subjects[i].Subject {
		case "Mathematics":
			maths = &analysis.Subjects[i]
		case "English":
			english = &analysis.Subjects[i]
		}
	}
	require.NotNil(t, maths)
	require.NotNil(t, maths.Opener)
	assert.Equal(t, 70.0, *maths.Opener) // grade 5 student excluded
	require.NotNil(t, english)
	require.NotNil(t, english.Average)
	assert.Equal(t, 90.0, *english.Average) // only one student counted, not zero-filled
}

func TestAnalyzeSearchFilter(t *testing.T) {
	analysis := Analyze(classDoc(), AnalysisFilter{Grade: "GRADE 4", Term: "T1", Search: "ami"})

	require.Len(t, analysis.Reports, 1)
	assert.Equal(t, "s1", analysis.Reports[0].StudentID)
}

func TestTopRankingByOverall(t *testing.T) {
	analysis := Analyze(classDoc(), AnalysisFilter{Grade: "GRADE 4", Term: "T1"})
	ranked := TopRanking(analysis, AnalysisFilter{Grade: "GRADE 4", Term: "T1", TopN: 5})

	require.Len(t, ranked, 2)
	assert.Equal(t, "s1", ranked[0].StudentID)
	assert.Equal(t, "s2", ranked[1].StudentID)
}

func TestTopRankingBySubjectDropsUnscored(t *testing.T) {
	analysis := Analyze(classDoc(), AnalysisFilter{Grade: "GRADE 4", Term: "T1"})
	ranked := TopRanking(analysis, AnalysisFilter{Grade: "GRADE 4", Term: "T1", Subject: "English", TopN: 5})

	// Only s1 has an English score; s2 is dropped, not ranked at zero.
	require.Len(t, ranked, 1)
	assert.Equal(t, "s1", ranked[0].StudentID)
}

func TestTopRankingLimitsToN(t *testing.T) {
	analysis := Analyze(classDoc(), AnalysisFilter{Grade: "GRADE 4", Term: "T1"})
	ranked := TopRanking(analysis, AnalysisFilter{Grade: "GRADE 4", Term: "T1", TopN: 1})

	require.Len(t, ranked, 1)
	assert.Equal(t, "s1", ranked[0].StudentID)
}
