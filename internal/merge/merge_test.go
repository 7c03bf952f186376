package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutrack/edutrack-sync/internal/models"
)

func docWithStudents(students ...models.Student) models.Document {
	doc := models.DefaultDocument()
	doc.Students = students
	return doc
}

func TestMergeDisjointStudentsBothSurvive(t *testing.T) {
	local := docWithStudents(models.Student{ID: "s1", Name: "Amina", Grade: "GRADE 4"})
	remote := docWithStudents(models.Student{ID: "s2", Name: "Brian", Grade: "GRADE 4"})

	out := Merge(local, remote, ScopeAll)

	require.Len(t, out.Students, 2)
	assert.Equal(t, "s1", out.Students[0].ID)
	assert.Equal(t, "s2", out.Students[1].ID)
}

func TestMergeCollidingIDRemoteWins(t *testing.T) {
	local := docWithStudents(models.Student{ID: "s1", Name: "Old Name", Grade: "GRADE 4"})
	remote := docWithStudents(models.Student{ID: "s1", Name: "New Name", Grade: "GRADE 5"})

	out := Merge(local, remote, ScopeAll)

	require.Len(t, out.Students, 1)
	assert.Equal(t, "New Name", out.Students[0].Name)
	assert.Equal(t, "GRADE 5", out.Students[0].Grade)
}

func TestMergeIdempotent(t *testing.T) {
	local := docWithStudents(
		models.Student{ID: "s1", Name: "Amina"},
		models.Student{ID: "s2", Name: "Brian"},
	)
	remote := docWithStudents(
		models.Student{ID: "s2", Name: "Brian B"},
		models.Student{ID: "s3", Name: "Carol"},
	)

	once := Merge(local, remote, ScopeAll)
	twice := Merge(once, remote, ScopeAll)

	assert.Equal(t, once, twice)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	local := docWithStudents(models.Student{ID: "s1", Name: "Amina"})
	remote := docWithStudents(models.Student{ID: "s1", Name: "Changed"})

	_ = Merge(local, remote, ScopeAll)

	assert.Equal(t, "Amina", local.Students[0].Name)
	assert.Equal(t, "Changed", remote.Students[0].Name)
}

func TestMergeScopedLeavesOtherCollectionsUntouched(t *testing.T) {
	local := docWithStudents(models.Student{ID: "s1"})
	local.Payments = []models.Payment{{ID: "p1", StudentID: "s1", Amount: 500}}

	remote := docWithStudents(models.Student{ID: "s2"})
	remote.Payments = []models.Payment{{ID: "p2", StudentID: "s2", Amount: 900}}
	remote.Settings.SchoolName = "Remote School"

	out := Merge(local, remote, ScopeStudents)

	require.Len(t, out.Students, 2)
	require.Len(t, out.Payments, 1)
	assert.Equal(t, "p1", out.Payments[0].ID)
	assert.NotEqual(t, "Remote School", out.Settings.SchoolName)
}

func TestMergeAssessmentsScopeCarriesRemarks(t *testing.T) {
	local := models.DefaultDocument()
	remote := models.DefaultDocument()
	remote.Assessments = []models.Assessment{{ID: "a1", StudentID: "s1", Subject: "Mathematics", Score: 80}}
	remote.Remarks = []models.Remark{{StudentID: "s1", Teacher: "Good progress"}}
	remote.Students = []models.Student{{ID: "s1"}}

	out := Merge(local, remote, ScopeAssessments)

	assert.Len(t, out.Assessments, 1)
	assert.Len(t, out.Remarks, 1)
	assert.Empty(t, out.Students)
}

func TestMergeSeniorSchoolFiltersRemote(t *testing.T) {
	local := models.DefaultDocument()
	remote := docWithStudents(
		models.Student{ID: "s1", Grade: "GRADE 4"},
		models.Student{ID: "s2", Grade: "GRADE 10"},
		models.Student{ID: "s3", Grade: "GRADE 12"},
	)

	out := Merge(local, remote, ScopeSeniorSchool)

	require.Len(t, out.Students, 2)
	assert.Equal(t, "s2", out.Students[0].ID)
	assert.Equal(t, "s3", out.Students[1].ID)
}

func TestMergeSettingsOverlayFieldWise(t *testing.T) {
	local := models.DefaultDocument()
	local.Settings.SchoolName = "Local School"
	local.Settings.Currency = "KES"

	remote := models.DefaultDocument()
	remote.Settings = models.Settings{SchoolName: "Remote School"}

	out := Merge(local, remote, ScopeAll)

	assert.Equal(t, "Remote School", out.Settings.SchoolName)
	assert.Equal(t, "KES", out.Settings.Currency)
}

func TestMergeRemarksKeyedByStudent(t *testing.T) {
	local := models.DefaultDocument()
	local.Remarks = []models.Remark{{StudentID: "s1", Teacher: "old"}}
	remote := models.DefaultDocument()
	remote.Remarks = []models.Remark{{StudentID: "s1", Teacher: "new"}, {StudentID: "s2", Teacher: "other"}}

	out := Merge(local, remote, ScopeAll)

	require.Len(t, out.Remarks, 2)
	assert.Equal(t, "new", out.Remarks[0].Teacher)
}

func TestValidScope(t *testing.T) {
	for _, s := range []Scope{ScopeAll, ScopeStudents, ScopeAssessments, ScopeSeniorSchool, ScopeAcademicFull} {
		assert.True(t, ValidScope(s), string(s))
	}
	assert.False(t, ValidScope(Scope("everything")))
	assert.False(t, ValidScope(Scope("")))
}
