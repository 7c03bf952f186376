package service

import (
	"strings"
	gosync "sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edutrack/edutrack-sync/internal/merge"
	"github.com/edutrack/edutrack-sync/internal/models"
	appErrors "github.com/edutrack/edutrack-sync/pkg/errors"
)

// documentPersister writes the document to the local slot.
type documentPersister interface {
	Save(models.Document) error
}

// DocumentService owns the live in-memory document and funnels every
// mutation through one lock: user-triggered field updates and wholesale
// replacement by merge both land here, never through aliased partial writes
// from concurrent operations.
//
// Each accepted mutation persists the document afterwards. Persistence is a
// side effect, not a transaction: a crash between mutation and save loses
// that mutation but never corrupts previously persisted state, and a failed
// save is a logged warning, not a failed mutation.
type DocumentService struct {
	mu        gosync.RWMutex
	doc       models.Document
	persister documentPersister
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDocumentService starts from the given document (normally the store's
// Load result).
func NewDocumentService(initial models.Document, persister documentPersister, validate *validator.Validate, logger *zap.Logger) *DocumentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{
		doc:       initial,
		persister: persister,
		validator: validate,
		logger:    logger,
	}
}

// Snapshot returns a deep copy of the current document.
func (s *DocumentService) Snapshot() models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// ApplyRemote merges a remote document into the live one and persists the
// result. Applying the same remote snapshot twice is a no-op by the merge
// rules, so at-least-once announcement delivery is safe.
func (s *DocumentService) ApplyRemote(remote models.Document, scope merge.Scope) {
	s.mu.Lock()
	s.doc = merge.Merge(s.doc, remote, scope)
	s.persistLocked()
	s.mu.Unlock()
}

// mutate runs fn under the write lock and persists on success.
func (s *DocumentService) mutate(fn func(doc *models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(&s.doc); err != nil {
		return err
	}
	s.persistLocked()
	return nil
}

func (s *DocumentService) persistLocked() {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(s.doc); err != nil {
		// Recoverable: in-memory operation continues, prior persisted
		// state is intact.
		s.logger.Warn("document not persisted", zap.Error(err))
	}
}

// CreateStudentRequest carries a new student record.
type CreateStudentRequest struct {
	Name         string   `json:"name" validate:"required"`
	Grade        string   `json:"grade" validate:"required"`
	Stream       string   `json:"stream"`
	AdmissionNo  string   `json:"admissionNo" validate:"required"`
	AssessmentNo string   `json:"assessmentNo"`
	UPINo        string   `json:"upiNo"`
	Guardian     string   `json:"guardian"`
	GuardianTel  string   `json:"guardianTel"`
	SelectedFees []string `json:"selectedFees"`
}

// UpdateStudentRequest replaces the mutable fields of a student.
type UpdateStudentRequest = CreateStudentRequest

// ListStudents returns students matching the filter, paginated.
func (s *DocumentService) ListStudents(filter models.StudentFilter) ([]models.Student, *models.Pagination) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Student, 0, len(s.doc.Students))
	for _, st := range s.doc.Students {
		if filter.Grade != "" && st.Grade != filter.Grade {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(st.Name), needle) &&
				!strings.Contains(strings.ToLower(st.AdmissionNo), needle) {
				continue
			}
		}
		matched = append(matched, st)
	}

	page, limit := filter.Page, filter.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	total := len(matched)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	pagination := &models.Pagination{
		Page:       page,
		PageSize:   limit,
		TotalItems: total,
		TotalPages: (total + limit - 1) / limit,
	}
	return matched[start:end], pagination
}

// GetStudent fetches one student by id.
func (s *DocumentService) GetStudent(id string) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.doc.Students {
		if st.ID == id {
			out := st
			return &out, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
}

// CreateStudent validates and appends a new student.
func (s *DocumentService) CreateStudent(req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student := models.Student{
		ID:           "STU-" + uuid.NewString(),
		Name:         req.Name,
		Grade:        req.Grade,
		Stream:       req.Stream,
		AdmissionNo:  req.AdmissionNo,
		AssessmentNo: req.AssessmentNo,
		UPINo:        req.UPINo,
		Guardian:     req.Guardian,
		GuardianTel:  req.GuardianTel,
		SelectedFees: req.SelectedFees,
	}
	err := s.mutate(func(doc *models.Document) error {
		doc.Students = append(doc.Students, student)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// UpdateStudent replaces the fields of an existing student.
func (s *DocumentService) UpdateStudent(id string, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	var updated models.Student
	err := s.mutate(func(doc *models.Document) error {
		for i := range doc.Students {
			if doc.Students[i].ID != id {
				continue
			}
			doc.Students[i] = models.Student{
				ID:           id,
				Name:         req.Name,
				Grade:        req.Grade,
				Stream:       req.Stream,
				AdmissionNo:  req.AdmissionNo,
				AssessmentNo: req.AssessmentNo,
				UPINo:        req.UPINo,
				Guardian:     req.Guardian,
				GuardianTel:  req.GuardianTel,
				SelectedFees: req.SelectedFees,
			}
			updated = doc.Students[i]
			return nil
		}
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteStudent removes a student by id.
func (s *DocumentService) DeleteStudent(id string) error {
	return s.mutate(func(doc *models.Document) error {
		for i := range doc.Students {
			if doc.Students[i].ID == id {
				doc.Students = append(doc.Students[:i], doc.Students[i+1:]...)
				return nil
			}
		}
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	})
}

// UpsertTeacherRequest carries a teacher record.
type UpsertTeacherRequest struct {
	Name              string  `json:"name" validate:"required"`
	TSCNo             string  `json:"tscNo"`
	Phone             string  `json:"phone"`
	Subjects          string  `json:"subjects"`
	IsClassTeacher    bool    `json:"isClassTeacher"`
	ClassTeacherGrade string  `json:"classTeacherGrade"`
	Salary            float64 `json:"salary"`
}

// CreateTeacher appends a teacher.
func (s *DocumentService) CreateTeacher(req UpsertTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}
	teacher := models.Teacher{
		ID:                "TCH-" + uuid.NewString(),
		Name:              req.Name,
		TSCNo:             req.TSCNo,
		Phone:             req.Phone,
		Subjects:          req.Subjects,
		IsClassTeacher:    req.IsClassTeacher,
		ClassTeacherGrade: req.ClassTeacherGrade,
		Salary:            req.Salary,
	}
	err := s.mutate(func(doc *models.Document) error {
		doc.Teachers = append(doc.Teachers, teacher)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

// UpdateTeacher replaces a teacher's fields.
func (s *DocumentService) UpdateTeacher(id string, req UpsertTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}
	var updated models.Teacher
	err := s.mutate(func(doc *models.Document) error {
		for i := range doc.Teachers {
			if doc.Teachers[i].ID != id {
				continue
			}
			doc.Teachers[i] = models.Teacher{
				ID:                id,
				Name:              req.Name,
				TSCNo:             req.TSCNo,
				Phone:             req.Phone,
				Subjects:          req.Subjects,
				IsClassTeacher:    req.IsClassTeacher,
				ClassTeacherGrade: req.ClassTeacherGrade,
				Salary:            req.Salary,
			}
			updated = doc.Teachers[i]
			return nil
		}
		return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTeacher removes a teacher by id.
func (s *DocumentService) DeleteTeacher(id string) error {
	return s.mutate(func(doc *models.Document) error {
		for i := range doc.Teachers {
			if doc.Teachers[i].ID == id {
				doc.Teachers = append(doc.Teachers[:i], doc.Teachers[i+1:]...)
				return nil
			}
		}
		return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	})
}

// UpsertRemarkRequest sets report-card comments for a student.
type UpsertRemarkRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	Teacher   string `json:"teacher"`
	Principal string `json:"principal"`
}

// UpsertRemark replaces the remark record of a student, creating it when
// missing.
func (s *DocumentService) UpsertRemark(req UpsertRemarkRequest) (*models.Remark, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid remark payload")
	}
	remark := models.Remark{StudentID: req.StudentID, Teacher: req.Teacher, Principal: req.Principal}
	err := s.mutate(func(doc *models.Document) error {
		for i := range doc.Remarks {
			if doc.Remarks[i].StudentID == req.StudentID {
				doc.Remarks[i] = remark
				return nil
			}
		}
		doc.Remarks = append(doc.Remarks, remark)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &remark, nil
}

// UpsertTimetableRequest carries one lesson slot.
type UpsertTimetableRequest struct {
	Grade   string `json:"grade" validate:"required"`
	Day     string `json:"day" validate:"required"`
	Time    string `json:"time" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Teacher string `json:"teacher"`
}

// CreateTimetableEntry appends a lesson slot.
func (s *DocumentService) CreateTimetableEntry(req UpsertTimetableRequest) (*models.TimetableEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable payload")
	}
	entry := models.TimetableEntry{
		ID:      "TT-" + uuid.NewString(),
		Grade:   req.Grade,
		Day:     req.Day,
		Time:    req.Time,
		Subject: req.Subject,
		Teacher: req.Teacher,
	}
	err := s.mutate(func(doc *models.Document) error {
		doc.Timetables = append(doc.Timetables, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteTimetableEntry removes a lesson slot.
func (s *DocumentService) DeleteTimetableEntry(id string) error {
	return s.mutate(func(doc *models.Document) error {
		for i := range doc.Timetables {
			if doc.Timetables[i].ID == id {
				doc.Timetables = append(doc.Timetables[:i], doc.Timetables[i+1:]...)
				return nil
			}
		}
		return appErrors.Clone(appErrors.ErrNotFound, "timetable entry not found")
	})
}

// UpdateSettings replaces the settings singleton.
func (s *DocumentService) UpdateSettings(settings models.Settings) (models.Settings, error) {
	err := s.mutate(func(doc *models.Document) error {
		doc.Settings = settings.Clone()
		return nil
	})
	if err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

// Settings returns the current settings singleton.
func (s *DocumentService) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Settings.Clone()
}
