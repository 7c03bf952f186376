package service

import "github.com/edutrack/edutrack-sync/internal/models"

// Teachers returns the teacher roster.
func (s *DocumentService) Teachers() []models.Teacher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Teacher(nil), s.doc.Teachers...)
}

// Staff returns the non-teaching staff roster.
func (s *DocumentService) Staff() []models.StaffMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.StaffMember(nil), s.doc.Staff...)
}

// Timetables returns lesson slots, optionally filtered by grade.
func (s *DocumentService) Timetables(grade string) []models.TimetableEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.TimetableEntry, 0, len(s.doc.Timetables))
	for _, t := range s.doc.Timetables {
		if grade != "" && t.Grade != grade {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Remarks returns the remark for one student, empty when none exists.
func (s *DocumentService) Remarks(studentID string) models.Remark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.doc.Remarks {
		if r.StudentID == studentID {
			return r
		}
	}
	return models.Remark{StudentID: studentID}
}
