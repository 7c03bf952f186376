package service

import (
	"github.com/google/uuid"

	"github.com/edutrack/edutrack-sync/internal/models"
	appErrors "github.com/edutrack/edutrack-sync/pkg/errors"
)

// UpsertStaffRequest carries a non-teaching staff record.
type UpsertStaffRequest struct {
	Name   string  `json:"name" validate:"required"`
	Role   string  `json:"role" validate:"required"`
	Phone  string  `json:"phone"`
	Salary float64 `json:"salary"`
}

// CreateStaff appends a staff member.
func (s *DocumentService) CreateStaff(req UpsertStaffRequest) (*models.StaffMember, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid staff payload")
	}
	member := models.StaffMember{
		ID:     "STF-" + uuid.NewString(),
		Name:   req.Name,
		Role:   req.Role,
		Phone:  req.Phone,
		Salary: req.Salary,
	}
	err := s.mutate(func(doc *models.Document) error {
		doc.Staff = append(doc.Staff, member)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateStaff replaces a staff member's fields.
func (s *DocumentService) UpdateStaff(id string, req UpsertStaffRequest) (*models.StaffMember, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid staff payload")
	}
	var updated models.StaffMember
	err := s.mutate(func(doc *models.Document) error {
		for i := range doc.Staff {
			if doc.Staff[i].ID != id {
				continue
			}
			doc.Staff[i] = models.StaffMember{
				ID:     id,
				Name:   req.Name,
				Role:   req.Role,
				Phone:  req.Phone,
				Salary: req.Salary,
			}
			updated = doc.Staff[i]
			return nil
		}
		return appErrors.Clone(appErrors.ErrNotFound, "staff member not found")
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteStaff removes a staff member by id.
func (s *DocumentService) DeleteStaff(id string) error {
	return s.mutate(func(doc *models.Document) error {
		for i := range doc.Staff {
			if doc.Staff[i].ID == id {
				doc.Staff = append(doc.Staff[:i], doc.Staff[i+1:]...)
				return nil
			}
		}
		return appErrors.Clone(appErrors.ErrNotFound, "staff member not found")
	})
}
