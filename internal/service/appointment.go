package service

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"

	"wellnessapi/internal/errs"
	"wellnessapi/internal/model"
	"wellnessapi/internal/repository"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var appointmentStatuses = map[string]bool{
	model.AppointmentStatusNew:       true,
	model.AppointmentStatusContacted: true,
	model.AppointmentStatusCompleted: true,
	model.AppointmentStatusCancelled: true,
}

var consultationModes = map[string]bool{
	"Online":             true,
	"Offline (In-Clinic)": true,
}

var genders = map[string]bool{"Male": true, "Female": true, "Other": true}

// CreateAppointmentInput is a consultation request from the public booking
// form.
type CreateAppointmentInput struct {
	Name             string
	Email            string
	Phone            string
	Age              int
	Gender           string
	City             string
	ConsultationMode string
	Message          string
}

// AppointmentService defines the consultation request use cases. Creation is
// public; the rest back the admin dashboard.
type AppointmentService interface {
	Create(ctx context.Context, in CreateAppointmentInput) (*model.Appointment, error)
	List(ctx context.Context, limit, offset int) (*ListResult[model.Appointment], error)
	Get(ctx context.Context, id string) (*model.Appointment, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.Appointment, error)
	Delete(ctx context.Context, id string) error
}

type appointmentService struct {
	repo repository.AppointmentRepository
}

// NewAppointmentService constructs a new AppointmentService.
func NewAppointmentService(repo repository.AppointmentRepository) AppointmentService {
	return &appointmentService{repo: repo}
}

func (s *appointmentService) Create(ctx context.Context, in CreateAppointmentInput) (*model.Appointment, error) {
	switch {
	case in.Name == "":
		return nil, errs.Validation("name is required")
	case in.Email == "" || !emailRe.MatchString(in.Email):
		return nil, errs.Validation("a valid email is required")
	case in.Phone == "":
		return nil, errs.Validation("phone is required")
	case in.Age < 1 || in.Age > 120:
		return nil, errs.Validation("age must be between 1 and 120")
	case !genders[in.Gender]:
		return nil, errs.Validation("gender must be Male, Female or Other")
	case in.City == "":
		return nil, errs.Validation("city is required")
	case !consultationModes[in.ConsultationMode]:
		return nil, errs.Validation("consultationMode must be Online or Offline (In-Clinic)")
	}

	now := time.Now().UTC()
	a := &model.Appointment{
		ID:               uuid.NewString(),
		Name:             in.Name,
		Email:            in.Email,
		Phone:            in.Phone,
		Age:              in.Age,
		Gender:           in.Gender,
		City:             in.City,
		ConsultationMode: in.ConsultationMode,
		Message:          in.Message,
		Status:           model.AppointmentStatusNew,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	return s.repo.Create(ctx, a)
}

func (s *appointmentService) List(ctx context.Context, limit, offset int) (*ListResult[model.Appointment], error) {
	res, err := s.repo.List(ctx, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return toListResult(res), nil
}

func (s *appointmentService) Get(ctx context.Context, id string) (*model.Appointment, error) {
	if id == "" {
		return nil, errs.Validation("id is required")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *appointmentService) UpdateStatus(ctx context.Context, id, status string) (*model.Appointment, error) {
	if !appointmentStatuses[status] {
		return nil, errs.Validation("invalid appointment status %q", status)
	}
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	current.Status = status
	current.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, current)
}

func (s *appointmentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errs.Validation("id is required")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
