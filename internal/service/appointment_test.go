package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wellnessapi/internal/errs"
	"wellnessapi/internal/model"
	repomocks "wellnessapi/internal/repository/mocks"
)

func validAppointment() CreateAppointmentInput {
	return CreateAppointmentInput{
		Name:             "Asha Rao",
		Email:            "asha@example.com",
		Phone:            "9876543210",
		Age:              34,
		Gender:           "Female",
		City:             "Pune",
		ConsultationMode: "Online",
		Message:          "Lower back pain after long sitting hours.",
	}
}

func TestAppointmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success defaults status to New", func(t *testing.T) {
		repo := new(repomocks.MockAppointmentRepository)
		svc := NewAppointmentService(repo)

		repo.On("Create", ctx, mock.MatchedBy(func(a *model.Appointment) bool {
			return a.Status == model.AppointmentStatusNew && a.ID != ""
		})).Return(&model.Appointment{ID: "apt-1", Status: model.AppointmentStatusNew}, nil)

		a, err := svc.Create(ctx, validAppointment())

		require.NoError(t, err)
		assert.Equal(t, model.AppointmentStatusNew, a.Status)
		repo.AssertExpectations(t)
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewAppointmentService(new(repomocks.MockAppointmentRepository))

		cases := []struct {
			name   string
			mutate func(*CreateAppointmentInput)
		}{
			{"missing name", func(in *CreateAppointmentInput) { in.Name = "" }},
			{"bad email", func(in *CreateAppointmentInput) { in.Email = "not-an-email" }},
			{"missing phone", func(in *CreateAppointmentInput) { in.Phone = "" }},
			{"age out of range", func(in *CreateAppointmentInput) { in.Age = 0 }},
			{"bad gender", func(in *CreateAppointmentInput) { in.Gender = "unknown" }},
			{"missing city", func(in *CreateAppointmentInput) { in.City = "" }},
			{"bad mode", func(in *CreateAppointmentInput) { in.ConsultationMode = "Phone" }},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				in := validAppointment()
				tc.mutate(&in)
				_, err := svc.Create(context.Background(), in)
				assert.Equal(t, errs.KindValidation, errs.KindOf(err))
			})
		}
	})
}

func TestAppointmentService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := new(repomocks.MockAppointmentRepository)
	svc := NewAppointmentService(repo)

	t.Run("valid transition", func(t *testing.T) {
		repo.On("FindByID", ctx, "apt-1").
			Return(&model.Appointment{ID: "apt-1", Status: model.AppointmentStatusNew}, nil).Once()
		repo.On("Update", ctx, mock.MatchedBy(func(a *model.Appointment) bool {
			return a.Status == model.AppointmentStatusContacted
		})).Return(&model.Appointment{ID: "apt-1", Status: model.AppointmentStatusContacted}, nil).Once()

		a, err := svc.UpdateStatus(ctx, "apt-1", model.AppointmentStatusContacted)

		require.NoError(t, err)
		assert.Equal(t, model.AppointmentStatusContacted, a.Status)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, "apt-1", "Archived")
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})
}
