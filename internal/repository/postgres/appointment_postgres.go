package postgres

import (
	"database/sql"

	"wellnessapi/internal/model"
	"wellnessapi/internal/repository"
)

// AppointmentPostgres is the PostgreSQL implementation of the appointment
// collection. Appointments carry no slug or assets.
type AppointmentPostgres struct {
	table[model.Appointment]
}

var _ repository.AppointmentRepository = (*AppointmentPostgres)(nil)

// NewAppointmentPostgres creates a new appointment repository.
func NewAppointmentPostgres(db *sql.DB) *AppointmentPostgres {
	return &AppointmentPostgres{table[model.Appointment]{
		db:    db,
		name:  "appointments",
		label: "appointment",
		cols: []string{
			"id", "name", "email", "phone", "age", "gender", "city",
			"consultation_mode", "message", "status",
			"created_at", "updated_at",
		},
		scan: scanAppointment,
		args: appointmentArgs,
	}}
}

func scanAppointment(row rowScanner) (*model.Appointment, error) {
	var a model.Appointment
	if err := row.Scan(
		&a.ID, &a.Name, &a.Email, &a.Phone, &a.Age, &a.Gender, &a.City,
		&a.ConsultationMode, &a.Message, &a.Status,
		&a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func appointmentArgs(a *model.Appointment) []any {
	return []any{
		a.ID, a.Name, a.Email, a.Phone, a.Age, a.Gender, a.City,
		a.ConsultationMode, a.Message, a.Status,
		a.CreatedAt, a.UpdatedAt,
	}
}
