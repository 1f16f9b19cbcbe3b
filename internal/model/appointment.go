package model

import "time"

// Appointment statuses.
const (
	AppointmentStatusNew       = "New"
	AppointmentStatusContacted = "Contacted"
	AppointmentStatusCompleted = "Completed"
	AppointmentStatusCancelled = "Cancelled"
)

// Appointment is a consultation request submitted by a visitor.
type Appointment struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Age              int       `json:"age"`
	Gender           string    `json:"gender"`
	City             string    `json:"city"`
	ConsultationMode string    `json:"consultationMode"`
	Message          string    `json:"message"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
