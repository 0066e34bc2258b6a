package model

import (
	"strings"
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "Scheduled"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

// ParseAppointmentStatus normalizes s to its canonical casing. The
// status enum is closed; unrecognized values return ok=false so callers
// can degrade to a default display instead of failing.
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scheduled":
		return AppointmentStatusScheduled, true
	case "completed":
		return AppointmentStatusCompleted, true
	case "cancelled":
		return AppointmentStatusCancelled, true
	default:
		return AppointmentStatus(s), false
	}
}

func (s AppointmentStatus) Valid() bool {
	_, ok := ParseAppointmentStatus(string(s))
	return ok
}

// Display returns the canonical status text, or "Unknown" for values
// outside the enum. Rendering must never fail on a bad stored value.
func (s AppointmentStatus) Display() string {
	canonical, ok := ParseAppointmentStatus(string(s))
	if !ok {
		return "Unknown"
	}
	return string(canonical)
}

type Severity string

const (
	SeverityMild     Severity = "Mild"
	SeverityModerate Severity = "Moderate"
	SeveritySevere   Severity = "Severe"
)

func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mild":
		return SeverityMild, true
	case "moderate":
		return SeverityModerate, true
	case "severe":
		return SeveritySevere, true
	default:
		return Severity(s), false
	}
}

func (s Severity) Display() string {
	canonical, ok := ParseSeverity(string(s))
	if !ok {
		return "Unknown"
	}
	return string(canonical)
}

// Appointment is a booking document owned by exactly one user. Date and
// CreatedAt are stored as ISO-8601 instants, never wall-clock-naive
// values.
type Appointment struct {
	ID                   string            `json:"$id,omitempty"`
	UserID               string            `json:"userId"`
	DoctorID             string            `json:"doctorId"`
	DoctorName           string            `json:"doctorName"`
	DoctorSpecialization string            `json:"doctorSpecialization,omitempty"`
	Date                 string            `json:"date"`
	Reason               string            `json:"reason,omitempty"`
	Severity             Severity          `json:"severity"`
	Status               AppointmentStatus `json:"status"`
	CreatedAt            string            `json:"createdAt"`
}

// Instant parses the appointment date as an ISO-8601 instant.
func (a *Appointment) Instant() (time.Time, error) {
	return time.Parse(time.RFC3339, a.Date)
}

type CreateAppointmentRequest struct {
	DoctorID             string   `json:"doctorId" validate:"required"`
	DoctorName           string   `json:"doctorName" validate:"required"`
	DoctorSpecialization string   `json:"doctorSpecialization"`
	Date                 string   `json:"date" validate:"required"`
	Reason               string   `json:"reason" validate:"max=1000"`
	Severity             Severity `json:"severity" validate:"required,oneof=Mild Moderate Severe"`
}
