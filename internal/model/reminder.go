package model

type ReminderType string

const (
	ReminderTypeMedication  ReminderType = "medication"
	ReminderTypeAppointment ReminderType = "appointment"
)

// Reminder is an owned notification-schedule document. MedicationID is
// set only for medication reminders. There is no client-side update or
// delete path; a changed reminder is recreated.
type Reminder struct {
	ID                string       `json:"$id,omitempty"`
	UserID            string       `json:"userId"`
	Title             string       `json:"title"`
	Type              ReminderType `json:"type"`
	MedicationID      string       `json:"medicationId,omitempty"`
	Date              string       `json:"date"`
	Time              string       `json:"time"`
	NotificationSound string       `json:"notificationSound,omitempty"`
	Notes             string       `json:"notes,omitempty"`
	CreatedAt         string       `json:"createdAt"`
}

type CreateReminderRequest struct {
	Title             string       `json:"title" validate:"required"`
	Type              ReminderType `json:"type" validate:"required,oneof=medication appointment"`
	MedicationID      string       `json:"medicationId"`
	Date              string       `json:"date" validate:"required"`
	Time              string       `json:"time" validate:"required"`
	NotificationSound string       `json:"notificationSound"`
	Notes             string       `json:"notes" validate:"max=1000"`
}
