package model

import "strings"

type MedicationStyle string

const (
	MedicationStyleCapsule   MedicationStyle = "capsule"
	MedicationStyleInjection MedicationStyle = "injection"
	MedicationStyleSolid     MedicationStyle = "solid"
	MedicationStyleLiquid    MedicationStyle = "liquid"
)

func ParseMedicationStyle(s string) (MedicationStyle, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "capsule":
		return MedicationStyleCapsule, true
	case "injection":
		return MedicationStyleInjection, true
	case "solid":
		return MedicationStyleSolid, true
	case "liquid":
		return MedicationStyleLiquid, true
	default:
		return MedicationStyle(s), false
	}
}

// MedicationStatusCompleted is the only client-written medication
// status; a medication without it is considered active.
const MedicationStatusCompleted = "Completed"

// Medication is an owned medication-course document. Quantity is kept
// as entered (free text like "30 pills"); Dosage is the per-intake
// count.
type Medication struct {
	ID        string          `json:"$id,omitempty"`
	UserID    string          `json:"userId"`
	Name      string          `json:"name"`
	Dosage    int             `json:"dosage"`
	Quantity  string          `json:"quantity"`
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	TimeOfDay string          `json:"timeOfDay"`
	Style     MedicationStyle `json:"style"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	Status    string          `json:"status,omitempty"`
	CreatedAt string          `json:"createdAt"`
}

type CreateMedicationRequest struct {
	Name      string          `json:"name" validate:"required"`
	Dosage    int             `json:"dosage" validate:"required,min=1"`
	Quantity  string          `json:"quantity" validate:"required"`
	StartDate string          `json:"startDate" validate:"required"`
	EndDate   string          `json:"endDate" validate:"required"`
	TimeOfDay string          `json:"timeOfDay" validate:"required"`
	Style     MedicationStyle `json:"style" validate:"required,oneof=capsule injection solid liquid"`
	ImageURL  string          `json:"imageUrl"`
}

// UpdateMedicationRequest is a partial field set; nil pointers are left
// untouched by the store.
type UpdateMedicationRequest struct {
	Name      *string          `json:"name,omitempty"`
	Dosage    *int             `json:"dosage,omitempty"`
	Quantity  *string          `json:"quantity,omitempty"`
	StartDate *string          `json:"startDate,omitempty"`
	EndDate   *string          `json:"endDate,omitempty"`
	TimeOfDay *string          `json:"timeOfDay,omitempty"`
	Style     *MedicationStyle `json:"style,omitempty"`
	ImageURL  *string          `json:"imageUrl,omitempty"`
	Status    *string          `json:"status,omitempty"`
}
