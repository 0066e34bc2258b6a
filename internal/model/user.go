package model

// UserProfile is the client-side profile document created at signup,
// one per account. AccountID references the owning store account and
// never changes after creation.
type UserProfile struct {
	ID        string `json:"$id,omitempty"`
	AccountID string `json:"accountId"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Avatar    string `json:"avatar,omitempty"`
}

// HealthProfile is the extended health-record document. All fields are
// free-form strings as entered by the user; the store never interprets
// them.
type HealthProfile struct {
	ID               string `json:"$id,omitempty"`
	UserID           string `json:"userId"`
	Avatar           string `json:"avatar,omitempty"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	DateOfBirth      string `json:"dateOfBirth,omitempty"`
	Gender           string `json:"gender,omitempty"`
	BloodType        string `json:"bloodType,omitempty"`
	Height           string `json:"height,omitempty"`
	Weight           string `json:"weight,omitempty"`
	Allergies        string `json:"allergies,omitempty"`
	EmergencyContact string `json:"emergencyContact,omitempty"`
	CreatedAt        string `json:"createdAt,omitempty"`
}

// UpdateHealthProfileRequest carries a partial set of profile fields.
// Nil pointers are omitted from the mutation entirely.
type UpdateHealthProfileRequest struct {
	Avatar           *string `json:"avatar,omitempty"`
	Name             *string `json:"name,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	DateOfBirth      *string `json:"dateOfBirth,omitempty"`
	Gender           *string `json:"gender,omitempty"`
	BloodType        *string `json:"bloodType,omitempty"`
	Height           *string `json:"height,omitempty"`
	Weight           *string `json:"weight,omitempty"`
	Allergies        *string `json:"allergies,omitempty"`
	EmergencyContact *string `json:"emergencyContact,omitempty"`
}
