package models

import "time"

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

const (
	CustomerStatusNew      = "New"
	CustomerStatusActive   = "Active"
	CustomerStatusInactive = "Inactive"
)

const (
	AppointmentStatusPending   = "Pending"
	AppointmentStatusConfirmed = "Confirmed"
	AppointmentStatusCompleted = "Completed"
	AppointmentStatusCancelled = "Cancelled"
)

const (
	CallStatusInProgress = "In Progress"
	CallStatusCompleted  = "Completed"
	CallStatusMissed     = "Missed"
	CallStatusVoicemail  = "Voicemail"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Customer struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      *string   `json:"email"`
	Phone      *string   `json:"phone"`
	Status     string    `json:"status"`
	Tags       []string  `json:"tags"`
	Source     string    `json:"source"`
	ExternalID *string   `json:"external_id,omitempty"`
	UserID     string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Appointment struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Date       time.Time `json:"date"`
	Duration   int       `json:"duration"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes"`
	CustomerID string    `json:"customer_id"`
	UserID     string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// VoiceCall tracks one phone call driven by the voice platform. CallID is the
// correlation key the platform reports in webhook events; CustomerID stays nil
// until the caller is matched to a customer.
type VoiceCall struct {
	ID            string     `json:"id"`
	CallID        string     `json:"call_id"`
	CustomerID    *string    `json:"customer_id"`
	Direction     string     `json:"direction"`
	Status        string     `json:"status"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	Duration      *int       `json:"duration"`
	RecordingURL  *string    `json:"recording_url"`
	TranscriptURL *string    `json:"transcript_url"`
	AIHandled     bool       `json:"ai_handled"`
	Notes         *string    `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// SheetSyncCursor is the per-sheet bookmark for the reconciliation engine.
// LastRowCount counts data rows (header excluded) already processed; it never
// decreases across successful passes.
type SheetSyncCursor struct {
	ID           string    `json:"id"`
	SheetID      string    `json:"sheet_id"`
	SheetName    string    `json:"sheet_name"`
	LastSyncedAt time.Time `json:"last_synced_at"`
	LastRowCount int       `json:"last_row_count"`
}
