package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/voxcrm/backend/internal/models"
)

const SourceVoiceCall = "Voice Call"

// ErrCallNotFound reports a webhook referencing an external call id no
// call-started event was recorded for.
var ErrCallNotFound = errors.New("voice call not found")

type VoiceStore interface {
	GetCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, c *models.Customer) error
	CreateVoiceCall(ctx context.Context, v *models.VoiceCall) error
	GetVoiceCallByCallID(ctx context.Context, callID string) (*models.VoiceCall, error)
	FinishVoiceCall(ctx context.Context, id, status string, duration int, recordingURL string, endTime time.Time) error
	SetVoiceCallTranscript(ctx context.Context, id, transcriptURL string) error
	CreateAppointment(ctx context.Context, a *models.Appointment) error
}

// VoiceService turns call-lifecycle webhook events into record mutations.
// Events for one call may arrive in any order after call-started; ended and
// transcription each write their own field set, so no ordering is enforced
// between them.
type VoiceService struct {
	Store  VoiceStore
	Owner  *OwnerResolver
	Logger zerolog.Logger
}

type CallStartedEvent struct {
	CallID        string
	Direction     string
	CustomerPhone string
	Timestamp     time.Time
}

// CallStarted records a new in-progress call. The caller is matched to a
// customer by phone when possible but never created here.
func (s *VoiceService) CallStarted(ctx context.Context, ev CallStartedEvent) (*models.VoiceCall, error) {
	var customerID *string
	if ev.CustomerPhone != "" {
		c, err := s.Store.GetCustomerByPhone(ctx, ev.CustomerPhone)
		switch {
		case err == nil:
			customerID = &c.ID
		case errors.Is(err, pgx.ErrNoRows):
			// unknown caller, call stays unlinked
		default:
			return nil, err
		}
	}

	call := &models.VoiceCall{
		CallID:     ev.CallID,
		CustomerID: customerID,
		Direction:  ev.Direction,
		Status:     models.CallStatusInProgress,
		StartTime:  ev.Timestamp,
		AIHandled:  true,
	}
	if err := s.Store.CreateVoiceCall(ctx, call); err != nil {
		return nil, err
	}
	return call, nil
}

type CallEndedEvent struct {
	CallID       string
	Status       string
	Duration     int
	RecordingURL string
	Timestamp    time.Time
}

func (s *VoiceService) CallEnded(ctx context.Context, ev CallEndedEvent) error {
	call, err := s.findCall(ctx, ev.CallID)
	if err != nil {
		return err
	}
	return s.Store.FinishVoiceCall(ctx, call.ID, ev.Status, ev.Duration, ev.RecordingURL, ev.Timestamp)
}

func (s *VoiceService) Transcription(ctx context.Context, callID, transcriptURL string) error {
	call, err := s.findCall(ctx, callID)
	if err != nil {
		return err
	}
	return s.Store.SetVoiceCallTranscript(ctx, call.ID, transcriptURL)
}

type AppointmentDetails struct {
	Name     string
	Title    string
	Date     time.Time
	Duration int
	Type     string
	Notes    string
}

// Appointment books an appointment requested during a call. An unknown
// caller becomes a new lead owned by the ingestion owner; the appointment is
// owned by the same principal as its customer.
func (s *VoiceService) Appointment(ctx context.Context, customerPhone string, details AppointmentDetails) (*models.Appointment, error) {
	customer, err := s.Store.GetCustomerByPhone(ctx, customerPhone)
	if errors.Is(err, pgx.ErrNoRows) {
		customer, err = s.createLead(ctx, customerPhone, details.Name)
	}
	if err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		Title:      details.Title,
		Date:       details.Date,
		Duration:   details.Duration,
		Type:       details.Type,
		Status:     models.AppointmentStatusPending,
		Notes:      details.Notes,
		CustomerID: customer.ID,
		UserID:     customer.UserID,
	}
	if appt.Title == "" {
		appt.Title = "Voice Call Appointment"
	}
	if appt.Duration == 0 {
		appt.Duration = 30
	}
	if appt.Type == "" {
		appt.Type = "Phone Call"
	}
	if appt.Notes == "" {
		appt.Notes = "Scheduled via AI voice call"
	}
	if err := s.Store.CreateAppointment(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *VoiceService) createLead(ctx context.Context, phone, name string) (*models.Customer, error) {
	owner, err := s.Owner.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve ingestion owner: %w", err)
	}
	if name == "" {
		name = "Unknown"
	}
	c := &models.Customer{
		Name:   name,
		Phone:  &phone,
		Status: models.CustomerStatusNew,
		Tags:   []string{"Lead", "Voice Call"},
		Source: SourceVoiceCall,
		UserID: owner.ID,
	}
	if err := s.Store.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *VoiceService) findCall(ctx context.Context, callID string) (*models.VoiceCall, error) {
	call, err := s.Store.GetVoiceCallByCallID(ctx, callID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("call %s: %w", callID, ErrCallNotFound)
	}
	if err != nil {
		return nil, err
	}
	return call, nil
}
