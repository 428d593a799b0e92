package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/voxcrm/backend/internal/models"
)

func newVoiceService(store *fakeStore) *VoiceService {
	return &VoiceService{
		Store:  store,
		Owner:  &OwnerResolver{Store: store, Logger: zerolog.Nop()},
		Logger: zerolog.Nop(),
	}
}

func TestCallLifecycleLinksStartAndEnd(t *testing.T) {
	store := newFakeStore()
	svc := newVoiceService(store)
	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	call, err := svc.CallStarted(context.Background(), CallStartedEvent{
		CallID:    "vapi-123",
		Direction: "Inbound",
		Timestamp: started,
	})
	if err != nil {
		t.Fatalf("call started: %v", err)
	}
	if call.Status != models.CallStatusInProgress {
		t.Fatalf("expected in-progress status, got %q", call.Status)
	}
	if !call.AIHandled {
		t.Fatalf("expected ai_handled=true")
	}

	ended := started.Add(212 * time.Second)
	err = svc.CallEnded(context.Background(), CallEndedEvent{
		CallID:       "vapi-123",
		Status:       models.CallStatusCompleted,
		Duration:     212,
		RecordingURL: "https://rec/1",
		Timestamp:    ended,
	})
	if err != nil {
		t.Fatalf("call ended: %v", err)
	}

	got := store.calls[0]
	if got.ID != call.ID {
		t.Fatalf("expected same internal id, got %s vs %s", got.ID, call.ID)
	}
	if got.Status != models.CallStatusCompleted {
		t.Fatalf("unexpected status %q", got.Status)
	}
	if got.Duration == nil || *got.Duration != 212 {
		t.Fatalf("unexpected duration %v", got.Duration)
	}
	if got.EndTime == nil || !got.EndTime.Equal(ended) {
		t.Fatalf("unexpected end time %v", got.EndTime)
	}
}

func TestCallStartedMatchesCustomerByPhone(t *testing.T) {
	store := newFakeStore()
	phone := "555-0100"
	store.customers = []models.Customer{{ID: "cust-1", Name: "Jane", Phone: &phone, UserID: "u1"}}
	svc := newVoiceService(store)

	call, err := svc.CallStarted(context.Background(), CallStartedEvent{
		CallID:        "vapi-1",
		Direction:     "Inbound",
		CustomerPhone: "555-0100",
		Timestamp:     time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("call started: %v", err)
	}
	if call.CustomerID == nil || *call.CustomerID != "cust-1" {
		t.Fatalf("expected call linked to cust-1, got %v", call.CustomerID)
	}
}

func TestCallStartedUnknownCallerStaysUnlinked(t *testing.T) {
	store := newFakeStore()
	svc := newVoiceService(store)

	call, err := svc.CallStarted(context.Background(), CallStartedEvent{
		CallID:        "vapi-1",
		Direction:     "Inbound",
		CustomerPhone: "555-9999",
		Timestamp:     time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("call started: %v", err)
	}
	if call.CustomerID != nil {
		t.Fatalf("expected unlinked call, got customer %v", *call.CustomerID)
	}
	if len(store.customers) != 0 {
		t.Fatalf("call-started must never create customers")
	}
}

func TestCallEndedUnknownCallID(t *testing.T) {
	svc := newVoiceService(newFakeStore())
	err := svc.CallEnded(context.Background(), CallEndedEvent{CallID: "missing"})
	if !errors.Is(err, ErrCallNotFound) {
		t.Fatalf("expected ErrCallNotFound, got %v", err)
	}
}

func TestTranscriptionSetsURL(t *testing.T) {
	store := newFakeStore()
	svc := newVoiceService(store)
	if _, err := svc.CallStarted(context.Background(), CallStartedEvent{CallID: "vapi-1", Timestamp: time.Now().UTC()}); err != nil {
		t.Fatalf("call started: %v", err)
	}

	if err := svc.Transcription(context.Background(), "vapi-1", "https://tx/1"); err != nil {
		t.Fatalf("transcription: %v", err)
	}
	if store.calls[0].TranscriptURL == nil || *store.calls[0].TranscriptURL != "https://tx/1" {
		t.Fatalf("transcript url not set: %v", store.calls[0].TranscriptURL)
	}

	if err := svc.Transcription(context.Background(), "missing", "https://tx/2"); !errors.Is(err, ErrCallNotFound) {
		t.Fatalf("expected ErrCallNotFound, got %v", err)
	}
}

func TestAppointmentCreatesLeadForUnknownCaller(t *testing.T) {
	store := newFakeStore()
	store.users = []models.User{{ID: "admin-1", Email: "boss@x.com", Role: models.RoleAdmin}}
	svc := newVoiceService(store)

	date := time.Date(2026, 4, 2, 15, 0, 0, 0, time.UTC)
	appt, err := svc.Appointment(context.Background(), "555-0300", AppointmentDetails{Date: date})
	if err != nil {
		t.Fatalf("appointment: %v", err)
	}

	if len(store.customers) != 1 {
		t.Fatalf("expected lead created, got %d customers", len(store.customers))
	}
	lead := store.customers[0]
	if lead.Name != "Unknown" {
		t.Fatalf("unexpected lead name %q", lead.Name)
	}
	if lead.Source != SourceVoiceCall {
		t.Fatalf("unexpected source %q", lead.Source)
	}
	if len(lead.Tags) != 2 || lead.Tags[1] != "Voice Call" {
		t.Fatalf("unexpected tags %v", lead.Tags)
	}
	if lead.UserID != "admin-1" {
		t.Fatalf("expected lead owned by admin, got %q", lead.UserID)
	}

	if appt.CustomerID != lead.ID {
		t.Fatalf("appointment not linked to lead")
	}
	if appt.UserID != lead.UserID {
		t.Fatalf("appointment owner must match customer owner")
	}
	if appt.Status != models.AppointmentStatusPending {
		t.Fatalf("unexpected status %q", appt.Status)
	}
	if appt.Title != "Voice Call Appointment" || appt.Duration != 30 || appt.Type != "Phone Call" {
		t.Fatalf("expected defaulted fields, got %+v", appt)
	}
}

func TestAppointmentForExistingCustomer(t *testing.T) {
	store := newFakeStore()
	phone := "555-0100"
	store.customers = []models.Customer{{ID: "cust-1", Name: "Jane", Phone: &phone, UserID: "u7"}}
	svc := newVoiceService(store)

	appt, err := svc.Appointment(context.Background(), "555-0100", AppointmentDetails{
		Name:     "Jane",
		Title:    "Follow-up",
		Date:     time.Now().UTC().Add(24 * time.Hour),
		Duration: 45,
		Type:     "Meeting",
		Notes:    "call back",
	})
	if err != nil {
		t.Fatalf("appointment: %v", err)
	}
	if len(store.customers) != 1 {
		t.Fatalf("existing customer must not be duplicated")
	}
	if appt.CustomerID != "cust-1" || appt.UserID != "u7" {
		t.Fatalf("unexpected ownership: %+v", appt)
	}
	if appt.Title != "Follow-up" || appt.Duration != 45 {
		t.Fatalf("provided fields must win over defaults: %+v", appt)
	}
}
