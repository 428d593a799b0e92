package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voxcrm/backend/internal/service"
)

// Webhook payloads keep the voice platform's camelCase field names.

type CallStartedRequest struct {
	CallID        string    `json:"callId" validate:"required"`
	Direction     string    `json:"direction" validate:"required"`
	CustomerPhone string    `json:"customerPhone"`
	Timestamp     time.Time `json:"timestamp" validate:"required"`
}

// @Summary Voice call started webhook
// @Tags voice-events
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Router /api/voice-events/call-started [post]
func (h *Handler) VoiceCallStarted(c *gin.Context) {
	var req CallStartedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	call, err := h.Voice.CallStarted(c.Request.Context(), service.CallStartedEvent{
		CallID:        req.CallID,
		Direction:     req.Direction,
		CustomerPhone: req.CustomerPhone,
		Timestamp:     req.Timestamp,
	})
	if err != nil {
		h.Logger.Error().Err(err).Str("call_id", req.CallID).Msg("call-started event failed")
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process call-started event", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "id": call.ID})
}

type CallEndedRequest struct {
	CallID       string    `json:"callId" validate:"required"`
	Status       string    `json:"status" validate:"required"`
	Duration     int       `json:"duration"`
	RecordingURL string    `json:"recordingUrl"`
	Timestamp    time.Time `json:"timestamp" validate:"required"`
}

// @Summary Voice call ended webhook
// @Tags voice-events
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/voice-events/call-ended [post]
func (h *Handler) VoiceCallEnded(c *gin.Context) {
	var req CallEndedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	err := h.Voice.CallEnded(c.Request.Context(), service.CallEndedEvent{
		CallID:       req.CallID,
		Status:       req.Status,
		Duration:     req.Duration,
		RecordingURL: req.RecordingURL,
		Timestamp:    req.Timestamp,
	})
	if err != nil {
		if errors.Is(err, service.ErrCallNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Voice call not found", nil)
			return
		}
		h.Logger.Error().Err(err).Str("call_id", req.CallID).Msg("call-ended event failed")
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process call-ended event", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type TranscriptionRequest struct {
	CallID        string `json:"callId" validate:"required"`
	TranscriptURL string `json:"transcriptUrl" validate:"required,url"`
}

// @Summary Voice call transcription webhook
// @Tags voice-events
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/voice-events/transcription [post]
func (h *Handler) VoiceTranscription(c *gin.Context) {
	var req TranscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	if err := h.Voice.Transcription(c.Request.Context(), req.CallID, req.TranscriptURL); err != nil {
		if errors.Is(err, service.ErrCallNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Voice call not found", nil)
			return
		}
		h.Logger.Error().Err(err).Str("call_id", req.CallID).Msg("transcription event failed")
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process transcription event", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type VoiceAppointmentRequest struct {
	CallID             string                    `json:"callId"`
	CustomerPhone      string                    `json:"customerPhone" validate:"required"`
	AppointmentDetails AppointmentDetailsPayload `json:"appointmentDetails" validate:"required"`
}

type AppointmentDetailsPayload struct {
	Name     string    `json:"name"`
	Title    string    `json:"title"`
	Date     time.Time `json:"date" validate:"required"`
	Duration int       `json:"duration"`
	Type     string    `json:"type"`
	Notes    string    `json:"notes"`
}

// @Summary Voice appointment webhook
// @Tags voice-events
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router /api/voice-events/appointment [post]
func (h *Handler) VoiceAppointment(c *gin.Context) {
	var req VoiceAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	appt, err := h.Voice.Appointment(c.Request.Context(), req.CustomerPhone, service.AppointmentDetails{
		Name:     req.AppointmentDetails.Name,
		Title:    req.AppointmentDetails.Title,
		Date:     req.AppointmentDetails.Date,
		Duration: req.AppointmentDetails.Duration,
		Type:     req.AppointmentDetails.Type,
		Notes:    req.AppointmentDetails.Notes,
	})
	if err != nil {
		h.Logger.Error().Err(err).Str("call_id", req.CallID).Msg("appointment event failed")
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process appointment event", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "appointment_id": appt.ID})
}
