package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/voxcrm/backend/internal/db"
	"github.com/voxcrm/backend/internal/http/middleware"
	"github.com/voxcrm/backend/internal/models"
)

func (h *Handler) AppointmentsList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	filter := db.AppointmentFilter{
		CustomerID: c.Query("customer_id"),
		Status:     c.Query("status"),
		Limit:      limit,
		Offset:     offset,
	}
	if from, err := time.Parse(time.RFC3339, c.Query("from")); err == nil {
		filter.From = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("to")); err == nil {
		filter.To = &to
	}

	items, err := h.Store.ListAppointments(c.Request.Context(), filter)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list appointments", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "limit": limit, "offset": offset})
}

func (h *Handler) AppointmentDetails(c *gin.Context) {
	appt, err := h.Store.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to get appointment", err.Error())
		return
	}
	c.JSON(http.StatusOK, appt)
}

type AppointmentRequest struct {
	Title      string    `json:"title" validate:"required"`
	Date       time.Time `json:"date" validate:"required"`
	Duration   int       `json:"duration" validate:"omitempty,min=1"`
	Type       string    `json:"type"`
	Status     string    `json:"status" validate:"omitempty,oneof=Pending Confirmed Completed Cancelled"`
	Notes      string    `json:"notes"`
	CustomerID string    `json:"customer_id" validate:"required"`
}

func (h *Handler) AppointmentCreate(c *gin.Context) {
	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	claims, ok := middleware.Principal(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated", nil)
		return
	}

	if _, err := h.Store.GetCustomer(c.Request.Context(), req.CustomerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Customer not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load customer", err.Error())
		return
	}

	duration := req.Duration
	if duration == 0 {
		duration = 30
	}
	appt := &models.Appointment{
		Title:      req.Title,
		Date:       req.Date,
		Duration:   duration,
		Type:       req.Type,
		Status:     req.Status,
		Notes:      req.Notes,
		CustomerID: req.CustomerID,
		UserID:     claims.UserID,
	}
	if err := h.Store.CreateAppointment(c.Request.Context(), appt); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to create appointment", err.Error())
		return
	}
	c.JSON(http.StatusCreated, appt)
}

func (h *Handler) AppointmentUpdate(c *gin.Context) {
	appt, err := h.Store.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to get appointment", err.Error())
		return
	}

	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	appt.Title = req.Title
	appt.Date = req.Date
	if req.Duration != 0 {
		appt.Duration = req.Duration
	}
	if req.Type != "" {
		appt.Type = req.Type
	}
	if req.Status != "" {
		appt.Status = req.Status
	}
	appt.Notes = req.Notes
	if err := h.Store.UpdateAppointment(c.Request.Context(), appt); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to update appointment", err.Error())
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *Handler) AppointmentDelete(c *gin.Context) {
	if err := h.Store.DeleteAppointment(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to delete appointment", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
