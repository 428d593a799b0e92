package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/voxcrm/backend/internal/service"
)

type ConfigureSyncRequest struct {
	SheetID   string `json:"sheet_id" validate:"required"`
	SheetName string `json:"sheet_name"`
}

// @Summary Configure sheet sync
// @Description Set the source sheet and run an initial reconciliation pass
// @Tags sync
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/sync/configure [post]
func (h *Handler) ConfigureSync(c *gin.Context) {
	var req ConfigureSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "sheet_id is required", err.Error())
		return
	}
	if req.SheetName == "" {
		req.SheetName = "Sheet1"
	}

	h.Scheduler.Configure(service.SheetConfig{SheetID: req.SheetID, SheetName: req.SheetName})

	summary, err := h.Scheduler.Trigger(c.Request.Context())
	if err != nil && !errors.Is(err, service.ErrSyncInProgress) {
		h.Logger.Error().Err(err).Msg("initial sync pass failed")
		writeError(c, http.StatusInternalServerError, "SYNC_ERROR", "Initial sync pass failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "configured", "summary": summary})
}

// @Summary Trigger sheet sync
// @Tags sync
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/sync/trigger [post]
func (h *Handler) TriggerSync(c *gin.Context) {
	summary, err := h.Scheduler.Trigger(c.Request.Context())
	switch {
	case errors.Is(err, service.ErrNotConfigured):
		writeError(c, http.StatusBadRequest, "NOT_CONFIGURED", "No sheet configured", nil)
	case errors.Is(err, service.ErrSyncInProgress):
		c.JSON(http.StatusOK, gin.H{"status": "already_running"})
	case err != nil:
		h.Logger.Error().Err(err).Msg("manual sync pass failed")
		writeError(c, http.StatusInternalServerError, "SYNC_ERROR", "Sync pass failed", err.Error())
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok", "summary": summary})
	}
}

// @Summary Sync status
// @Tags sync
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/sync/status [get]
func (h *Handler) SyncStatus(c *gin.Context) {
	cursor, err := h.Store.GetLatestSyncCursor(c.Request.Context())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "No sync has run yet", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load sync status", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sheet_id":       cursor.SheetID,
		"sheet_name":     cursor.SheetName,
		"last_synced_at": cursor.LastSyncedAt,
		"last_row_count": cursor.LastRowCount,
	})
}
