package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/voxcrm/backend/internal/db"
)

func (h *Handler) VoiceCallsList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	filter := db.VoiceCallFilter{
		CustomerID: c.Query("customer_id"),
		Status:     c.Query("status"),
		Direction:  c.Query("direction"),
		Limit:      limit,
		Offset:     offset,
	}

	items, err := h.Store.ListVoiceCalls(c.Request.Context(), filter)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list voice calls", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "limit": limit, "offset": offset})
}

func (h *Handler) VoiceCallDetails(c *gin.Context) {
	call, err := h.Store.GetVoiceCall(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Voice call not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to get voice call", err.Error())
		return
	}
	c.JSON(http.StatusOK, call)
}
