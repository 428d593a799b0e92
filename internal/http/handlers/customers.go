package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/voxcrm/backend/internal/db"
	"github.com/voxcrm/backend/internal/http/middleware"
	"github.com/voxcrm/backend/internal/models"
)

func (h *Handler) CustomersList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	filter := db.CustomerFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Tag:    c.Query("tag"),
		Limit:  limit,
		Offset: offset,
	}

	items, err := h.Store.ListCustomers(c.Request.Context(), filter)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list customers", err.Error())
		return
	}
	total, err := h.Store.CountCustomers(c.Request.Context(), filter)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to count customers", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total, "limit": limit, "offset": offset})
}

func (h *Handler) CustomerDetails(c *gin.Context) {
	customer, err := h.Store.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Customer not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to get customer", err.Error())
		return
	}
	c.JSON(http.StatusOK, customer)
}

type CustomerRequest struct {
	Name   string   `json:"name" validate:"required"`
	Email  *string  `json:"email" validate:"omitempty,email"`
	Phone  *string  `json:"phone"`
	Status string   `json:"status" validate:"omitempty,oneof=New Active Inactive"`
	Tags   []string `json:"tags"`
	Source string   `json:"source"`
}

func (h *Handler) CustomerCreate(c *gin.Context) {
	var req CustomerRequest
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

	source := req.Source
	if source == "" {
		source = "Manual"
	}
	customer := &models.Customer{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Status: req.Status,
		Tags:   req.Tags,
		Source: source,
		UserID: claims.UserID,
	}
	if err := h.Store.CreateCustomer(c.Request.Context(), customer); err != nil {
		if isUniqueViolation(err) {
			writeError(c, http.StatusConflict, "CONFLICT", "A customer with this email already exists", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to create customer", err.Error())
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *Handler) CustomerUpdate(c *gin.Context) {
	customer, err := h.Store.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Customer not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to get customer", err.Error())
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	customer.Name = req.Name
	customer.Email = req.Email
	customer.Phone = req.Phone
	if req.Status != "" {
		customer.Status = req.Status
	}
	if req.Tags != nil {
		customer.Tags = req.Tags
	}
	if req.Source != "" {
		customer.Source = req.Source
	}
	if err := h.Store.UpdateCustomer(c.Request.Context(), customer); err != nil {
		if isUniqueViolation(err) {
			writeError(c, http.StatusConflict, "CONFLICT", "A customer with this email already exists", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to update customer", err.Error())
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) CustomerDelete(c *gin.Context) {
	if err := h.Store.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Customer not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to delete customer", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
