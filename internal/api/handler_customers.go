package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/model"
	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/store"
)

type customerRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// ListCustomers handles GET /api/customers.
func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.store.Customers().List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GetCustomer handles GET /api/customers/:id.
func (h *Handler) GetCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID"})
		return
	}

	customer, err := h.store.Customers().GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// CreateCustomer handles POST /api/customers.
func (h *Handler) CreateCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	if _, err := h.store.Customers().GetByEmail(ctx, req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "a customer with this email already exists"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		writeError(c, err)
		return
	}

	customer := model.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	}
	if err := h.store.Customers().Create(ctx, &customer); err != nil {
		writeError(c, err)
		return
	}

	h.invalidate("/api/stats")
	c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer handles PUT /api/customers/:id.
func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID"})
		return
	}

	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer := model.Customer{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	}
	if err := h.store.Customers().Update(c.Request.Context(), &customer); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles DELETE /api/customers/:id.
func (h *Handler) DeleteCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID"})
		return
	}

	if err := h.store.Customers().Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	h.invalidate("/api/stats")
	c.Status(http.StatusNoContent)
}
