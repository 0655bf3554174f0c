package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/billing"
	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/model"
)

const dateLayout = "2006-01-02"

type createBookingRequest struct {
	CustomerID  int64   `json:"customer_id" binding:"required"`
	RoomID      int64   `json:"room_id" binding:"required"`
	CheckIn     string  `json:"check_in" binding:"required"`
	CheckOut    string  `json:"check_out" binding:"required"`
	TotalAmount float64 `json:"total_amount"`
}

type updateBookingRequest struct {
	CustomerID  int64   `json:"customer_id" binding:"required"`
	RoomID      int64   `json:"room_id" binding:"required"`
	CheckIn     string  `json:"check_in" binding:"required"`
	CheckOut    string  `json:"check_out" binding:"required"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status" binding:"required"`
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	return t, err == nil
}

// ListBookings handles GET /api/bookings with optional status and customer_id
// filters. Listings are newest first.
func (h *Handler) ListBookings(c *gin.Context) {
	ctx := c.Request.Context()

	if status := c.Query("status"); status != "" {
		bookings, err := h.ledger.ListByStatus(ctx, model.BookingStatus(status))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
		return
	}

	if customerParam := c.Query("customer_id"); customerParam != "" {
		customerID, err := strconv.ParseInt(customerParam, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID"})
			return
		}
		bookings, err := h.ledger.ListByCustomer(ctx, customerID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
		return
	}

	bookings, err := h.ledger.List(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBooking handles GET /api/bookings/:id.
func (h *Handler) GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	booking, err := h.ledger.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CreateBooking handles POST /api/bookings. A conflict with an existing
// admitted booking comes back as 409 so the client can tell "dates
// unavailable" apart from "save failed".
func (h *Handler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checkIn, ok := parseDate(req.CheckIn)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid check_in date. Use YYYY-MM-DD."})
		return
	}
	checkOut, ok := parseDate(req.CheckOut)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid check_out date. Use YYYY-MM-DD."})
		return
	}

	booking, err := h.ledger.Create(c.Request.Context(), req.CustomerID, req.RoomID, checkIn, checkOut, req.TotalAmount)
	if err != nil {
		writeError(c, err)
		return
	}

	h.invalidate("/api/rooms", "/api/stats")
	c.JSON(http.StatusCreated, booking)
}

// UpdateBooking handles PUT /api/bookings/:id. All fields are writable and no
// overlap re-check runs on edits.
func (h *Handler) UpdateBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checkIn, ok := parseDate(req.CheckIn)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid check_in date. Use YYYY-MM-DD."})
		return
	}
	checkOut, ok := parseDate(req.CheckOut)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid check_out date. Use YYYY-MM-DD."})
		return
	}

	booking := model.Booking{
		ID:          id,
		CustomerID:  req.CustomerID,
		RoomID:      req.RoomID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		TotalAmount: req.TotalAmount,
		Status:      model.BookingStatus(req.Status),
	}
	if err := h.ledger.Update(c.Request.Context(), &booking); err != nil {
		writeError(c, err)
		return
	}

	h.invalidate("/api/rooms", "/api/stats")
	c.JSON(http.StatusOK, booking)
}

// SetBookingStatus handles PATCH /api/bookings/:id/status.
func (h *Handler) SetBookingStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.ledger.SetStatus(c.Request.Context(), id, model.BookingStatus(req.Status)); err != nil {
		writeError(c, err)
		return
	}

	h.invalidate("/api/rooms", "/api/stats")
	c.Status(http.StatusNoContent)
}

// DeleteBooking handles DELETE /api/bookings/:id.
func (h *Handler) DeleteBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	if err := h.ledger.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	h.invalidate("/api/stats")
	c.Status(http.StatusNoContent)
}

// GetBookingBill handles GET /api/bookings/:id/bill and renders the invoice
// for the booking.
func (h *Handler) GetBookingBill(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}
	ctx := c.Request.Context()

	booking, err := h.ledger.GetByID(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	customer, err := h.store.Customers().GetByID(ctx, booking.CustomerID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, billing.Build(booking, customer, h.taxRate))
}
