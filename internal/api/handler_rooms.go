package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/model"
	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/store"
)

type roomRequest struct {
	RoomNumber    string  `json:"room_number" binding:"required"`
	RoomType      string  `json:"room_type" binding:"required"`
	PricePerNight float64 `json:"price_per_night" binding:"required,gt=0"`
	IsAvailable   *bool   `json:"is_available"`
	Description   string  `json:"description"`
}

// ListRooms handles GET /api/rooms, with optional available/type filters.
func (h *Handler) ListRooms(c *gin.Context) {
	ctx := c.Request.Context()
	availableOnly := c.Query("available") == "true"
	roomType := c.Query("type")

	var (
		rooms []model.Room
		err   error
	)
	switch {
	case roomType != "":
		rooms, err = h.store.Rooms().ListByType(ctx, roomType, availableOnly)
	case availableOnly:
		rooms, err = h.store.Rooms().ListAvailable(ctx)
	default:
		rooms, err = h.store.Rooms().List(ctx)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// SearchRooms handles GET /api/rooms/search?q=term with a substring match
// over number, type and description.
func (h *Handler) SearchRooms(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	rooms, err := h.store.Rooms().Search(c.Request.Context(), term)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoom handles GET /api/rooms/:id.
func (h *Handler) GetRoom(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	room, err := h.store.Rooms().GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// CreateRoom handles POST /api/rooms.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	if _, err := h.store.Rooms().GetByNumber(ctx, req.RoomNumber); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "room number already exists"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		writeError(c, err)
		return
	}

	room := model.Room{
		RoomNumber:    req.RoomNumber,
		RoomType:      req.RoomType,
		PricePerNight: req.PricePerNight,
		IsAvailable:   true,
		Description:   req.Description,
	}
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}

	if err := h.store.Rooms().Create(ctx, &room); err != nil {
		writeError(c, err)
		return
	}

	h.invalidate("/api/rooms", "/api/stats")
	c.JSON(http.StatusCreated, room)
}

// UpdateRoom handles PUT /api/rooms/:id. Type, price, description and the
// availability flag are all freely editable by the administrator.
func (h *Handler) UpdateRoom(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	current, err := h.store.Rooms().GetByID(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}

	current.RoomNumber = req.RoomNumber
	current.RoomType = req.RoomType
	current.PricePerNight = req.PricePerNight
	current.Description = req.Description
	if req.IsAvailable != nil {
		current.IsAvailable = *req.IsAvailable
	}

	if err := h.store.Rooms().Update(ctx, current); err != nil {
		writeError(c, err)
		return
	}

	h.invalidate("/api/rooms", "/api/stats")
	c.JSON(http.StatusOK, current)
}

// DeleteRoom handles DELETE /api/rooms/:id.
func (h *Handler) DeleteRoom(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	if err := h.store.Rooms().Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	h.invalidate("/api/rooms", "/api/stats")
	c.Status(http.StatusNoContent)
}
