package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/store"
)

// StatsResponse mirrors the dashboard stat cards.
type StatsResponse struct {
	TotalRooms       int64            `json:"total_rooms"`
	AvailableRooms   int64            `json:"available_rooms"`
	TotalBookings    int64            `json:"total_bookings"`
	TotalCustomers   int64            `json:"total_customers"`
	BookingsByStatus map[string]int64 `json:"bookings_by_status"`
}

// GetStats handles the GET /api/stats request.
func GetStats(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		totalRooms, err := s.Rooms().Count(ctx)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to count rooms"})
			return
		}
		availableRooms, err := s.Rooms().CountAvailable(ctx)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to count available rooms"})
			return
		}
		totalBookings, err := s.Bookings().Count(ctx)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to count bookings"})
			return
		}
		totalCustomers, err := s.Customers().Count(ctx)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to count customers"})
			return
		}
		byStatus, err := s.Bookings().CountByStatus(ctx)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate bookings"})
			return
		}

		counts := make(map[string]int64, len(byStatus))
		for status, n := range byStatus {
			counts[string(status)] = n
		}

		c.JSON(http.StatusOK, StatsResponse{
			TotalRooms:       totalRooms,
			AvailableRooms:   availableRooms,
			TotalBookings:    totalBookings,
			TotalCustomers:   totalCustomers,
			BookingsByStatus: counts,
		})
	}
}
