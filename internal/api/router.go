package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/config"
	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/auth"
	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/ledger"
	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/mw"
	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, l *ledger.Ledger, authSvc *auth.Service, cfg *config.Config, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	respCache := cache.New(cacheTTL, 10*time.Minute)
	caching := mw.Cache(respCache, cacheTTL)
	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	handler := NewHandler(s, l, authSvc, cfg.Billing.TaxRate, webpushOptions, respCache)

	api := r.Group("/api")
	api.Use(rateLimiter)

	// Public endpoints
	api.POST("/login", handler.Login)
	api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)

	// Everything else needs a live admin session.
	authed := api.Group("")
	authed.Use(mw.RequireSession(authSvc))
	{
		authed.POST("/logout", handler.Logout)

		authed.GET("/stats", caching, GetStats(s))

		authed.GET("/rooms", caching, handler.ListRooms)
		authed.GET("/rooms/search", handler.SearchRooms)
		authed.GET("/rooms/:id", handler.GetRoom)
		authed.POST("/rooms", handler.CreateRoom)
		authed.PUT("/rooms/:id", handler.UpdateRoom)
		authed.DELETE("/rooms/:id", handler.DeleteRoom)

		authed.GET("/customers", handler.ListCustomers)
		authed.GET("/customers/:id", handler.GetCustomer)
		authed.POST("/customers", handler.CreateCustomer)
		authed.PUT("/customers/:id", handler.UpdateCustomer)
		authed.DELETE("/customers/:id", handler.DeleteCustomer)

		authed.GET("/bookings", handler.ListBookings)
		authed.GET("/bookings/:id", handler.GetBooking)
		authed.GET("/bookings/:id/bill", handler.GetBookingBill)
		authed.POST("/bookings", handler.CreateBooking)
		authed.PUT("/bookings/:id", handler.UpdateBooking)
		authed.PATCH("/bookings/:id/status", handler.SetBookingStatus)
		authed.DELETE("/bookings/:id", handler.DeleteBooking)

		authed.GET("/subscriptions", handler.GetSubscription)
		authed.PUT("/subscriptions", handler.PutSubscription)
		authed.DELETE("/subscriptions", handler.DeleteSubscription)
	}

	return r
}
