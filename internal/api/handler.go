package api

import (
	"errors"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/auth"
	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/ledger"
	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/mw"
	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store     store.Store
	ledger    *ledger.Ledger
	auth      *auth.Service
	taxRate   float64
	webpush   *webpush.Options
	respCache *cache.Cache
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, l *ledger.Ledger, authSvc *auth.Service, taxRate float64, webpushOptions *webpush.Options, respCache *cache.Cache) *Handler {
	return &Handler{
		store:     s,
		ledger:    l,
		auth:      authSvc,
		taxRate:   taxRate,
		webpush:   webpushOptions,
		respCache: respCache,
	}
}

// invalidate drops cached GET responses under the given path prefixes after a
// mutation.
func (h *Handler) invalidate(prefixes ...string) {
	if h.respCache != nil {
		mw.Invalidate(h.respCache, prefixes...)
	}
}

// writeError maps domain errors onto HTTP responses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrRoomUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": ledger.ErrRoomUnavailable.Error()})
	case errors.Is(err, ledger.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrInvalidDateRange), errors.Is(err, ledger.ErrInvalidStatus):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
