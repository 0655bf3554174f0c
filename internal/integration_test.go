package internal

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/config"
	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/api"
	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/auth"
	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/ledger"
	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/model"
	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/store"
)

const (
	testAdminUser     = "admin"
	testAdminPassword = "front-desk-secret"
)

// setupServer wires the full API stack onto an in-memory SQLite database and
// returns the router plus a request helper that attaches the session token.
func setupServer(t *testing.T) (*gin.Engine, func(method, path, token string, body any) *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	// A private in-memory database exists per connection; keep the pool at one.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	err = testDB.AutoMigrate(&model.Room{}, &model.Customer{}, &model.Booking{}, &model.PushSubscription{})
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Server.RateLimitPerSec = 1000 // keep the limiter out of the test's way
	cfg.Server.RateLimitBurst = 1000
	cfg.Server.CacheTTLSeconds = 1
	cfg.Auth.Username = testAdminUser
	cfg.Auth.PasswordHash = string(hash)
	cfg.Auth.SessionTTL = time.Hour
	cfg.Billing.TaxRate = 0.10

	appStore := store.NewGormStore(testDB)
	bookingLedger := ledger.New(appStore, nil)
	authSvc := auth.NewService(&cfg.Auth)
	router := api.NewRouter(appStore, bookingLedger, authSvc, cfg, nil)

	doRequest := func(method, path, token string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	return router, doRequest
}

func login(t *testing.T, doRequest func(string, string, string, any) *httptest.ResponseRecorder) string {
	t.Helper()
	w := doRequest(http.MethodPost, "/api/login", "", gin.H{
		"username": testAdminUser,
		"password": testAdminPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
	return resp["token"]
}

// TestBookingAPILifecycle walks the whole admin flow over HTTP: sign in,
// register a room and a guest, book the room, get turned away on a colliding
// request, read the bill, cancel, and rebook the freed dates.
func TestBookingAPILifecycle(t *testing.T) {
	_, doRequest := setupServer(t)

	// --- Authentication ---
	w := doRequest(http.MethodGet, "/api/rooms", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "requests without a session should be rejected")

	w = doRequest(http.MethodPost, "/api/login", "", gin.H{"username": testAdminUser, "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := login(t, doRequest)

	// --- Inventory and guest setup ---
	w = doRequest(http.MethodPost, "/api/rooms", token, gin.H{
		"room_number":     "101",
		"room_type":       "Standard",
		"price_per_night": 80.00,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var room model.Room
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &room))
	assert.True(t, room.IsAvailable, "a new room starts available")

	w = doRequest(http.MethodPost, "/api/rooms", token, gin.H{
		"room_number":     "101",
		"room_type":       "Deluxe",
		"price_per_night": 120.00,
	})
	assert.Equal(t, http.StatusConflict, w.Code, "duplicate room numbers are rejected")

	w = doRequest(http.MethodPost, "/api/customers", token, gin.H{
		"first_name": "Alice",
		"last_name":  "Nguyen",
		"email":      "alice@example.com",
		"phone":      "555-0101",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var customer model.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &customer))

	w = doRequest(http.MethodPost, "/api/customers", token, gin.H{
		"first_name": "Alicia",
		"last_name":  "Ng",
		"email":      "alice@example.com",
	})
	assert.Equal(t, http.StatusConflict, w.Code, "duplicate guest emails are rejected")

	// --- First booking ---
	w = doRequest(http.MethodPost, "/api/bookings", token, gin.H{
		"customer_id": customer.ID,
		"room_id":     room.ID,
		"check_in":    "2024-07-01",
		"check_out":   "2024-07-03",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var booking model.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.Equal(t, 160.00, booking.TotalAmount, "amount should be seeded from nights x price")

	w = doRequest(http.MethodGet, "/api/rooms/"+itoa(room.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var claimed model.Room
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &claimed))
	assert.False(t, claimed.IsAvailable, "the booked room should be flagged unavailable")

	// --- Colliding booking ---
	w = doRequest(http.MethodPost, "/api/bookings", token, gin.H{
		"customer_id": customer.ID,
		"room_id":     room.ID,
		"check_in":    "2024-07-02",
		"check_out":   "2024-07-04",
	})
	assert.Equal(t, http.StatusConflict, w.Code, "overlapping dates on the same room must be turned away")

	w = doRequest(http.MethodPost, "/api/bookings", token, gin.H{
		"customer_id": customer.ID,
		"room_id":     room.ID,
		"check_in":    "2024-07-05",
		"check_out":   "2024-07-04",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "check-out before check-in is not a valid range")

	// --- Bill ---
	w = doRequest(http.MethodGet, "/api/bookings/"+itoa(booking.ID)+"/bill", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bill map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bill))
	assert.Equal(t, "Alice Nguyen", bill["customer_name"])
	assert.Equal(t, "101", bill["room_number"])
	assert.Equal(t, float64(2), bill["nights"])
	assert.Equal(t, 160.00, bill["subtotal"])
	assert.Equal(t, 16.00, bill["tax"])
	assert.Equal(t, 176.00, bill["total"])

	// --- Status transitions ---
	w = doRequest(http.MethodPatch, "/api/bookings/"+itoa(booking.ID)+"/status", token, gin.H{"status": "CHECKED_OUT"})
	assert.Equal(t, http.StatusConflict, w.Code, "PENDING cannot jump straight to CHECKED_OUT")

	w = doRequest(http.MethodPatch, "/api/bookings/"+itoa(booking.ID)+"/status", token, gin.H{"status": "CANCELLED"})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(http.MethodGet, "/api/rooms/"+itoa(room.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var released model.Room
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &released))
	assert.True(t, released.IsAvailable, "cancelling should release the room")

	// --- Rebooking the freed dates ---
	w = doRequest(http.MethodPost, "/api/bookings", token, gin.H{
		"customer_id": customer.ID,
		"room_id":     room.ID,
		"check_in":    "2024-07-01",
		"check_out":   "2024-07-03",
	})
	assert.Equal(t, http.StatusCreated, w.Code, "cancelled bookings should not block the dates")

	// --- Missing resources ---
	w = doRequest(http.MethodGet, "/api/bookings/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(http.MethodPatch, "/api/bookings/9999/status", token, gin.H{"status": "CONFIRMED"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// --- Logout invalidates the session ---
	w = doRequest(http.MethodPost, "/api/logout", token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(http.MethodGet, "/api/rooms", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestStatsAndListings checks the dashboard counters and the booking list
// filters through the HTTP surface.
func TestStatsAndListings(t *testing.T) {
	_, doRequest := setupServer(t)
	token := login(t, doRequest)

	for _, r := range []gin.H{
		{"room_number": "201", "room_type": "Standard", "price_per_night": 80.00},
		{"room_number": "202", "room_type": "Deluxe", "price_per_night": 150.00},
	} {
		w := doRequest(http.MethodPost, "/api/rooms", token, r)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doRequest(http.MethodPost, "/api/customers", token, gin.H{
		"first_name": "Bob", "last_name": "Lam", "email": "bob@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var customer model.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &customer))

	w = doRequest(http.MethodPost, "/api/bookings", token, gin.H{
		"customer_id": customer.ID,
		"room_id":     1,
		"check_in":    "2024-08-01",
		"check_out":   "2024-08-05",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(http.MethodGet, "/api/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, float64(2), stats["total_rooms"])
	assert.Equal(t, float64(1), stats["available_rooms"])
	assert.Equal(t, float64(1), stats["total_bookings"])
	assert.Equal(t, float64(1), stats["total_customers"])

	w = doRequest(http.MethodGet, "/api/bookings?status=PENDING", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pending []model.BookingDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, "Bob Lam", pending[0].CustomerName)
	assert.Equal(t, "201", pending[0].RoomNumber)

	w = doRequest(http.MethodGet, "/api/bookings?status=CONFIRMED", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var confirmed []model.BookingDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &confirmed))
	assert.Empty(t, confirmed)

	w = doRequest(http.MethodGet, "/api/rooms?available=true", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var available []model.Room
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &available))
	require.Len(t, available, 1)
	assert.Equal(t, "202", available[0].RoomNumber)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
