package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/model"
)

func TestBuildInvoice(t *testing.T) {
	booking := &model.BookingDetail{
		Booking: model.Booking{
			ID:          9,
			CheckIn:     time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
			CheckOut:    time.Date(2024, time.June, 4, 0, 0, 0, 0, time.UTC),
			TotalAmount: 300.00,
			Status:      model.StatusConfirmed,
		},
		RoomNumber:    "204",
		RoomType:      "Deluxe",
		PricePerNight: 100.00,
	}
	customer := &model.Customer{
		FirstName: "Dana",
		LastName:  "Lopez",
		Email:     "dana@example.com",
		Phone:     "555-0101",
	}

	inv := Build(booking, customer, 0.10)

	assert.Equal(t, int64(9), inv.BookingID)
	assert.Equal(t, "Dana Lopez", inv.CustomerName)
	assert.Equal(t, 3, inv.Nights)
	assert.Equal(t, "2024-06-01", inv.CheckIn)
	assert.Equal(t, "2024-06-04", inv.CheckOut)
	assert.Equal(t, 300.00, inv.Subtotal)
	assert.InDelta(t, 30.00, inv.Tax, 1e-9)
	assert.InDelta(t, 330.00, inv.Total, 1e-9)
}

func TestBuildInvoiceUsesStoredAmount(t *testing.T) {
	// The stored total is editable; the invoice must bill what is stored,
	// not recompute nights x price.
	booking := &model.BookingDetail{
		Booking: model.Booking{
			CheckIn:     time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
			CheckOut:    time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC),
			TotalAmount: 500.00,
		},
		PricePerNight: 100.00,
	}
	inv := Build(booking, &model.Customer{}, 0.10)
	assert.Equal(t, 500.00, inv.Subtotal)
	assert.InDelta(t, 550.00, inv.Total, 1e-9)
}
