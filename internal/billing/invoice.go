package billing

import (
	"time"

	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/model"
)

// Invoice is the bill rendered for one booking.
type Invoice struct {
	BookingID     int64               `json:"booking_id"`
	Status        model.BookingStatus `json:"status"`
	CustomerName  string              `json:"customer_name"`
	CustomerEmail string              `json:"customer_email"`
	CustomerPhone string              `json:"customer_phone"`
	RoomNumber    string              `json:"room_number"`
	RoomType      string              `json:"room_type"`
	CheckIn       string              `json:"check_in"`
	CheckOut      string              `json:"check_out"`
	Nights        int                 `json:"nights"`
	PricePerNight float64             `json:"price_per_night"`
	Subtotal      float64             `json:"subtotal"`
	TaxRate       float64             `json:"tax_rate"`
	Tax           float64             `json:"tax"`
	Total         float64             `json:"total"`
	IssueDate     string              `json:"issue_date"`
}

const dateLayout = "2006-01-02"

// Build assembles an invoice from a booking and the guest's contact details.
// The subtotal is the booking's stored amount, which may have been edited
// away from nights x price.
func Build(booking *model.BookingDetail, customer *model.Customer, taxRate float64) Invoice {
	subtotal := booking.TotalAmount
	tax := subtotal * taxRate

	return Invoice{
		BookingID:     booking.ID,
		Status:        booking.Status,
		CustomerName:  customer.FullName(),
		CustomerEmail: customer.Email,
		CustomerPhone: customer.Phone,
		RoomNumber:    booking.RoomNumber,
		RoomType:      booking.RoomType,
		CheckIn:       booking.CheckIn.Format(dateLayout),
		CheckOut:      booking.CheckOut.Format(dateLayout),
		Nights:        booking.Nights(),
		PricePerNight: booking.PricePerNight,
		Subtotal:      subtotal,
		TaxRate:       taxRate,
		Tax:           tax,
		Total:         subtotal + tax,
		IssueDate:     time.Now().Format(dateLayout),
	}
}
