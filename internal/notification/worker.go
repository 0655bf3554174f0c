package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/ledger"
	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/model"
)

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of Sender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool pushes booking lifecycle events to every subscribed front-desk
// browser. It implements ledger.Notifier.
type WorkerPool struct {
	size    int
	jobs    chan ledger.Event
	db      *gorm.DB
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan ledger.Event, size*4),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// Dispatch queues a booking event. It drops the event rather than block the
// booking operation when the queue is full.
func (wp *WorkerPool) Dispatch(evt ledger.Event) {
	select {
	case wp.jobs <- evt:
	default:
		log.Printf("notification queue full, dropping event for booking %d", evt.BookingID)
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan ledger.Event {
	return wp.jobs
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("notification worker %d started", id)
	for {
		select {
		case evt := <-wp.jobs:
			wp.sendEventNotifications(ctx, evt)
		case <-ctx.Done():
			log.Printf("notification worker %d shutting down", id)
			return
		}
	}
}

// payload is the JSON body shown by the service worker on the dashboard.
type payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func eventMessage(evt ledger.Event, roomNumber string) payload {
	switch evt.Status {
	case model.StatusPending:
		return payload{Title: "New booking", Body: fmt.Sprintf("Room %s has a new booking #%d", roomNumber, evt.BookingID)}
	case model.StatusCancelled:
		return payload{Title: "Booking cancelled", Body: fmt.Sprintf("Room %s is available again (booking #%d cancelled)", roomNumber, evt.BookingID)}
	case model.StatusCheckedOut:
		return payload{Title: "Guest checked out", Body: fmt.Sprintf("Room %s is ready for turnover (booking #%d)", roomNumber, evt.BookingID)}
	default:
		return payload{Title: "Booking updated", Body: fmt.Sprintf("Booking #%d is now %s", evt.BookingID, evt.Status)}
	}
}

// sendEventNotifications fans one event out to every stored subscription.
func (wp *WorkerPool) sendEventNotifications(ctx context.Context, evt ledger.Event) {
	var subscriptions []model.PushSubscription
	if err := wp.db.WithContext(ctx).Find(&subscriptions).Error; err != nil {
		log.Printf("Error fetching subscriptions: %v", err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	roomNumber := fmt.Sprintf("#%d", evt.RoomID)
	var room model.Room
	if err := wp.db.WithContext(ctx).Select("room_number").First(&room, evt.RoomID).Error; err != nil {
		log.Printf("Error fetching room %d: %v", evt.RoomID, err)
	} else if room.RoomNumber != "" {
		roomNumber = room.RoomNumber
	}

	body, err := json.Marshal(eventMessage(evt, roomNumber))
	if err != nil {
		log.Printf("Error encoding notification payload: %v", err)
		return
	}

	log.Printf("Sending %d notifications for booking %d", len(subscriptions), evt.BookingID)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, body)
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, body []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(body, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
