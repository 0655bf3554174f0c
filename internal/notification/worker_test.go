package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/ledger"
	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/model"
)

// mockSender is a mock implementation of the Sender interface.
type mockSender struct {
	SendFunc func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// Send calls the mock SendFunc.
func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return m.SendFunc(payload, sub, options)
}

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestWorkerPool_Dispatch(t *testing.T) {
	db, _ := newTestDB(t)
	wp := NewWorkerPool(1, db, &webpush.Options{})

	evt := ledger.Event{BookingID: 123, RoomID: 7, Status: model.StatusPending}
	wp.Dispatch(evt)

	select {
	case job := <-wp.jobs:
		assert.Equal(t, evt, job)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPool_DispatchNeverBlocks(t *testing.T) {
	db, _ := newTestDB(t)
	wp := NewWorkerPool(1, db, &webpush.Options{})

	// No worker is draining the channel; excess events must be dropped, not
	// stall the booking path.
	for i := 0; i < 100; i++ {
		wp.Dispatch(ledger.Event{BookingID: int64(i)})
	}
}

func TestWorkerPool_WorkerLogic(t *testing.T) {
	gormDB, mock := newTestDB(t)
	wp := NewWorkerPool(1, gormDB, &webpush.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	subscriptionRows := func(endpoint string) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"endpoint", "p256dh", "auth", "created_at"}).
			AddRow(endpoint, "test_p256dh", "test_auth", time.Now())
	}

	t.Run("sends notification for new booking", func(t *testing.T) {
		var wg sync.WaitGroup
		wg.Add(1)

		wp.sender = &mockSender{
			SendFunc: func(body []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
				assert.Equal(t, "https://example.com/push", sub.Endpoint)
				var p payload
				require.NoError(t, json.Unmarshal(body, &p))
				assert.Equal(t, "New booking", p.Title)
				assert.Equal(t, "Room 204 has a new booking #55", p.Body)
				wg.Done()
				return &http.Response{
					StatusCode: http.StatusCreated,
					Body:       io.NopCloser(bytes.NewBufferString("")),
				}, nil
			},
		}

		mock.ExpectQuery(`SELECT \* FROM "push_subscriptions"`).
			WillReturnRows(subscriptionRows("https://example.com/push"))
		mock.ExpectQuery(`SELECT "room_number" FROM "rooms" WHERE "rooms"\."id" = \$1`).
			WithArgs(int64(9), 1).
			WillReturnRows(sqlmock.NewRows([]string{"room_number"}).AddRow("204"))

		wp.Dispatch(ledger.Event{BookingID: 55, RoomID: 9, Status: model.StatusPending})
		wg.Wait()
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deletes expired subscription", func(t *testing.T) {
		wp.sender = &mockSender{
			SendFunc: func(body []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusGone,
					Body:       io.NopCloser(bytes.NewBufferString("")),
				}, nil
			},
		}

		mock.ExpectQuery(`SELECT \* FROM "push_subscriptions"`).
			WillReturnRows(subscriptionRows("https://example.com/expired"))
		mock.ExpectQuery(`SELECT "room_number" FROM "rooms" WHERE "rooms"\."id" = \$1`).
			WithArgs(int64(9), 1).
			WillReturnRows(sqlmock.NewRows([]string{"room_number"}).AddRow("204"))

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "push_subscriptions" WHERE "push_subscriptions"\."endpoint" = \$1`).
			WithArgs("https://example.com/expired").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		wp.Dispatch(ledger.Event{BookingID: 56, RoomID: 9, Status: model.StatusCancelled})

		// A short sleep to allow the worker to process the job
		time.Sleep(100 * time.Millisecond)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls back to room ID when lookup fails", func(t *testing.T) {
		var wg sync.WaitGroup
		wg.Add(1)

		wp.sender = &mockSender{
			SendFunc: func(body []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
				var p payload
				require.NoError(t, json.Unmarshal(body, &p))
				assert.Equal(t, "Room #12 is ready for turnover (booking #57)", p.Body)
				wg.Done()
				return &http.Response{
					StatusCode: http.StatusCreated,
					Body:       io.NopCloser(bytes.NewBufferString("")),
				}, nil
			},
		}

		mock.ExpectQuery(`SELECT \* FROM "push_subscriptions"`).
			WillReturnRows(subscriptionRows("https://example.com/fallback"))
		mock.ExpectQuery(`SELECT "room_number" FROM "rooms" WHERE "rooms"\."id" = \$1`).
			WithArgs(int64(12), 1).
			WillReturnError(fmt.Errorf("room not found"))

		wp.Dispatch(ledger.Event{BookingID: 57, RoomID: 12, Status: model.StatusCheckedOut})
		wg.Wait()
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
