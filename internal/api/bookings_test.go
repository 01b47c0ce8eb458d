package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBooking(t *testing.T) {
	start := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/bookings", r.URL.Path)

		key := r.Header.Get("Idempotency-Key")
		require.NotEmpty(t, key)
		_, err := uuid.Parse(key)
		require.NoError(t, err, "idempotency key must be a UUID")

		var req BookingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(3), req.CourtID)
		assert.True(t, req.Start.Equal(start))

		json.NewEncoder(w).Encode(Booking{
			ID:            101,
			CourtID:       req.CourtID,
			Start:         req.Start,
			End:           req.End,
			Status:        BookingPending,
			PaymentStatus: PaymentPending,
			Price:         25,
		})
	}))

	booking, err := client.CreateBooking(context.Background(), BookingRequest{
		CourtID: 3,
		Start:   start,
		End:     start.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(101), booking.ID)
	assert.Equal(t, BookingPending, booking.Status)
}

func TestCreatePaymentPreference(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bookings/101/payment", r.URL.Path)
		json.NewEncoder(w).Encode(PaymentPreference{
			ID:          "pref-1",
			BookingID:   101,
			CheckoutURL: "https://pay.example.com/pref-1",
		})
	}))

	pref, err := client.CreatePaymentPreference(context.Background(), 101)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/pref-1", pref.CheckoutURL)
}

func TestCancelBooking_NotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	err := client.CancelBooking(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}
