package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Booking states as reported by the backend.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
)

// Booking is a reservation of a court for a time window.
type Booking struct {
	ID            int64     `json:"id"`
	CourtID       int64     `json:"court_id"`
	VenueID       int64     `json:"venue_id"`
	Username      string    `json:"username"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	Price         float64   `json:"price"`
	CreatedAt     time.Time `json:"created_at"`
}

// BookingRequest reserves a court.
type BookingRequest struct {
	CourtID int64     `json:"court_id"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// ListMyBookings returns the caller's bookings, newest first.
func (c *Client) ListMyBookings(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	if err := c.get(ctx, "/bookings", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListVenueBookings returns all bookings for a venue. Owner or admin only.
func (c *Client) ListVenueBookings(ctx context.Context, venueID int64) ([]Booking, error) {
	var bookings []Booking
	if err := c.get(ctx, fmt.Sprintf("/venues/%d/bookings", venueID), nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CreateBooking reserves a court. An idempotency key guards against double
// booking when a submit is retried after an ambiguous failure.
func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (*Booking, error) {
	headers := http.Header{}
	headers.Set("Idempotency-Key", uuid.NewString())

	var booking Booking
	if err := c.do(ctx, http.MethodPost, "/bookings", req, &booking, headers); err != nil {
		return nil, err
	}
	return &booking, nil
}

// CancelBooking cancels a booking the caller owns (or any booking, for
// admins and venue owners).
func (c *Client) CancelBooking(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/bookings/%d/cancel", id), nil, nil, nil)
}
