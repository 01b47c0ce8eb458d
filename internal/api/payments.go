package api

import (
	"context"
	"fmt"
	"net/http"
)

// Payment states as reported by the backend.
const (
	PaymentPendingCash = "PENDING_CASH"
	PaymentPending     = "PENDING"
	PaymentApproved    = "APPROVED"
	PaymentRejected    = "REJECTED"
)

// PaymentPreference is the online payment provider's checkout handle for a
// booking. The user completes payment at CheckoutURL; the backend settles
// the booking via the provider's webhook.
type PaymentPreference struct {
	ID          string `json:"id"`
	BookingID   int64  `json:"booking_id"`
	CheckoutURL string `json:"checkout_url"`
}

// CreatePaymentPreference asks the backend for an online checkout link for
// the booking.
func (c *Client) CreatePaymentPreference(ctx context.Context, bookingID int64) (*PaymentPreference, error) {
	var pref PaymentPreference
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/bookings/%d/payment", bookingID), nil, &pref, nil)
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

// MarkCashPending records that the booking will be paid in cash at the
// venue, leaving it confirmed but unsettled.
func (c *Client) MarkCashPending(ctx context.Context, bookingID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/bookings/%d/payment/cash", bookingID), nil, nil, nil)
}
