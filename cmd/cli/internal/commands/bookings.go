package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/canchaclub/cancha/internal/api"
)

type BookingsCmd struct {
	List   ListBookingsCmd  `cmd:"" help:"List your bookings"`
	Create CreateBookingCmd `cmd:"" help:"Book a court"`
	Cancel CancelBookingCmd `cmd:"" help:"Cancel a booking"`
	Pay    PayBookingCmd    `cmd:"" help:"Pay for a booking"`
}

type ListBookingsCmd struct {
	ServerFlags `embed:""`
}

func (l *ListBookingsCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := setup(ctx, globals, l.ServerFlags)
	if err != nil {
		return err
	}
	if err := a.require("bookings list"); err != nil {
		return err
	}

	bookings, err := a.client.ListMyBookings(ctx)
	if err != nil {
		return fmt.Errorf("failed to list bookings: %w", err)
	}

	if len(bookings) == 0 {
		fmt.Println("No bookings.")
		return nil
	}

	for _, b := range bookings {
		fmt.Printf("%-6d court %-4d %s  %s-%s  %-10s %s\n",
			b.ID,
			b.CourtID,
			b.Start.Local().Format("2006-01-02"),
			b.Start.Local().Format("15:04"),
			b.End.Local().Format("15:04"),
			b.Status,
			b.PaymentStatus)
	}
	return nil
}

type CreateBookingCmd struct {
	ServerFlags `embed:""`

	Court    int64         `arg:"" help:"Court ID"`
	Start    string        `help:"Start time (RFC 3339 or \"2006-01-02 15:04\")" required:""`
	Duration time.Duration `help:"Booking length" default:"1h"`
}

func (c *CreateBookingCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := setup(ctx, globals, c.ServerFlags)
	if err != nil {
		return err
	}
	if err := a.require("bookings create"); err != nil {
		return err
	}

	start, err := parseWhen(c.Start)
	if err != nil {
		return err
	}

	booking, err := a.client.CreateBooking(ctx, api.BookingRequest{
		CourtID: c.Court,
		Start:   start,
		End:     start.Add(c.Duration),
	})
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	fmt.Printf("Booked court %d on %s for $%.2f (booking %d, %s)\n",
		booking.CourtID,
		booking.Start.Local().Format("2006-01-02 15:04"),
		booking.Price,
		booking.ID,
		booking.Status)
	fmt.Println("Run `cancha bookings pay` to complete the reservation.")
	return nil
}

type CancelBookingCmd struct {
	ServerFlags `embed:""`

	ID int64 `arg:"" help:"Booking ID"`
}

func (c *CancelBookingCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := setup(ctx, globals, c.ServerFlags)
	if err != nil {
		return err
	}
	if err := a.require("bookings cancel"); err != nil {
		return err
	}

	if err := a.client.CancelBooking(ctx, c.ID); err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("booking %d not found", c.ID)
		}
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	fmt.Println("Booking cancelled.")
	return nil
}

type PayBookingCmd struct {
	ServerFlags `embed:""`

	ID   int64 `arg:"" help:"Booking ID"`
	Cash bool  `help:"Pay in cash at the venue instead of online"`
}

func (p *PayBookingCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := setup(ctx, globals, p.ServerFlags)
	if err != nil {
		return err
	}
	if err := a.require("bookings pay"); err != nil {
		return err
	}

	if p.Cash {
		if err := a.client.MarkCashPending(ctx, p.ID); err != nil {
			return fmt.Errorf("failed to register cash payment: %w", err)
		}
		fmt.Println("Booking confirmed. Pay in cash at the venue.")
		return nil
	}

	pref, err := a.client.CreatePaymentPreference(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("failed to start online payment: %w", err)
	}

	fmt.Printf("Complete your payment here:\n\n  %s\n", pref.CheckoutURL)
	return nil
}
