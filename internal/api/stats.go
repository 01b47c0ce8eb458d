package api

import (
	"context"
	"fmt"
	"net/url"
)

// PlatformStats is the admin dashboard summary.
type PlatformStats struct {
	TotalUsers    int64      `json:"total_users"`
	TotalVenues   int64      `json:"total_venues"`
	TotalBookings int64      `json:"total_bookings"`
	Revenue       float64    `json:"revenue"`
	BookingsByDay []DayCount `json:"bookings_by_day"`
}

// VenueStats is the owner dashboard summary for one venue.
type VenueStats struct {
	VenueID       int64      `json:"venue_id"`
	TotalBookings int64      `json:"total_bookings"`
	Occupancy     float64    `json:"occupancy"`
	Revenue       float64    `json:"revenue"`
	BookingsByDay []DayCount `json:"bookings_by_day"`
}

// DayCount is a per-day bucket in a stats series.
type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// GetPlatformStats returns the platform-wide summary. Admin only.
// from/to use the backend's YYYY-MM-DD convention; empty means the
// backend's default window.
func (c *Client) GetPlatformStats(ctx context.Context, from, to string) (*PlatformStats, error) {
	var stats PlatformStats
	if err := c.get(ctx, "/stats", dateRange(from, to), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetVenueStats returns one venue's summary. Owner or admin only.
func (c *Client) GetVenueStats(ctx context.Context, venueID int64, from, to string) (*VenueStats, error) {
	var stats VenueStats
	if err := c.get(ctx, fmt.Sprintf("/venues/%d/stats", venueID), dateRange(from, to), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func dateRange(from, to string) url.Values {
	query := url.Values{}
	if from != "" {
		query.Set("from", from)
	}
	if to != "" {
		query.Set("to", to)
	}
	if len(query) == 0 {
		return nil
	}
	return query
}
