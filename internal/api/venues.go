package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Venue is a sports complex with one or more bookable courts.
type Venue struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Phone       string    `json:"phone"`
	Description string    `json:"description"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Court is a bookable playing surface within a venue.
type Court struct {
	ID           int64   `json:"id"`
	VenueID      int64   `json:"venue_id"`
	Name         string  `json:"name"`
	Sport        string  `json:"sport"`
	Surface      string  `json:"surface"`
	Indoor       bool    `json:"indoor"`
	PricePerHour float64 `json:"price_per_hour"`
}

// Slot is a court's availability window for a given day.
type Slot struct {
	CourtID   int64     `json:"court_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
	Price     float64   `json:"price"`
}

// VenueRequest creates or updates a venue.
type VenueRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Phone       string `json:"phone,omitempty"`
	Description string `json:"description,omitempty"`
}

// ListVenues returns all venues, optionally filtered by city.
func (c *Client) ListVenues(ctx context.Context, city string) ([]Venue, error) {
	var query url.Values
	if city != "" {
		query = url.Values{"city": {city}}
	}

	var venues []Venue
	if err := c.get(ctx, "/venues", query, &venues); err != nil {
		return nil, err
	}
	return venues, nil
}

// GetVenue returns a single venue by ID.
func (c *Client) GetVenue(ctx context.Context, id int64) (*Venue, error) {
	var venue Venue
	if err := c.get(ctx, fmt.Sprintf("/venues/%d", id), nil, &venue); err != nil {
		return nil, err
	}
	return &venue, nil
}

// ListCourts returns the courts of a venue.
func (c *Client) ListCourts(ctx context.Context, venueID int64) ([]Court, error) {
	var courts []Court
	if err := c.get(ctx, fmt.Sprintf("/venues/%d/courts", venueID), nil, &courts); err != nil {
		return nil, err
	}
	return courts, nil
}

// Availability returns the slot grid for a venue on a given day.
// date uses the backend's YYYY-MM-DD convention.
func (c *Client) Availability(ctx context.Context, venueID int64, date string) ([]Slot, error) {
	var slots []Slot
	query := url.Values{"date": {date}}
	if err := c.get(ctx, fmt.Sprintf("/venues/%d/availability", venueID), query, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// CreateVenue registers a new venue. Owner or admin only.
func (c *Client) CreateVenue(ctx context.Context, req VenueRequest) (*Venue, error) {
	var venue Venue
	if err := c.do(ctx, http.MethodPost, "/venues", req, &venue, nil); err != nil {
		return nil, err
	}
	return &venue, nil
}

// UpdateVenue updates an existing venue. Owner or admin only.
func (c *Client) UpdateVenue(ctx context.Context, id int64, req VenueRequest) (*Venue, error) {
	var venue Venue
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/venues/%d", id), req, &venue, nil); err != nil {
		return nil, err
	}
	return &venue, nil
}

// DeleteVenue removes a venue. Admin only.
func (c *Client) DeleteVenue(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/venues/%d", id), nil, nil, nil)
}
