// Package view holds the JSON shapes served by the HTTP API and read back by the client.
package view

import (
	"time"

	"shiftblocks/internal/display"
	"shiftblocks/internal/scheduling"
)

type Booking struct {
	ID              string `json:"id"`
	BlockID         string `json:"blockId"`
	EmployeeName    string `json:"employeeName"`
	EmployeeEmail   string `json:"employeeEmail"`
	Status          string `json:"status"`
	StatusLabel     string `json:"statusLabel"`
	BookedAt        string `json:"bookedAt"`
	BookedAtDisplay string `json:"bookedAtDisplay"`
}

type Block struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	StartsAt    string `json:"startsAt"`
	EndsAt      string `json:"endsAt"`
	Range       string `json:"range"`
	Capacity    int    `json:"capacity"`
	Status      string `json:"status"`
	StatusLabel string `json:"statusLabel"`
	Notes       string `json:"notes,omitempty"`

	Approved  int    `json:"approved"`
	Pending   int    `json:"pending"`
	Full      bool   `json:"full"`
	Occupancy string `json:"occupancy"`
	// Utilization is the approved share in percent, e.g. "33.3".
	Utilization string `json:"utilization"`

	Bookings []Booking `json:"bookings,omitempty"`
}

type Renderer struct {
	Fmt display.Formatter
}

func (r Renderer) Booking(b scheduling.Booking) Booking {
	return Booking{
		ID:              b.ID,
		BlockID:         b.BlockID,
		EmployeeName:    b.EmployeeName,
		EmployeeEmail:   b.EmployeeEmail,
		Status:          string(b.Status),
		StatusLabel:     display.BookingStatusLabel(b.Status),
		BookedAt:        b.BookedAt.UTC().Format(time.RFC3339),
		BookedAtDisplay: r.Fmt.DateTime(b.BookedAt),
	}
}

func (r Renderer) Bookings(in []scheduling.Booking) []Booking {
	out := make([]Booking, 0, len(in))
	for _, b := range in {
		out = append(out, r.Booking(b))
	}
	return out
}

// Block renders a summary. Bookings are attached only when withBookings is set.
func (r Renderer) Block(s scheduling.BlockSummary, withBookings bool) Block {
	b := s.Block
	v := Block{
		ID:          b.ID,
		Title:       b.Title,
		Location:    b.Location,
		StartsAt:    r.Fmt.Input(b.StartsAt),
		EndsAt:      r.Fmt.Input(b.EndsAt),
		Range:       r.Fmt.Range(b.StartsAt, b.EndsAt),
		Capacity:    b.Capacity,
		Status:      string(b.Status),
		StatusLabel: display.BlockStatusLabel(b.Status),
		Notes:       b.Notes,
		Approved:    s.Approved,
		Pending:     s.Pending,
		Full:        s.Full,
		Occupancy:   display.Occupancy(s),
		Utilization: s.Occupancy.String(),
	}
	if withBookings {
		v.Bookings = r.Bookings(s.Bookings)
	}
	return v
}

func (r Renderer) Blocks(in []scheduling.BlockSummary, withBookings bool) []Block {
	out := make([]Block, 0, len(in))
	for _, s := range in {
		out = append(out, r.Block(s, withBookings))
	}
	return out
}

// List is the envelope for collection responses.
type List[T any] struct {
	Items []T `json:"items"`
}
