package scheduling

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

type BlockSummary struct {
	Block     Block
	Bookings  []Booking
	Approved  int
	Pending   int
	Cancelled int
	Full      bool
	// Occupancy is approved/capacity in percent, one decimal place.
	Occupancy decimal.Decimal
}

// Bookable mirrors what the staff surface offers: open and not yet full.
func (s BlockSummary) Bookable() bool {
	return s.Block.Status == BlockOpen && !s.Full
}

func Summarize(block Block, bookings []Booking) BlockSummary {
	s := BlockSummary{Block: block, Bookings: bookings, Occupancy: decimal.Zero}
	for _, b := range bookings {
		switch b.Status {
		case BookingApproved:
			s.Approved++
		case BookingPending:
			s.Pending++
		case BookingCancelled:
			s.Cancelled++
		}
	}
	s.Full = s.Approved >= block.Capacity
	if block.Capacity > 0 {
		s.Occupancy = decimal.NewFromInt(int64(s.Approved)).
			Mul(hundred).
			DivRound(decimal.NewFromInt(int64(block.Capacity)), 1)
	}
	return s
}
