package scheduling

import "fmt"

type BlockStatus string

const (
	BlockOpen      BlockStatus = "open"
	BlockClosed    BlockStatus = "closed"
	BlockCancelled BlockStatus = "cancelled"
)

func ParseBlockStatus(s string) (BlockStatus, error) {
	switch BlockStatus(s) {
	case BlockOpen, BlockClosed, BlockCancelled:
		return BlockStatus(s), nil
	default:
		return "", fmt.Errorf("unknown block status: %s", s)
	}
}

// Self transitions are listed so that repeated close/reopen calls stay no-ops.
var blockTransitions = map[BlockStatus]map[BlockStatus]bool{
	BlockOpen:      {BlockOpen: true, BlockClosed: true, BlockCancelled: true},
	BlockClosed:    {BlockClosed: true, BlockOpen: true, BlockCancelled: true},
	BlockCancelled: {BlockCancelled: true}, // terminal
}

func CanTransitionBlock(from, to BlockStatus) bool {
	m, ok := blockTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingCancelled BookingStatus = "cancelled"
)

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingPending, BookingApproved, BookingCancelled:
		return BookingStatus(s), nil
	default:
		return "", fmt.Errorf("unknown booking status: %s", s)
	}
}

var bookingTransitions = map[BookingStatus]map[BookingStatus]bool{
	BookingPending:   {BookingApproved: true, BookingCancelled: true},
	BookingApproved:  {BookingCancelled: true}, // revocation
	BookingCancelled: {},
}

func CanTransitionBooking(from, to BookingStatus) bool {
	m, ok := bookingTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}

// Active reports whether the booking still holds (or asks for) a seat.
func (s BookingStatus) Active() bool {
	return s == BookingPending || s == BookingApproved
}
