package scheduling

import "context"

// Store runs fn atomically: either every write made through tx is kept or none is.
// WithinReadTx gives fn one consistent view and keeps none of its writes.
type Store interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
	WithinReadTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the read/write surface available inside a transaction.
// Listings are newest first.
type Tx interface {
	Blocks(ctx context.Context) ([]Block, error)
	Bookings(ctx context.Context) ([]Booking, error)

	// BlockByID also serialises writers of the block and its bookings.
	BlockByID(ctx context.Context, id string) (Block, error)
	BookingByID(ctx context.Context, id string) (Booking, error)
	BookingsForBlock(ctx context.Context, blockID string) ([]Booking, error)

	InsertBlock(ctx context.Context, b Block) error
	InsertBooking(ctx context.Context, b Booking) error
	SetBlockStatus(ctx context.Context, id string, status BlockStatus) error
	SetBookingStatus(ctx context.Context, id string, status BookingStatus) error

	BlockIDTaken(ctx context.Context, id string) (bool, error)
	BookingIDTaken(ctx context.Context, id string) (bool, error)
}
