package scheduling

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps blocks and bookings in process. Transactions are
// serialised by a mutex and work on a copy that replaces the state on success.
type MemoryStore struct {
	mu       sync.Mutex
	blocks   []Block
	bookings []Booking
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) WithinTx(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{
		blocks:   slices.Clone(s.blocks),
		bookings: slices.Clone(s.bookings),
	}
	if err := fn(tx); err != nil {
		return err
	}
	s.blocks, s.bookings = tx.blocks, tx.bookings
	return nil
}

func (s *MemoryStore) WithinReadTx(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(&memTx{
		blocks:   slices.Clone(s.blocks),
		bookings: slices.Clone(s.bookings),
	})
}

type memTx struct {
	blocks   []Block
	bookings []Booking
}

func (tx *memTx) Blocks(context.Context) ([]Block, error) {
	return slices.Clone(tx.blocks), nil
}

func (tx *memTx) Bookings(context.Context) ([]Booking, error) {
	return slices.Clone(tx.bookings), nil
}

func (tx *memTx) BlockByID(_ context.Context, id string) (Block, error) {
	i := tx.blockIndex(id)
	if i < 0 {
		return Block{}, ErrBlockNotFound
	}
	return tx.blocks[i], nil
}

func (tx *memTx) BookingByID(_ context.Context, id string) (Booking, error) {
	i := tx.bookingIndex(id)
	if i < 0 {
		return Booking{}, ErrBookingNotFound
	}
	return tx.bookings[i], nil
}

func (tx *memTx) BookingsForBlock(_ context.Context, blockID string) ([]Booking, error) {
	var out []Booking
	for _, b := range tx.bookings {
		if b.BlockID == blockID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (tx *memTx) InsertBlock(_ context.Context, b Block) error {
	tx.blocks = append([]Block{b}, tx.blocks...)
	return nil
}

func (tx *memTx) InsertBooking(_ context.Context, b Booking) error {
	tx.bookings = append([]Booking{b}, tx.bookings...)
	return nil
}

func (tx *memTx) SetBlockStatus(_ context.Context, id string, status BlockStatus) error {
	i := tx.blockIndex(id)
	if i < 0 {
		return ErrBlockNotFound
	}
	tx.blocks[i].Status = status
	return nil
}

func (tx *memTx) SetBookingStatus(_ context.Context, id string, status BookingStatus) error {
	i := tx.bookingIndex(id)
	if i < 0 {
		return ErrBookingNotFound
	}
	tx.bookings[i].Status = status
	return nil
}

func (tx *memTx) BlockIDTaken(_ context.Context, id string) (bool, error) {
	return tx.blockIndex(id) >= 0, nil
}

func (tx *memTx) BookingIDTaken(_ context.Context, id string) (bool, error) {
	return tx.bookingIndex(id) >= 0, nil
}

func (tx *memTx) blockIndex(id string) int {
	return slices.IndexFunc(tx.blocks, func(b Block) bool { return b.ID == id })
}

func (tx *memTx) bookingIndex(id string) int {
	return slices.IndexFunc(tx.bookings, func(b Booking) bool { return b.ID == id })
}
