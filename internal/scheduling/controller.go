package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const DefaultLocation = "Duisburg"

type Options struct {
	Location string
	Policy   CapacityPolicy
	IDs      IDGenerator
	Now      func() time.Time
	Logger   *zap.Logger
}

// Controller is the admission controller. Every operation runs as one store transaction.
type Controller struct {
	store    Store
	location string
	policy   CapacityPolicy
	ids      IDGenerator
	now      func() time.Time
	log      *zap.Logger
}

func NewController(store Store, opts Options) *Controller {
	c := &Controller{
		store:    store,
		location: strings.TrimSpace(opts.Location),
		policy:   opts.Policy,
		ids:      opts.IDs,
		now:      opts.Now,
		log:      opts.Logger,
	}
	if c.location == "" {
		c.location = DefaultLocation
	}
	if c.policy == "" {
		c.policy = CapacityLax
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c
}

func (c *Controller) Policy() CapacityPolicy { return c.policy }
func (c *Controller) Location() string { return c.location }

func (c *Controller) CreateBlock(ctx context.Context, in CreateBlockInput) (Block, error) {
	title := strings.TrimSpace(in.Title)
	switch {
	case title == "":
		return Block{}, ValidationError{Code: "TITLE_REQUIRED", Message: "title is required"}
	case in.StartsAt.IsZero():
		return Block{}, ValidationError{Code: "STARTS_AT_REQUIRED", Message: "startsAt is required"}
	case in.EndsAt.IsZero():
		return Block{}, ValidationError{Code: "ENDS_AT_REQUIRED", Message: "endsAt is required"}
	}

	startsAt := in.StartsAt.Truncate(time.Minute)
	endsAt := in.EndsAt.Truncate(time.Minute)
	if !endsAt.After(startsAt) {
		return Block{}, ValidationError{Code: "INVALID_RANGE", Message: "endsAt must be after startsAt"}
	}

	var created Block
	err := c.store.WithinTx(ctx, func(tx Tx) error {
		id, err := c.ids.Unique(ctx, blockIDPrefix, tx.BlockIDTaken)
		if err != nil {
			return err
		}
		created = Block{
			ID:        id,
			Title:     title,
			Location:  c.location,
			StartsAt:  startsAt,
			EndsAt:    endsAt,
			Capacity:  max(in.Capacity, 1),
			Status:    BlockOpen,
			Notes:     strings.TrimSpace(in.Notes),
			CreatedAt: c.now(),
		}
		return tx.InsertBlock(ctx, created)
	})
	if err != nil {
		return Block{}, fmt.Errorf("create block: %w", err)
	}

	c.log.Info("block created",
		zap.String("block_id", created.ID),
		zap.String("title", created.Title),
		zap.Int("capacity", created.Capacity),
	)
	return created, nil
}

func (c *Controller) CloseBlock(ctx context.Context, id string) (Block, error) {
	return c.transitionBlock(ctx, id, BlockClosed)
}

func (c *Controller) ReopenBlock(ctx context.Context, id string) (Block, error) {
	return c.transitionBlock(ctx, id, BlockOpen)
}

// CancelBlock retires the block for good and cancels its pending and approved bookings.
func (c *Controller) CancelBlock(ctx context.Context, id string) (Block, error) {
	return c.transitionBlock(ctx, id, BlockCancelled)
}

func (c *Controller) transitionBlock(ctx context.Context, id string, to BlockStatus) (Block, error) {
	var (
		out      Block
		changed  bool
		cascaded int
	)
	err := c.store.WithinTx(ctx, func(tx Tx) error {
		b, err := tx.BlockByID(ctx, id)
		if err != nil {
			return err
		}
		if b.Status == to {
			out = b
			return nil
		}
		if !CanTransitionBlock(b.Status, to) {
			return fmt.Errorf("%w: block %s is %s", ErrInvalidTransition, b.ID, b.Status)
		}
		if err := tx.SetBlockStatus(ctx, b.ID, to); err != nil {
			return err
		}

		if to == BlockCancelled {
			bookings, err := tx.BookingsForBlock(ctx, b.ID)
			if err != nil {
				return err
			}
			for _, bk := range bookings {
				if bk.Status == BookingCancelled {
					continue
				}
				if err := tx.SetBookingStatus(ctx, bk.ID, BookingCancelled); err != nil {
					return err
				}
				cascaded++
			}
		}

		b.Status = to
		out = b
		changed = true
		return nil
	})
	if err != nil {
		c.log.Warn("block transition rejected",
			zap.String("block_id", id),
			zap.String("to", string(to)),
			zap.Error(err),
		)
		return Block{}, fmt.Errorf("%s block: %w", verbFor(to), err)
	}

	if changed {
		c.log.Info("block status changed",
			zap.String("block_id", out.ID),
			zap.String("status", string(out.Status)),
			zap.Int("bookings_cancelled", cascaded),
		)
	}
	return out, nil
}

func verbFor(s BlockStatus) string {
	switch s {
	case BlockOpen:
		return "reopen"
	case BlockClosed:
		return "close"
	default:
		return "cancel"
	}
}

// RequestBooking admits a new pending booking. A second non-cancelled booking
// for the same email on the same block is refused with ErrDuplicateBooking.
func (c *Controller) RequestBooking(ctx context.Context, req BookingRequest) (Booking, error) {
	name := strings.TrimSpace(req.EmployeeName)
	email := strings.TrimSpace(req.EmployeeEmail)
	switch {
	case strings.TrimSpace(req.BlockID) == "":
		return Booking{}, ValidationError{Code: "BLOCK_ID_REQUIRED", Message: "blockId is required"}
	case name == "":
		return Booking{}, ValidationError{Code: "NAME_REQUIRED", Message: "employeeName is required"}
	case email == "":
		return Booking{}, ValidationError{Code: "EMAIL_REQUIRED", Message: "employeeEmail is required"}
	}

	var created Booking
	err := c.store.WithinTx(ctx, func(tx Tx) error {
		block, err := tx.BlockByID(ctx, req.BlockID)
		if err != nil {
			return err
		}
		if block.Status == BlockCancelled {
			return fmt.Errorf("%w: block %s is cancelled", ErrBlockNotOpen, block.ID)
		}

		existing, err := tx.BookingsForBlock(ctx, block.ID)
		if err != nil {
			return err
		}
		if dup, ok := ActiveBookingFor(existing, email); ok {
			return fmt.Errorf("%w: booking %s", ErrDuplicateBooking, dup.ID)
		}

		if c.policy == CapacityStrict {
			if block.Status != BlockOpen {
				return fmt.Errorf("%w: block %s is %s", ErrBlockNotOpen, block.ID, block.Status)
			}
			if ApprovedCount(existing) >= block.Capacity {
				return fmt.Errorf("%w: block %s", ErrBlockFull, block.ID)
			}
		}

		id, err := c.ids.Unique(ctx, bookingIDPrefix, tx.BookingIDTaken)
		if err != nil {
			return err
		}
		created = Booking{
			ID:            id,
			BlockID:       block.ID,
			EmployeeName:  name,
			EmployeeEmail: email,
			Status:        BookingPending,
			BookedAt:      c.now(),
		}
		return tx.InsertBooking(ctx, created)
	})
	if err != nil {
		c.log.Warn("booking rejected",
			zap.String("block_id", req.BlockID),
			zap.String("employee_email", email),
			zap.Error(err),
		)
		return Booking{}, fmt.Errorf("request booking: %w", err)
	}

	c.log.Info("booking requested",
		zap.String("booking_id", created.ID),
		zap.String("block_id", created.BlockID),
		zap.String("employee_email", created.EmployeeEmail),
	)
	return created, nil
}

// ApproveBooking moves a pending booking to approved. Any other status is left as is.
func (c *Controller) ApproveBooking(ctx context.Context, id string) (Booking, error) {
	return c.transitionBooking(ctx, id, BookingApproved, func(tx Tx, bk Booking) error {
		if c.policy != CapacityStrict {
			return nil
		}
		block, err := tx.BlockByID(ctx, bk.BlockID)
		if err != nil {
			return err
		}
		siblings, err := tx.BookingsForBlock(ctx, block.ID)
		if err != nil {
			return err
		}
		if ApprovedCount(siblings) >= block.Capacity {
			return fmt.Errorf("%w: block %s", ErrBlockFull, block.ID)
		}
		return nil
	})
}

// CancelBooking cancels a pending or approved booking. Cancelling twice is a no-op.
func (c *Controller) CancelBooking(ctx context.Context, id string) (Booking, error) {
	return c.transitionBooking(ctx, id, BookingCancelled, nil)
}

func (c *Controller) transitionBooking(ctx context.Context, id string, to BookingStatus, check func(Tx, Booking) error) (Booking, error) {
	var (
		out     Booking
		changed bool
	)
	err := c.store.WithinTx(ctx, func(tx Tx) error {
		bk, err := tx.BookingByID(ctx, id)
		if err != nil {
			return err
		}
		// Lock the owning block first so that booking writers of one block
		// queue in the same order as block writers, then re-read.
		if _, err := tx.BlockByID(ctx, bk.BlockID); err != nil && !errors.Is(err, ErrBlockNotFound) {
			return err
		}
		if bk, err = tx.BookingByID(ctx, id); err != nil {
			return err
		}

		if !CanTransitionBooking(bk.Status, to) {
			out = bk
			return nil
		}
		if check != nil {
			if err := check(tx, bk); err != nil {
				return err
			}
		}
		if err := tx.SetBookingStatus(ctx, bk.ID, to); err != nil {
			return err
		}
		bk.Status = to
		out = bk
		changed = true
		return nil
	})
	if err != nil {
		c.log.Warn("booking transition rejected",
			zap.String("booking_id", id),
			zap.String("to", string(to)),
			zap.Error(err),
		)
		if to == BookingApproved {
			return Booking{}, fmt.Errorf("approve booking: %w", err)
		}
		return Booking{}, fmt.Errorf("cancel booking: %w", err)
	}

	if changed {
		c.log.Info("booking status changed",
			zap.String("booking_id", out.ID),
			zap.String("block_id", out.BlockID),
			zap.String("status", string(out.Status)),
		)
	}
	return out, nil
}

// Snapshot holds both collections as read by one read-only transaction.
type Snapshot struct {
	Blocks   []Block
	Bookings []Booking
	ByBlock  map[string][]Booking
}

func (c *Controller) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := c.store.WithinReadTx(ctx, func(tx Tx) error {
		var err error
		if snap.Blocks, err = tx.Blocks(ctx); err != nil {
			return err
		}
		snap.Bookings, err = tx.Bookings(ctx)
		return err
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}
	snap.ByBlock = IndexByBlock(snap.Bookings)
	return snap, nil
}

func (s Snapshot) Summaries() []BlockSummary {
	out := make([]BlockSummary, 0, len(s.Blocks))
	for _, b := range s.Blocks {
		out = append(out, Summarize(b, s.ByBlock[b.ID]))
	}
	return out
}

func (s Snapshot) OpenSummaries() []BlockSummary {
	out := make([]BlockSummary, 0, len(s.Blocks))
	for _, b := range s.Blocks {
		if b.Status == BlockOpen {
			out = append(out, Summarize(b, s.ByBlock[b.ID]))
		}
	}
	return out
}

func (s Snapshot) Summary(blockID string) (BlockSummary, bool) {
	for _, b := range s.Blocks {
		if b.ID == blockID {
			return Summarize(b, s.ByBlock[b.ID]), true
		}
	}
	return BlockSummary{}, false
}

func (s Snapshot) BookingByID(id string) (Booking, bool) {
	for _, b := range s.Bookings {
		if b.ID == id {
			return b, true
		}
	}
	return Booking{}, false
}

// BookingsFor lists an employee's bookings, newest first.
func (s Snapshot) BookingsFor(email string) []Booking {
	want := NormalizeEmail(email)
	var out []Booking
	for _, b := range s.Bookings {
		if NormalizeEmail(b.EmployeeEmail) == want {
			out = append(out, b)
		}
	}
	return out
}
