// Package pgstore keeps blocks and bookings in PostgreSQL.
package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"shiftblocks/internal/scheduling"
	"shiftblocks/pkg/db"
)

const activeBookingIndex = "bookings_active_employee_uniq"

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx scheduling.Tx) error) error {
	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(&pgTx{tx: tx})
	})
}

func (s *Store) WithinReadTx(ctx context.Context, fn func(tx scheduling.Tx) error) error {
	return db.WithReadTx(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(&pgTx{tx: tx})
	})
}

type pgTx struct {
	tx pgx.Tx
}

const blockColumns = `id, title, location, starts_at, ends_at, capacity, status, COALESCE(notes,''), created_at`

const bookingColumns = `id, block_id, employee_name, employee_email, status, booked_at`

func (t *pgTx) Blocks(ctx context.Context) ([]scheduling.Block, error) {
	rows, err := t.tx.Query(ctx, `SELECT `+blockColumns+` FROM blocks ORDER BY seq DESC`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanBlock)
}

func (t *pgTx) Bookings(ctx context.Context) ([]scheduling.Booking, error) {
	rows, err := t.tx.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY seq DESC`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanBooking)
}

// BlockByID takes a row lock that every writer of the block or its bookings queues on.
func (t *pgTx) BlockByID(ctx context.Context, id string) (scheduling.Block, error) {
	const q = `SELECT ` + blockColumns + `
FROM blocks
WHERE id = $1
FOR UPDATE
`
	rows, err := t.tx.Query(ctx, q, id)
	if err != nil {
		return scheduling.Block{}, err
	}
	b, err := pgx.CollectExactlyOneRow(rows, scanBlock)
	if errors.Is(err, pgx.ErrNoRows) {
		return scheduling.Block{}, scheduling.ErrBlockNotFound
	}
	return b, err
}

func (t *pgTx) BookingByID(ctx context.Context, id string) (scheduling.Booking, error) {
	rows, err := t.tx.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	if err != nil {
		return scheduling.Booking{}, err
	}
	b, err := pgx.CollectExactlyOneRow(rows, scanBooking)
	if errors.Is(err, pgx.ErrNoRows) {
		return scheduling.Booking{}, scheduling.ErrBookingNotFound
	}
	return b, err
}

func (t *pgTx) BookingsForBlock(ctx context.Context, blockID string) ([]scheduling.Booking, error) {
	const q = `SELECT ` + bookingColumns + `
FROM bookings
WHERE block_id = $1
ORDER BY seq DESC
`
	rows, err := t.tx.Query(ctx, q, blockID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanBooking)
}

func (t *pgTx) InsertBlock(ctx context.Context, b scheduling.Block) error {
	const q = `
INSERT INTO blocks (id, title, location, starts_at, ends_at, capacity, status, notes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9)
`
	_, err := t.tx.Exec(ctx, q,
		b.ID, b.Title, b.Location, b.StartsAt, b.EndsAt, b.Capacity, string(b.Status), b.Notes, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert block: %w", err)
	}
	return nil
}

func (t *pgTx) InsertBooking(ctx context.Context, b scheduling.Booking) error {
	const q = `
INSERT INTO bookings (id, block_id, employee_name, employee_email, status, booked_at)
VALUES ($1, $2, $3, $4, $5, $6)
`
	_, err := t.tx.Exec(ctx, q,
		b.ID, b.BlockID, b.EmployeeName, b.EmployeeEmail, string(b.Status), b.BookedAt,
	)
	if isUniqueViolation(err, activeBookingIndex) {
		return fmt.Errorf("%w: %s", scheduling.ErrDuplicateBooking, b.EmployeeEmail)
	}
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (t *pgTx) SetBlockStatus(ctx context.Context, id string, status scheduling.BlockStatus) error {
	tag, err := t.tx.Exec(ctx, `UPDATE blocks SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return scheduling.ErrBlockNotFound
	}
	return nil
}

func (t *pgTx) SetBookingStatus(ctx context.Context, id string, status scheduling.BookingStatus) error {
	tag, err := t.tx.Exec(ctx, `UPDATE bookings SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return scheduling.ErrBookingNotFound
	}
	return nil
}

func (t *pgTx) BlockIDTaken(ctx context.Context, id string) (bool, error) {
	return t.exists(ctx, `SELECT EXISTS (SELECT 1 FROM blocks WHERE id = $1)`, id)
}

func (t *pgTx) BookingIDTaken(ctx context.Context, id string) (bool, error) {
	return t.exists(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, id)
}

func (t *pgTx) exists(ctx context.Context, q, id string) (bool, error) {
	var ok bool
	if err := t.tx.QueryRow(ctx, q, id).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func scanBlock(row pgx.CollectableRow) (scheduling.Block, error) {
	var (
		b      scheduling.Block
		status string
	)
	if err := row.Scan(
		&b.ID, &b.Title, &b.Location, &b.StartsAt, &b.EndsAt, &b.Capacity, &status, &b.Notes, &b.CreatedAt,
	); err != nil {
		return scheduling.Block{}, err
	}
	st, err := scheduling.ParseBlockStatus(status)
	if err != nil {
		return scheduling.Block{}, err
	}
	b.Status = st
	return b, nil
}

func scanBooking(row pgx.CollectableRow) (scheduling.Booking, error) {
	var (
		b      scheduling.Booking
		status string
	)
	if err := row.Scan(
		&b.ID, &b.BlockID, &b.EmployeeName, &b.EmployeeEmail, &status, &b.BookedAt,
	); err != nil {
		return scheduling.Booking{}, err
	}
	st, err := scheduling.ParseBookingStatus(status)
	if err != nil {
		return scheduling.Booking{}, err
	}
	b.Status = st
	return b, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && (constraint == "" || pgErr.ConstraintName == constraint)
	}
	return false
}
