package pgstore

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftblocks/internal/scheduling"
	"shiftblocks/pkg/db"
)

// Runs against a disposable database: TEST_DATABASE_URL=postgres://... go test ./internal/pgstore
func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	require.NoError(t, db.MigrateDSN("file://../../migrations", dsn))

	ctx := context.Background()
	pool, err := db.OpenDSN(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE bookings, blocks`)
	require.NoError(t, err)
	return New(pool)
}

func newController(store scheduling.Store, policy scheduling.CapacityPolicy) *scheduling.Controller {
	return scheduling.NewController(store, scheduling.Options{Policy: policy})
}

func createBlock(t *testing.T, c *scheduling.Controller, capacity int) scheduling.Block {
	t.Helper()
	start := time.Date(2025, 3, 14, 7, 15, 0, 0, time.UTC)
	b, err := c.CreateBlock(context.Background(), scheduling.CreateBlockInput{
		Title:    "Früh – Objekt A",
		StartsAt: start,
		EndsAt:   start.Add(4 * time.Hour),
		Capacity: capacity,
		Notes:    "Eingang & Flur",
	})
	require.NoError(t, err)
	return b
}

func TestStore_Scenario(t *testing.T) {
	ctx := context.Background()
	c := newController(newTestStore(t), scheduling.CapacityLax)
	b := createBlock(t, c, 1)

	bk1, err := c.RequestBooking(ctx, scheduling.BookingRequest{BlockID: b.ID, EmployeeName: "A", EmployeeEmail: "a@x.com"})
	require.NoError(t, err)
	_, err = c.ApproveBooking(ctx, bk1.ID)
	require.NoError(t, err)

	_, err = c.RequestBooking(ctx, scheduling.BookingRequest{BlockID: b.ID, EmployeeName: "A", EmployeeEmail: "A@x.com"})
	require.ErrorIs(t, err, scheduling.ErrDuplicateBooking)

	bk2, err := c.RequestBooking(ctx, scheduling.BookingRequest{BlockID: b.ID, EmployeeName: "B", EmployeeEmail: "b@x.com"})
	require.NoError(t, err)
	_, err = c.CancelBooking(ctx, bk1.ID)
	require.NoError(t, err)

	snap, err := c.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Blocks, 1)
	assert.Equal(t, "Eingang & Flur", snap.Blocks[0].Notes)
	assert.True(t, snap.Blocks[0].StartsAt.Equal(b.StartsAt))

	require.Len(t, snap.Bookings, 2)
	assert.Equal(t, bk2.ID, snap.Bookings[0].ID)
	assert.Equal(t, scheduling.BookingPending, snap.Bookings[0].Status)
	assert.Equal(t, scheduling.BookingCancelled, snap.Bookings[1].Status)
}

func TestStore_NotFound(t *testing.T) {
	ctx := context.Background()
	c := newController(newTestStore(t), scheduling.CapacityLax)

	_, err := c.CloseBlock(ctx, "bmissing")
	require.ErrorIs(t, err, scheduling.ErrBlockNotFound)
	_, err = c.ApproveBooking(ctx, "bkmissing")
	require.ErrorIs(t, err, scheduling.ErrBookingNotFound)
}

func TestStore_CancelBlockCascades(t *testing.T) {
	ctx := context.Background()
	c := newController(newTestStore(t), scheduling.CapacityStrict)
	b := createBlock(t, c, 2)
	bk, err := c.RequestBooking(ctx, scheduling.BookingRequest{BlockID: b.ID, EmployeeName: "A", EmployeeEmail: "a@x.com"})
	require.NoError(t, err)

	_, err = c.CancelBlock(ctx, b.ID)
	require.NoError(t, err)

	snap, err := c.Snapshot(ctx)
	require.NoError(t, err)
	got, ok := snap.BookingByID(bk.ID)
	require.True(t, ok)
	assert.Equal(t, scheduling.BookingCancelled, got.Status)

	_, err = c.ReopenBlock(ctx, b.ID)
	require.ErrorIs(t, err, scheduling.ErrInvalidTransition)
}

func TestStore_ConcurrentDuplicateRequests(t *testing.T) {
	ctx := context.Background()
	c := newController(newTestStore(t), scheduling.CapacityLax)
	b := createBlock(t, c, 5)

	const n = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		oks  int
		dups int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.RequestBooking(ctx, scheduling.BookingRequest{BlockID: b.ID, EmployeeName: "A", EmployeeEmail: "a@x.com"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				oks++
			} else if errors.Is(err, scheduling.ErrDuplicateBooking) {
				dups++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, oks)
	assert.Equal(t, n-1, dups)
}

func TestStore_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	boom := errors.New("boom")

	err := store.WithinTx(ctx, func(tx scheduling.Tx) error {
		if err := tx.InsertBlock(ctx, scheduling.Block{
			ID: "brollbk", Title: "X", Location: "Duisburg",
			StartsAt: time.Now(), EndsAt: time.Now().Add(time.Hour),
			Capacity: 1, Status: scheduling.BlockOpen, CreatedAt: time.Now(),
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = store.WithinTx(ctx, func(tx scheduling.Tx) error {
		taken, err := tx.BlockIDTaken(ctx, "brollbk")
		require.NoError(t, err)
		assert.False(t, taken)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_ReadTxIsReadOnly(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	err := store.WithinReadTx(ctx, func(tx scheduling.Tx) error {
		return tx.InsertBlock(ctx, scheduling.Block{
			ID: "breadonly", Title: "X", Location: "Duisburg",
			StartsAt: time.Now(), EndsAt: time.Now().Add(time.Hour),
			Capacity: 1, Status: scheduling.BlockOpen, CreatedAt: time.Now(),
		})
	})
	require.Error(t, err)

	err = store.WithinReadTx(ctx, func(tx scheduling.Tx) error {
		taken, err := tx.BlockIDTaken(ctx, "breadonly")
		require.NoError(t, err)
		assert.False(t, taken)
		return nil
	})
	require.NoError(t, err)
}
