package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftblocks/internal/display"
	"shiftblocks/internal/httpapi"
	"shiftblocks/internal/scheduling"
	"shiftblocks/pkg/config"
)

func newServer(t *testing.T) Client {
	t.Helper()
	ctrl := scheduling.NewController(scheduling.NewMemoryStore(), scheduling.Options{})
	srv := httptest.NewServer(httpapi.NewRouter(httpapi.Dependencies{
		Cfg:        config.Config{},
		Controller: ctrl,
		Fmt:        display.NewFormatter(nil),
	}))
	t.Cleanup(srv.Close)
	return Client{BaseURL: srv.URL + "/", HTTPClient: srv.Client()}
}

func TestClient_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newServer(t)

	b, err := c.CreateBlock(ctx, CreateBlockRequest{
		Title:    "Früh – Objekt A",
		StartsAt: "2025-03-14T07:15",
		EndsAt:   "2025-03-14T11:15",
		Capacity: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "open", b.Status)

	bk, err := c.RequestBooking(ctx, b.ID, "Anna", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "pending", bk.Status)

	approved, err := c.ApproveBooking(ctx, bk.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)

	mine, err := c.MyBookings(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, mine, 1)

	closed, err := c.CloseBlock(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "closed", closed.Status)

	open, err := c.ListOpenBlocks(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)

	all, err := c.ListBlocks(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Len(t, all[0].Bookings, 1)
}

func TestClient_ErrorEnvelope(t *testing.T) {
	ctx := context.Background()
	c := newServer(t)

	_, err := c.ApproveBooking(ctx, "bkmissing")
	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.Equal(t, "NOT_FOUND", Code(err))
	assert.Equal(t, "Buchung nicht gefunden.", apiErr.Reason)
}

func TestClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := Client{BaseURL: srv.URL}.ListBlocks(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "bad gateway", apiErr.Message)
	assert.Equal(t, "", Code(err))
}
