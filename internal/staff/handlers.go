package staff

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"shiftblocks/internal/api"
	"shiftblocks/internal/display"
	"shiftblocks/internal/scheduling"
	"shiftblocks/internal/view"
)

type Scheduler interface {
	RequestBooking(ctx context.Context, req scheduling.BookingRequest) (scheduling.Booking, error)
	Snapshot(ctx context.Context) (scheduling.Snapshot, error)
}

type Handlers struct {
	Scheduler Scheduler
	Fmt       display.Formatter
}

// ListOpenBlocks returns open blocks only, with counts and the full flag.
func (h Handlers) ListOpenBlocks(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Scheduler.Snapshot(r.Context())
	if err != nil {
		api.WriteDomainError(w, r, err)
		return
	}
	rv := view.Renderer{Fmt: h.Fmt}
	api.WriteJSON(w, http.StatusOK, view.List[view.Block]{Items: rv.Blocks(snap.OpenSummaries(), false)})
}

type BookingRequest struct {
	EmployeeName  string `json:"employeeName"`
	EmployeeEmail string `json:"employeeEmail"`
}

// RequestBooking offers a booking only where the panel would show an enabled
// button: the block must be open and not full. Employees who already hold an
// active booking on the block skip that gate so the controller reports the
// duplicate. The controller then applies its own admission rules.
func (h Handlers) RequestBooking(w http.ResponseWriter, r *http.Request) {
	blockID := chi.URLParam(r, "id")
	if blockID == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	var req BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}

	snap, err := h.Scheduler.Snapshot(r.Context())
	if err != nil {
		api.WriteDomainError(w, r, err)
		return
	}
	sum, ok := snap.Summary(blockID)
	if !ok {
		api.WriteDomainError(w, r, scheduling.ErrBlockNotFound)
		return
	}
	// An employee already holding a seat hears about the duplicate, not the full block.
	if _, held := scheduling.ActiveBookingFor(sum.Bookings, req.EmployeeEmail); held {
		h.request(w, r, blockID, req)
		return
	}
	switch {
	case sum.Block.Status != scheduling.BlockOpen:
		api.WriteDomainError(w, r, fmt.Errorf("%w: block %s is %s", scheduling.ErrBlockNotOpen, blockID, sum.Block.Status))
		return
	case sum.Full:
		api.WriteDomainError(w, r, fmt.Errorf("%w: block %s", scheduling.ErrBlockFull, blockID))
		return
	}

	h.request(w, r, blockID, req)
}

func (h Handlers) request(w http.ResponseWriter, r *http.Request, blockID string, req BookingRequest) {
	bk, err := h.Scheduler.RequestBooking(r.Context(), scheduling.BookingRequest{
		BlockID:       blockID,
		EmployeeName:  req.EmployeeName,
		EmployeeEmail: req.EmployeeEmail,
	})
	if err != nil {
		api.WriteDomainError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, view.Renderer{Fmt: h.Fmt}.Booking(bk))
}

// MyBookings lists the bookings held under one email, newest first.
func (h Handlers) MyBookings(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing email")
		return
	}

	snap, err := h.Scheduler.Snapshot(r.Context())
	if err != nil {
		api.WriteDomainError(w, r, err)
		return
	}
	rv := view.Renderer{Fmt: h.Fmt}
	api.WriteJSON(w, http.StatusOK, view.List[view.Booking]{Items: rv.Bookings(snap.BookingsFor(email))})
}
