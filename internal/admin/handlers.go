package admin

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shiftblocks/internal/api"
	"shiftblocks/internal/display"
	"shiftblocks/internal/scheduling"
	"shiftblocks/internal/view"
)

// Scheduler is the part of the admission controller the admin panel drives.
type Scheduler interface {
	CreateBlock(ctx context.Context, in scheduling.CreateBlockInput) (scheduling.Block, error)
	CloseBlock(ctx context.Context, id string) (scheduling.Block, error)
	ReopenBlock(ctx context.Context, id string) (scheduling.Block, error)
	CancelBlock(ctx context.Context, id string) (scheduling.Block, error)
	ApproveBooking(ctx context.Context, id string) (scheduling.Booking, error)
	CancelBooking(ctx context.Context, id string) (scheduling.Booking, error)
	Snapshot(ctx context.Context) (scheduling.Snapshot, error)
}

type Handlers struct {
	Scheduler Scheduler
	Fmt       display.Formatter
}

func (h Handlers) render() view.Renderer {
	return view.Renderer{Fmt: h.Fmt}
}

// ListBlocks returns every block newest first, each with its bookings and counts.
func (h Handlers) ListBlocks(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Scheduler.Snapshot(r.Context())
	if err != nil {
		api.WriteDomainError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, view.List[view.Block]{
		Items: h.render().Blocks(snap.Summaries(), true),
	})
}

type CreateBlockRequest struct {
	Title    string `json:"title"`
	StartsAt string `json:"startsAt"`
	EndsAt   string `json:"endsAt"`
	Capacity int    `json:"capacity"`
	Notes    string `json:"notes"`
}

func (h Handlers) CreateBlock(w http.ResponseWriter, r *http.Request) {
	var req CreateBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}

	startsAt, err := h.Fmt.ParseLocal(req.StartsAt)
	if err != nil {
		api.WriteDomainError(w, r, scheduling.ValidationError{Code: "INVALID_STARTS_AT", Message: err.Error()})
		return
	}
	endsAt, err := h.Fmt.ParseLocal(req.EndsAt)
	if err != nil {
		api.WriteDomainError(w, r, scheduling.ValidationError{Code: "INVALID_ENDS_AT", Message: err.Error()})
		return
	}

	b, err := h.Scheduler.CreateBlock(r.Context(), scheduling.CreateBlockInput{
		Title:    req.Title,
		StartsAt: startsAt,
		EndsAt:   endsAt,
		Capacity: req.Capacity,
		Notes:    req.Notes,
	})
	if err != nil {
		api.WriteDomainError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, h.render().Block(scheduling.Summarize(b, nil), false))
}

func (h Handlers) CloseBlock(w http.ResponseWriter, r *http.Request) {
	h.blockAction(w, r, h.Scheduler.CloseBlock)
}

func (h Handlers) ReopenBlock(w http.ResponseWriter, r *http.Request) {
	h.blockAction(w, r, h.Scheduler.ReopenBlock)
}

func (h Handlers) CancelBlock(w http.ResponseWriter, r *http.Request) {
	h.blockAction(w, r, h.Scheduler.CancelBlock)
}

func (h Handlers) blockAction(w http.ResponseWriter, r *http.Request, action func(context.Context, string) (scheduling.Block, error)) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}
	if _, err := action(r.Context(), id); err != nil {
		api.WriteDomainError(w, r, err)
		return
	}

	// Re-read so the counts reflect cascaded booking changes.
	snap, err := h.Scheduler.Snapshot(r.Context())
	if err != nil {
		api.WriteDomainError(w, r, err)
		return
	}
	sum, ok := snap.Summary(id)
	if !ok {
		api.WriteDomainError(w, r, scheduling.ErrBlockNotFound)
		return
	}
	api.WriteJSON(w, http.StatusOK, h.render().Block(sum, true))
}

func (h Handlers) ApproveBooking(w http.ResponseWriter, r *http.Request) {
	h.bookingAction(w, r, h.Scheduler.ApproveBooking)
}

func (h Handlers) CancelBooking(w http.ResponseWriter, r *http.Request) {
	h.bookingAction(w, r, h.Scheduler.CancelBooking)
}

func (h Handlers) bookingAction(w http.ResponseWriter, r *http.Request, action func(context.Context, string) (scheduling.Booking, error)) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}
	bk, err := action(r.Context(), id)
	if err != nil {
		api.WriteDomainError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, h.render().Booking(bk))
}
