package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"shiftblocks/internal/admin"
	"shiftblocks/internal/api"
	"shiftblocks/internal/display"
	"shiftblocks/internal/scheduling"
	"shiftblocks/internal/staff"
	"shiftblocks/pkg/config"
)

type Dependencies struct {
	Cfg        config.Config
	Log        *zap.Logger
	Controller *scheduling.Controller
	Fmt        display.Formatter
}

func NewRouter(deps Dependencies) http.Handler {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(api.RequestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	adminHandlers := admin.Handlers{Scheduler: deps.Controller, Fmt: deps.Fmt}
	staffHandlers := staff.Handlers{Scheduler: deps.Controller, Fmt: deps.Fmt}

	r.Route("/v1", func(r chi.Router) {
		r.Route("/admin", func(r chi.Router) {
			r.Get("/blocks", adminHandlers.ListBlocks)
			r.Post("/blocks", adminHandlers.CreateBlock)
			r.Post("/blocks/{id}/close", adminHandlers.CloseBlock)
			r.Post("/blocks/{id}/reopen", adminHandlers.ReopenBlock)
			r.Post("/blocks/{id}/cancel", adminHandlers.CancelBlock)

			r.Post("/bookings/{id}/approve", adminHandlers.ApproveBooking)
			r.Post("/bookings/{id}/cancel", adminHandlers.CancelBooking)
		})

		// Staff panel, called from a separate frontend origin.
		r.Route("/staff", func(r chi.Router) {
			r.Use(api.CORSMiddleware(api.CORSOptions{
				AllowedOrigins: deps.Cfg.StaffAllowedOrigins,
				AllowedMethods: []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders: []string{"Content-Type"},
				MaxAgeSeconds:  600,
			}))

			r.Get("/blocks", staffHandlers.ListOpenBlocks)
			r.Post("/blocks/{id}/bookings", staffHandlers.RequestBooking)
			r.Get("/bookings", staffHandlers.MyBookings)
		})
	})

	return r
}
