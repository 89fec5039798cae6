package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/AdamBeresnev/brisa-tee-times/internal/export"
	"github.com/AdamBeresnev/brisa-tee-times/internal/golfer"
	"github.com/AdamBeresnev/brisa-tee-times/internal/httputil"
	"github.com/AdamBeresnev/brisa-tee-times/internal/middleware"
	"github.com/AdamBeresnev/brisa-tee-times/internal/service"
	"github.com/AdamBeresnev/brisa-tee-times/internal/teetime"
	"github.com/AdamBeresnev/brisa-tee-times/internal/utils"
	"github.com/AdamBeresnev/brisa-tee-times/views"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type routerOptions struct {
	// Debug echoes internal errors to clients.
	Debug bool
	// Metrics is served on /metrics when set.
	Metrics prometheus.Gatherer
}

func newRouter(reservations *service.ReservationService, sessionManager *scs.SessionManager, opts routerOptions) http.Handler {
	r := chi.NewRouter()
	errs := errorWriter{debug: opts.Debug}

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if opts.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Metrics, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(sessionManager.LoadAndSave)
		r.Use(middleware.LoadGolfer(sessionManager))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			if err := views.Render(w, r, views.Index(reservations.Tournaments())); err != nil {
				errs.internal(w, "Failed to render home page", err)
			}
		})

		r.Get("/board", func(w http.ResponseWriter, r *http.Request) {
			tournament := strings.TrimSpace(r.URL.Query().Get("tournament"))
			day := strings.TrimSpace(r.URL.Query().Get("day"))
			if day == "" {
				httputil.BadRequest(w, "day is required", nil)
				return
			}

			slots, err := reservations.DayBoard(r.Context(), tournament, day)
			if err != nil {
				errs.handle(w, err, "Failed to load tee sheet")
				return
			}
			if tournament != "" {
				tournament = slots[0].Tournament
			}
			if err := views.Render(w, r, views.Board(views.PrepareBoardData(tournament, day, slots))); err != nil {
				errs.internal(w, "Failed to render tee sheet", err)
			}
		})

		r.Route("/api", func(r chi.Router) {
			r.Get("/tournaments", func(w http.ResponseWriter, r *http.Request) {
				httputil.WriteJSON(w, http.StatusOK, map[string]any{
					"tournaments": reservations.Tournaments(),
				})
			})

			r.Get("/reservations", func(w http.ResponseWriter, r *http.Request) {
				q := queryFromRequest(r)
				if q.Day == "" {
					httputil.BadRequest(w, "day is required", nil)
					return
				}

				rs, err := reservations.Reservations(r.Context(), q)
				if err != nil {
					errs.handle(w, err, "Failed to load reservations")
					return
				}
				if rs == nil {
					rs = []teetime.Reservation{}
				}
				httputil.WriteJSON(w, http.StatusOK, map[string]any{
					"status":       "ok",
					"reservations": rs,
				})
			})

			r.Post("/reservations", func(w http.ResponseWriter, r *http.Request) {
				p, err := decodeReservation(w, r)
				if err != nil {
					errs.handle(w, err, "Invalid reservation")
					return
				}

				res, err := reservations.Book(r.Context(), p.booking())
				if err != nil {
					errs.handle(w, err, "Failed to reserve tee time")
					return
				}

				middleware.RememberGolfer(r.Context(), sessionManager, golfer.Golfer{
					FirstName: res.FirstName,
					LastName:  res.LastName,
					Country:   res.Country,
					Email:     res.Email,
					Phone:     res.Phone,
					SMSOptIn:  res.SMSOptIn,
				})
				httputil.WriteJSON(w, http.StatusCreated, map[string]any{
					"status":      "ok",
					"reservation": res,
				})
			})

			cancel := func(w http.ResponseWriter, r *http.Request) {
				p, err := decodeReservation(w, r)
				if err != nil {
					errs.handle(w, err, "Invalid cancellation")
					return
				}

				if _, err := reservations.Cancel(r.Context(), p.cancel()); err != nil {
					errs.handle(w, err, "Failed to cancel reservation")
					return
				}
				httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
			}
			r.Post("/reservations/cancel", cancel)
			r.Delete("/reservations", cancel)

			r.Get("/reservations/export.xlsx", func(w http.ResponseWriter, r *http.Request) {
				rs, err := reservations.Reservations(r.Context(), queryFromRequest(r))
				if err != nil {
					errs.handle(w, err, "Failed to load reservations")
					return
				}

				w.Header().Set("Content-Type", xlsxContentType)
				w.Header().Set("Content-Disposition", `attachment; filename="reservations.xlsx"`)
				if err := export.WriteXLSX(w, rs); err != nil {
					errs.internal(w, "Failed to export reservations", err)
				}
			})
		})

		// The booking form of the first release posted here.
		r.Post("/submit", func(w http.ResponseWriter, r *http.Request) {
			var p legacySubmitPayload
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			if err := json.NewDecoder(r.Body).Decode(&p); err != nil || !p.complete() {
				httputil.WriteJSON(w, http.StatusOK, legacySubmitResponse{Message: "All fields are required."})
				return
			}

			first, last := utils.SplitFullName(p.Name)
			_, err := reservations.Book(r.Context(), service.BookingInput{
				Tournament: p.Tournament,
				Day:        p.Date,
				TeeTime:    p.Time,
				Player: service.PlayerInput{
					FirstName: first,
					LastName:  last,
					Email:     p.Email,
				},
			})
			if err != nil {
				httputil.WriteJSON(w, http.StatusOK, legacySubmitResponse{Message: legacyMessage(err)})
				return
			}
			httputil.WriteJSON(w, http.StatusOK, legacySubmitResponse{
				Success: true,
				Message: "Tee time reserved. A confirmation is on its way.",
			})
		})
	})

	return r
}

func queryFromRequest(r *http.Request) teetime.Query {
	values := r.URL.Query()
	return teetime.Query{
		Tournament: strings.TrimSpace(values.Get("tournament")),
		Day:        strings.TrimSpace(values.Get("day")),
		TeeTime:    strings.TrimSpace(values.Get("tee_time")),
	}
}

type errorWriter struct {
	debug bool
}

func (e errorWriter) internal(w http.ResponseWriter, msg string, err error) {
	if e.debug {
		httputil.InternalServerErrorDetail(w, msg, err)
		return
	}
	httputil.InternalServerError(w, msg, err)
}

func (e errorWriter) handle(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, teetime.ErrValidation):
		httputil.BadRequest(w, err.Error(), err)
	case errors.Is(err, teetime.ErrUnknownSlot), errors.Is(err, teetime.ErrReservationNotFound):
		httputil.NotFound(w, err.Error(), err)
	case errors.Is(err, teetime.ErrSlotFull),
		errors.Is(err, teetime.ErrDuplicateBooking),
		errors.Is(err, teetime.ErrPositionTaken):
		httputil.Conflict(w, err.Error(), err)
	default:
		e.internal(w, msg, err)
	}
}

func (p legacySubmitPayload) complete() bool {
	for _, v := range []string{p.Name, p.Email, p.Tournament, p.Date, p.Time} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

func legacyMessage(err error) string {
	switch {
	case errors.Is(err, teetime.ErrSlotFull):
		return "That tee time is full."
	case errors.Is(err, teetime.ErrDuplicateBooking):
		return "You already have this tee time."
	case errors.Is(err, teetime.ErrUnknownSlot):
		return "That tee time is not offered."
	case errors.Is(err, teetime.ErrValidation):
		return "Please enter your full name and a valid email."
	default:
		slog.Error("legacy submit failed", "error", err)
		return "There was an error saving the reservation."
	}
}
