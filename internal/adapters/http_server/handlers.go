package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/app"
	"hotel_booking/internal/auth"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/notify"
)

// Handlers serves three surfaces: the repository API the remote variant
// talks to, the guest booking flow and the admin console.
type Handlers struct {
	Hotels       domain.HotelRepository
	Reservations domain.ReservationRepository
	Guest        *app.GuestService
	Store        *app.Store
	Auth         *auth.Service
	Notify       *notify.Service
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Field  string `json:"field,omitempty"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Group(func(r chi.Router) {
		r.Use(Timeout(requestTimeout))

		r.Get("/hotels.json", h.listHotels)
		r.Post("/hotels", h.createHotel)
		r.Get("/hotels/{id}", h.getHotel)
		r.Put("/hotels/{id}", h.updateHotel)
		r.Delete("/hotels/{id}", h.deleteHotel)

		r.Post("/reservations", h.createReservation)
		r.Get("/reservations", h.reservationsByEmail)
		r.Get("/reservations/{id}", h.getReservation)
		r.Delete("/reservations/{id}", h.cancelReservation)
		r.Post("/reservations/{id}/cancel", h.markReservationCancelled)

		r.Get("/search", h.search)
		r.Get("/hotel/{id}", h.hotelDetail)
		r.Post("/reservation/{hotelId}/{roomId}", h.book)
		r.Get("/confirmation/{id}", h.confirmation)
	})

	s.mux.Route("/admin", func(r chi.Router) {
		r.With(Timeout(requestTimeout)).Get("/login", h.loginStatus)
		r.With(Timeout(requestTimeout)).Post("/login", h.login)
		r.With(Timeout(requestTimeout)).Post("/logout", h.logout)

		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin(h.Auth))
			r.Get("/toasts/ws", h.toastStream)

			r.Group(func(r chi.Router) {
				r.Use(Timeout(requestTimeout))
				r.Get("/status", h.adminStatus)

				r.Get("/hotels", h.adminHotels)
				r.Post("/hotels", h.adminAddHotel)
				r.Get("/hotels/{id}", h.adminHotel)
				r.Put("/hotels/{id}", h.adminUpdateHotel)
				r.Delete("/hotels/{id}", h.adminDeleteHotel)
				r.Post("/hotels/{id}/toggle", h.adminToggleHotel)

				r.Get("/rooms", h.adminRooms)
				r.Post("/rooms", h.adminAddRoom)
				r.Put("/rooms/{id}", h.adminUpdateRoom)
				r.Delete("/rooms/{id}", h.adminDeleteRoom)
				r.Post("/rooms/{id}/toggle", h.adminToggleRoom)

				r.Get("/reservations", h.adminReservations)
				r.Get("/reservations/export.xlsx", h.adminExportReservations)

				r.Get("/toasts", h.toasts)
				r.Delete("/toasts", h.clearToasts)
				r.Delete("/toasts/{id}", h.removeToast)
			})
		})
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemBody(w, problem{Type: "about:blank", Title: title, Status: status, Detail: detail})
}

func writeProblemBody(w http.ResponseWriter, p problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain errors onto problem responses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeProblemBody(w, problem{Type: "about:blank", Title: "Validation Failed", Status: http.StatusUnprocessableEntity, Field: ve.Field, Detail: ve.Message})
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeProblem(w, http.StatusServiceUnavailable, "Unavailable", "request cancelled")
	default:
		log.Error().Err(err).Str("route", routeOf(r)).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// decodeJSON writes a 400 and returns false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return false
	}
	return true
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// parseDate accepts a calendar date or an RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func optionalDate(field, s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, domain.Invalid(field, field+" no es válido")
	}
	return &t, nil
}
