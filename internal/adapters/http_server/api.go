package httpserver

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

// ---- hotels ----

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Hotels.GetHotels(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	etag, body := calcETagAndBody(resp)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write hotels.json body")
	}
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.Hotels.GetHotelByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if hotel == nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	}
	writeJSON(w, http.StatusOK, hotel)
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	var in domain.Hotel
	if !decodeJSON(w, r, &in) {
		return
	}
	created, err := h.Hotels.CreateHotel(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	var p domain.HotelPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	updated, err := h.Hotels.UpdateHotel(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if updated == nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	ok, err := h.Hotels.DeleteHotel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- reservations ----

func (h *Handlers) createReservation(w http.ResponseWriter, r *http.Request) {
	var in domain.Reservation
	if !decodeJSON(w, r, &in) {
		return
	}
	resp, err := h.Reservations.CreateReservation(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handlers) getReservation(w http.ResponseWriter, r *http.Request) {
	res, err := h.Reservations.GetReservation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if res == nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "reservation not found")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) reservationsByEmail(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeProblem(w, http.StatusBadRequest, "Missing email", "email query parameter is required")
		return
	}
	out, err := h.Reservations.GetReservationsByEmail(r.Context(), email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// cancelReservation deletes the reservation. A missing id still answers 200
// with success=false, like the repository does.
func (h *Handlers) cancelReservation(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Reservations.CancelReservation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) markReservationCancelled(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Reservations.MarkReservationCancelled(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
