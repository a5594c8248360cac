package httpserver

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/export"
	"hotel_booking/internal/domain"
)

// ---- session ----

type loginRequest struct {
	Password string `json:"password"`
}

type authState struct {
	Authenticated bool `json:"authenticated"`
}

func (h *Handlers) loginStatus(w http.ResponseWriter, r *http.Request) {
	ok, err := h.Auth.IsAuthenticated(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, authState{Authenticated: ok})
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	ok, err := h.Auth.Login(r.Context(), in.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		writeError(w, r, fmt.Errorf("login: %w", domain.ErrUnauthorized))
		return
	}
	writeJSON(w, http.StatusOK, authState{Authenticated: true})
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Logout(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) adminStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"loading":      h.Store.Loading().Get(),
		"hotels":       len(h.Store.Hotels().Get()),
		"rooms":        len(h.Store.Rooms().Get()),
		"reservations": len(h.Store.Reservations().Get()),
	})
}

// ---- hotels ----

func (h *Handlers) adminHotels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Hotels().Get())
}

func (h *Handlers) adminHotel(w http.ResponseWriter, r *http.Request) {
	hotel, ok := h.Store.GetHotel(chi.URLParam(r, "id"))
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	}
	writeJSON(w, http.StatusOK, hotel)
}

func (h *Handlers) adminAddHotel(w http.ResponseWriter, r *http.Request) {
	var in domain.Hotel
	if !decodeJSON(w, r, &in) {
		return
	}
	created, err := h.Store.AddHotel(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) adminUpdateHotel(w http.ResponseWriter, r *http.Request) {
	var p domain.HotelPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	updated, err := h.Store.UpdateHotel(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handlers) adminDeleteHotel(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteHotel(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) adminToggleHotel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.Store.GetHotel(id); !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	}
	if err := h.Store.ToggleHotel(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	hotel, _ := h.Store.GetHotel(id)
	writeJSON(w, http.StatusOK, hotel)
}

// ---- rooms ----

// roomRequest defaults isActive to true when the field is omitted.
type roomRequest struct {
	HotelID  string  `json:"hotelId"`
	RoomType string  `json:"roomType"`
	BaseCost float64 `json:"baseCost"`
	Tax      float64 `json:"tax"`
	Location string  `json:"location"`
	IsActive *bool   `json:"isActive"`
}

func (in roomRequest) room() domain.AdminRoom {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return domain.AdminRoom{
		HotelID:  in.HotelID,
		RoomType: in.RoomType,
		BaseCost: in.BaseCost,
		Tax:      in.Tax,
		Location: in.Location,
		IsActive: active,
	}
}

func (h *Handlers) adminRooms(w http.ResponseWriter, r *http.Request) {
	if hotelID := r.URL.Query().Get("hotelId"); hotelID != "" {
		writeJSON(w, http.StatusOK, h.Store.GetRoomsByHotel(hotelID))
		return
	}
	writeJSON(w, http.StatusOK, h.Store.Rooms().Get())
}

func (h *Handlers) adminAddRoom(w http.ResponseWriter, r *http.Request) {
	var in roomRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	created, err := h.Store.AddRoom(r.Context(), in.room())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) adminUpdateRoom(w http.ResponseWriter, r *http.Request) {
	var p domain.RoomPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	updated, err := h.Store.UpdateRoom(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handlers) adminDeleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteRoom(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) adminToggleRoom(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	room, ok := h.findRoom(id)
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "room not found")
		return
	}
	if err := h.Store.ToggleRoom(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	room, _ = h.findRoom(id)
	writeJSON(w, http.StatusOK, room)
}

func (h *Handlers) findRoom(id string) (domain.AdminRoom, bool) {
	for _, rm := range h.Store.Rooms().Get() {
		if rm.ID == id {
			return rm, true
		}
	}
	return domain.AdminRoom{}, false
}

// ---- reservations ----

// adminReservations lists reservations, optionally for one hotel. ?refresh=1
// re-reads what the guest flow wrote first.
func (h *Handlers) adminReservations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("refresh") != "" {
		if err := h.Store.RefreshReservations(r.Context()); err != nil {
			writeError(w, r, err)
			return
		}
	}
	if hotelID := q.Get("hotelId"); hotelID != "" {
		writeJSON(w, http.StatusOK, h.Store.GetReservationsByHotel(hotelID))
		return
	}
	writeJSON(w, http.StatusOK, h.Store.Reservations().Get())
}

func (h *Handlers) adminExportReservations(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.RefreshReservations(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	names := export.Names{
		Hotel: func(id string) string {
			hotel, _ := h.Store.GetHotel(id)
			return hotel.Name
		},
		Room: func(hotelID, roomID string) string {
			if rm, ok := h.findRoom(roomID); ok {
				return rm.RoomType
			}
			hotel, _ := h.Store.GetHotel(hotelID)
			for _, rm := range hotel.Rooms {
				if rm.ID == roomID {
					return rm.Name
				}
			}
			return ""
		},
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="reservations.xlsx"`)
	if err := export.WriteReservations(w, h.Store.Reservations().Get(), names); err != nil {
		log.Error().Err(err).Msg("reservations export failed")
	}
}

// ---- toasts ----

func (h *Handlers) toasts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Notify.List())
}

func (h *Handlers) removeToast(w http.ResponseWriter, r *http.Request) {
	h.Notify.Remove(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) clearToasts(w http.ResponseWriter, r *http.Request) {
	h.Notify.Clear()
	w.WriteHeader(http.StatusNoContent)
}
