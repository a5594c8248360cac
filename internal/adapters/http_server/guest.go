package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

// bookingRequest carries the guest form with dates as strings.
type bookingRequest struct {
	FullName       string              `json:"fullName"`
	DateOfBirth    string              `json:"dateOfBirth"`
	Gender         domain.Gender       `json:"gender"`
	DocumentType   domain.DocumentType `json:"documentType"`
	DocumentNumber string              `json:"documentNumber"`
	Email          string              `json:"email"`
	Phone          string              `json:"phone"`
}

func (b bookingRequest) form() (app.GuestForm, error) {
	f := app.GuestForm{
		FullName:       b.FullName,
		Gender:         b.Gender,
		DocumentType:   b.DocumentType,
		DocumentNumber: b.DocumentNumber,
		Email:          b.Email,
		Phone:          b.Phone,
	}
	dob, err := optionalDate("dateOfBirth", b.DateOfBirth)
	if err != nil {
		return f, err
	}
	if dob != nil {
		f.DateOfBirth = *dob
	}
	return f, nil
}

// search: GET /search?city=&checkIn=&checkOut=
func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := app.SearchInput{City: q.Get("city")}
	var err error
	if in.CheckInDate, err = optionalDate("checkInDate", q.Get("checkIn")); err != nil {
		writeError(w, r, err)
		return
	}
	if in.CheckOutDate, err = optionalDate("checkOutDate", q.Get("checkOut")); err != nil {
		writeError(w, r, err)
		return
	}
	hotels, err := h.Guest.Search(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hotels)
}

func (h *Handlers) hotelDetail(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.Guest.HotelDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hotel)
}

func (h *Handlers) book(w http.ResponseWriter, r *http.Request) {
	var in bookingRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	form, err := in.form()
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.Guest.Book(r.Context(), chi.URLParam(r, "hotelId"), chi.URLParam(r, "roomId"), form)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// confirmation answers JSON, or the printable receipt with ?format=txt.
func (h *Handlers) confirmation(w http.ResponseWriter, r *http.Request) {
	res, err := h.Guest.Confirmation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if r.URL.Query().Get("format") == "txt" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="reserva-`+res.ID+`.txt"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(app.Receipt(res)))
		return
	}
	writeJSON(w, http.StatusOK, res)
}
