package domain

import "time"

type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusPending   ReservationStatus = "pending"
	StatusCancelled ReservationStatus = "cancelled"
)

type DocumentType string

const (
	DocCitizenID DocumentType = "CC"
	DocForeignID DocumentType = "CE"
	DocPassport  DocumentType = "PAS"
)

type Gender string

const (
	GenderMale   Gender = "Hombre"
	GenderFemale Gender = "Mujer"
	GenderOther  Gender = "Otro"
)

type GuestData struct {
	FullName       string       `json:"fullName"`
	DateOfBirth    time.Time    `json:"dateOfBirth"`
	Gender         Gender       `json:"gender"`
	DocumentType   DocumentType `json:"documentType"`
	DocumentNumber string       `json:"documentNumber"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
}

type SearchCriteria struct {
	City         string     `json:"city"`
	CheckInDate  time.Time  `json:"checkInDate"`
	CheckOutDate *time.Time `json:"checkOutDate,omitempty"`
}

type Reservation struct {
	ID             string            `json:"id"`
	HotelID        string            `json:"hotelId"`
	RoomID         string            `json:"roomId"`
	GuestData      GuestData         `json:"guestData"`
	SearchCriteria SearchCriteria    `json:"searchCriteria"`
	CheckInDate    time.Time         `json:"checkInDate"`
	CheckOutDate   time.Time         `json:"checkOutDate"`
	TotalPrice     float64           `json:"totalPrice"`
	CreatedAt      time.Time         `json:"createdAt"`
	Status         ReservationStatus `json:"status"`
}

// GuestName is the admin listing's guest column.
func (r Reservation) GuestName() string { return r.GuestData.FullName }

type ReservationResponse struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message"`
	Reservation *Reservation `json:"reservation,omitempty"`
}
