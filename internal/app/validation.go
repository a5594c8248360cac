package app

import (
	"strings"

	"hotel_booking/internal/domain"
)

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// ValidateNewHotel requires name, location and the shape's third field
// (description for the catalog shape, email for the contact shape).
func ValidateNewHotel(h domain.Hotel, shape domain.HotelShape) error {
	third, label, field := h.Description, "Descripción", "description"
	if shape == domain.ShapeContact {
		third, label, field = h.Email, "Email", "email"
	}
	msg := "Los campos Nombre, Ubicación y " + label + " son obligatorios"
	switch {
	case blank(h.Name):
		return domain.Invalid("name", msg)
	case blank(h.Location):
		return domain.Invalid("location", msg)
	case blank(third):
		return domain.Invalid(field, msg)
	}
	return nil
}

func ValidateHotelPatch(p domain.HotelPatch) error {
	if p.Name != nil && blank(*p.Name) {
		return domain.Invalid("name", "El nombre del hotel no puede estar vacío")
	}
	return nil
}

func ValidateNewRoom(r domain.AdminRoom) error {
	const msg = "Todos los campos son obligatorios"
	switch {
	case blank(r.HotelID):
		return domain.Invalid("hotelId", msg)
	case blank(r.RoomType):
		return domain.Invalid("roomType", msg)
	case blank(r.Location):
		return domain.Invalid("location", msg)
	}
	return validateCosts(&r.BaseCost, &r.Tax)
}

// ValidateRoomPatch checks only the provided fields. A provided baseCost of
// zero is rejected.
func ValidateRoomPatch(p domain.RoomPatch) error {
	return validateCosts(p.BaseCost, p.Tax)
}

func validateCosts(baseCost, tax *float64) error {
	if baseCost != nil && !(*baseCost > 0) {
		return domain.Invalid("baseCost", "El costo base debe ser mayor a 0")
	}
	if tax != nil && !(*tax >= 0 && *tax <= 100) {
		return domain.Invalid("tax", "El impuesto debe estar entre 0 y 100")
	}
	return nil
}
