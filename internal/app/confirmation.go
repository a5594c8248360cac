package app

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"hotel_booking/internal/domain"
)

const dateLayout = "2/1/2006"

var copPrinter = message.NewPrinter(language.MustParse("es-CO"))

// FormatCOP renders an amount in Colombian pesos without decimals, e.g. "$1.200.000".
func FormatCOP(amount float64) string {
	return copPrinter.Sprintf("$%d", int64(math.Round(amount)))
}

// Receipt is the downloadable plain-text confirmation.
func Receipt(r domain.Reservation) string {
	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteByte('\n')
	}
	section := func(title string) {
		b.WriteString("\n")
		b.WriteString(title)
		b.WriteString("\n========================\n")
	}

	b.WriteString("CONFIRMACIÓN DE RESERVA\n========================\n\n")
	line("Número de reserva", r.ID)
	line("Estado", strings.ToUpper(string(r.Status)))
	line("Fecha de creación", r.CreatedAt.Format(dateLayout))

	section("INFORMACIÓN DEL HUÉSPED")
	g := r.GuestData
	line("Nombre completo", g.FullName)
	line("Género", string(g.Gender))
	line("Fecha de nacimiento", g.DateOfBirth.Format(dateLayout))
	line("Tipo de documento", string(g.DocumentType))
	line("Número de documento", g.DocumentNumber)
	line("Email", g.Email)
	line("Teléfono", g.Phone)

	section("DETALLES DE LA RESERVA")
	line("Fecha de entrada", r.CheckInDate.Format(dateLayout))
	line("Fecha de salida", r.CheckOutDate.Format(dateLayout))
	line("Precio total", FormatCOP(r.TotalPrice))

	b.WriteString("\nGracias por tu reserva. Te contactaremos pronto con los detalles de confirmación.\n")
	return b.String()
}
