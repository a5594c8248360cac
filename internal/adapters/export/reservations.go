// Package export writes admin reports as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"hotel_booking/internal/domain"
)

const sheet = "Reservations"

var columns = []string{"ID", "Hotel", "Room", "Guest", "Email", "Check-in", "Check-out", "Total", "Status"}

// Names resolves display names; either func may be nil.
type Names struct {
	Hotel func(hotelID string) string
	Room  func(hotelID, roomID string) string
}

// WriteReservations writes one sheet with a bold header row and one row per
// reservation.
func WriteReservations(w io.Writer, rs []domain.Reservation, names Names) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeRow(f, 1, toAny(columns)); err != nil {
		return err
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		end, _ := excelize.CoordinatesToCellName(len(columns), 1)
		_ = f.SetCellStyle(sheet, "A1", end, style)
	}

	for i, r := range rs {
		hotel, room := r.HotelID, r.RoomID
		if names.Hotel != nil {
			if n := names.Hotel(r.HotelID); n != "" {
				hotel = n
			}
		}
		if names.Room != nil {
			if n := names.Room(r.HotelID, r.RoomID); n != "" {
				room = n
			}
		}
		row := []any{
			r.ID, hotel, room, r.GuestName(), r.GuestData.Email,
			r.CheckInDate.Format("2006-01-02"), r.CheckOutDate.Format("2006-01-02"),
			r.TotalPrice, string(r.Status),
		}
		if err := writeRow(f, i+2, row); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func writeRow(f *excelize.File, rowNum int, vals []any) error {
	for i, v := range vals {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set %s: %w", cell, err)
		}
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
