package app

import "hotel_booking/internal/domain"

// SyncRooms rebuilds every hotel's embedded guest rooms from the admin rooms
// that reference it. Fields the admin side does not manage are kept from the
// existing guest room with the same id, or defaulted for new rooms.
func SyncRooms(hotels []domain.Hotel, rooms []domain.AdminRoom) []domain.Hotel {
	byHotel := make(map[string][]domain.AdminRoom, len(hotels))
	for _, r := range rooms {
		byHotel[r.HotelID] = append(byHotel[r.HotelID], r)
	}
	out := make([]domain.Hotel, len(hotels))
	for i, h := range hotels {
		prev := make(map[string]domain.Room, len(h.Rooms))
		for _, g := range h.Rooms {
			prev[g.ID] = g
		}
		guest := make([]domain.Room, 0, len(byHotel[h.ID]))
		for _, ar := range byHotel[h.ID] {
			old, ok := prev[ar.ID]
			guest = append(guest, toGuestRoom(ar, old, ok))
		}
		h.Rooms = guest
		out[i] = h
	}
	return out
}

func toGuestRoom(ar domain.AdminRoom, old domain.Room, existed bool) domain.Room {
	g := domain.Room{
		ID:            ar.ID,
		Type:          domain.RoomType(ar.RoomType),
		Name:          ar.RoomType,
		PricePerNight: ar.BaseCost,
		Tax:           ar.Tax,
		Location:      ar.Location,
		IsActive:      ar.IsActive,
		Capacity:      domain.DefaultRoomCapacity,
		Available:     domain.DefaultRoomAvailable,
		Amenities:     domain.DefaultRoomAmenities(),
		Size:          domain.DefaultRoomSize,
	}
	if !ar.CreatedAt.IsZero() {
		created := ar.CreatedAt
		g.CreatedAt = &created
	}
	if existed {
		g.Capacity = old.Capacity
		g.Available = old.Available
		g.Amenities = old.Amenities
		g.Size = old.Size
		g.Description = old.Description
		g.Images = old.Images
		if old.Type != "" && string(old.Type) != old.Name && old.Name == ar.RoomType {
			g.Type = old.Type // keep the enum when the display name is unchanged
		}
	}
	return g
}

// RoomsFromHotels is the reverse mapping used on load. Rooms without their
// own creation time inherit the hotel's.
func RoomsFromHotels(hotels []domain.Hotel) []domain.AdminRoom {
	var out []domain.AdminRoom
	for _, h := range hotels {
		for _, g := range h.Rooms {
			rt := g.Name
			if rt == "" {
				rt = string(g.Type)
			}
			created := h.CreatedAt
			if g.CreatedAt != nil {
				created = *g.CreatedAt
			}
			out = append(out, domain.AdminRoom{
				ID:        g.ID,
				HotelID:   h.ID,
				RoomType:  rt,
				BaseCost:  g.PricePerNight,
				Tax:       g.Tax,
				Location:  g.Location,
				IsActive:  g.IsActive,
				CreatedAt: created,
			})
		}
	}
	if out == nil {
		out = []domain.AdminRoom{}
	}
	return out
}
