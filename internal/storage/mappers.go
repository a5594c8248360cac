package storage

import (
	"strconv"
	"strings"
	"time"

	"hotel_booking/internal/domain"
)

/********** alias registries for legacy (v0) blobs **********/

var hotelAliases = map[string][]string{
	"id":          {"id", "hotelId", "hotel_id"},
	"name":        {"name", "hotel_name", "title"},
	"location":    {"location", "city", "address.city"},
	"description": {"description", "summary"},
	"phone":       {"phone", "telephone", "contact.phone"},
	"email":       {"email", "contact.email"},
	"category":    {"category"},
	"createdAt":   {"createdAt", "created_at"},
}

var roomAliases = map[string][]string{
	"id":          {"id", "roomId", "room_id"},
	"type":        {"type", "roomType", "room_type"},
	"name":        {"name", "roomType", "title"},
	"description": {"description"},
	"location":    {"location", "floor"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstAlias: first non-empty string for a named alias set.
func firstAlias(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		if s := lookupStr(m, p); s != "" {
			return s
		}
	}
	return ""
}

// getFloatFlexible: number from several paths (float64/int/string like "8,0").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

func firstIntFlexible(m map[string]any, def int, paths ...string) int {
	if f := getFloatFlexible(m, paths...); f != nil {
		return int(*f)
	}
	return def
}

// firstBool accepts JSON booleans and "true"/"false" strings.
func firstBool(m map[string]any, def bool, paths ...string) bool {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case bool:
			return v
		case string:
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				return b
			}
		}
	}
	return def
}

// firstSliceStrings: accept []any with either strings or {url/src/name}.
func firstSliceStrings(m map[string]any, paths ...string) []string {
	for _, k := range paths {
		if raw, ok := lookupAny(m, k).([]any); ok {
			out := make([]string, 0, len(raw))
			for _, it := range raw {
				switch t := it.(type) {
				case string:
					if t != "" {
						out = append(out, t)
					}
				case map[string]any:
					for _, f := range []string{"url", "src", "name"} {
						if u, ok := t[f].(string); ok && u != "" {
							out = append(out, u)
							break
						}
					}
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return nil
}

func firstTime(m map[string]any, paths ...string) time.Time {
	for _, k := range paths {
		s := lookupStr(m, k)
		if s == "" {
			continue
		}
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

/********** hotel mapper **********/

func mapLegacyHotel(p map[string]any) domain.Hotel {
	h := domain.Hotel{
		ID:          firstAlias(p, hotelAliases, "id"),
		Name:        firstAlias(p, hotelAliases, "name"),
		Location:    firstAlias(p, hotelAliases, "location"),
		Description: firstAlias(p, hotelAliases, "description"),
		Phone:       firstAlias(p, hotelAliases, "phone"),
		Email:       firstAlias(p, hotelAliases, "email"),
		Category:    domain.HotelCategory(firstAlias(p, hotelAliases, "category")),
		Amenities:   firstSliceStrings(p, "amenities", "facilities"),
		Images:      firstSliceStrings(p, "images", "photos"),
		IsActive:    firstBool(p, true, "isActive", "active", "is_active"),
		CreatedAt:   firstTime(p, hotelAliases["createdAt"]...),
		Rooms:       []domain.Room{},
	}
	if h.ID == "" {
		// numeric ids in some hand-written seeds
		if f := getFloatFlexible(p, "id"); f != nil {
			h.ID = strconv.FormatInt(int64(*f), 10)
		}
	}
	if f := getFloatFlexible(p, "rating", "stars"); f != nil {
		h.Rating = *f
	}
	if rooms, ok := lookupAny(p, "rooms").([]any); ok {
		for _, it := range rooms {
			if rm, ok := it.(map[string]any); ok {
				h.Rooms = append(h.Rooms, mapLegacyRoom(rm))
			}
		}
	}
	return h
}

/********** room mapper **********/

func mapLegacyRoom(r map[string]any) domain.Room {
	room := domain.Room{
		ID:          firstAlias(r, roomAliases, "id"),
		Type:        domain.RoomType(firstAlias(r, roomAliases, "type")),
		Name:        firstAlias(r, roomAliases, "name"),
		Description: firstAlias(r, roomAliases, "description"),
		Location:    firstAlias(r, roomAliases, "location"),
		Capacity:    firstIntFlexible(r, domain.DefaultRoomCapacity, "capacity", "maxGuests"),
		Available:   firstIntFlexible(r, domain.DefaultRoomAvailable, "available"),
		Amenities:   firstSliceStrings(r, "amenities", "facilities"),
		Images:      firstSliceStrings(r, "images", "photos"),
		IsActive:    firstBool(r, true, "isActive", "active", "is_active"),
		Size:        domain.DefaultRoomSize,
	}
	if room.Name == "" {
		room.Name = string(room.Type)
	}
	if f := getFloatFlexible(r, "pricePerNight", "baseCost", "price", "price_per_night"); f != nil {
		room.PricePerNight = *f
	}
	if f := getFloatFlexible(r, "tax", "taxRate"); f != nil {
		room.Tax = *f
	}
	if f := getFloatFlexible(r, "size", "sizeM2"); f != nil {
		room.Size = *f
	}
	if room.Amenities == nil {
		room.Amenities = domain.DefaultRoomAmenities()
	}
	if t := firstTime(r, "createdAt", "created_at"); !t.IsZero() {
		room.CreatedAt = &t
	}
	return room
}
