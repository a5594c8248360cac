package domain

import "time"

type HotelCategory string

const (
	CategoryBudget   HotelCategory = "económico"
	CategoryBoutique HotelCategory = "boutique"
	CategoryBusiness HotelCategory = "negocios"
	CategoryLuxury   HotelCategory = "lujo"
)

type RoomType string

const (
	RoomSingle       RoomType = "Simple"
	RoomDouble       RoomType = "Doble"
	RoomSuite        RoomType = "Suite"
	RoomFamily       RoomType = "Familiar"
	RoomPresidential RoomType = "Presidencial"
)

// Hotel is the persisted hotel record. Two historical shapes share this
// struct: the catalog shape (rating) and the contact shape (phone/email).
type Hotel struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Location    string        `json:"location"`
	Description string        `json:"description"`
	Rating      float64       `json:"rating,omitempty"`
	Phone       string        `json:"phone,omitempty"`
	Email       string        `json:"email,omitempty"`
	Amenities   []string      `json:"amenities,omitempty"`
	Images      []string      `json:"images,omitempty"`
	Category    HotelCategory `json:"category,omitempty"`
	IsActive    bool          `json:"isActive"`
	Rooms       []Room        `json:"rooms"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// Room is the guest-facing room embedded in a Hotel.
type Room struct {
	ID            string     `json:"id"`
	Type          RoomType   `json:"type"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	PricePerNight float64    `json:"pricePerNight"`
	Capacity      int        `json:"capacity"`
	Available     int        `json:"available"`
	Amenities     []string   `json:"amenities"`
	Images        []string   `json:"images,omitempty"`
	Size          float64    `json:"size"` // square meters
	IsActive      bool       `json:"isActive"`
	Tax           float64    `json:"tax,omitempty"`
	Location      string     `json:"location,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"` // admin creation time; nil for legacy rooms
}

// AdminRoom is the admin console's view of a room.
type AdminRoom struct {
	ID        string    `json:"id"`
	HotelID   string    `json:"hotelId"`
	RoomType  string    `json:"roomType"`
	BaseCost  float64   `json:"baseCost"`
	Tax       float64   `json:"tax"`
	Location  string    `json:"location"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// HotelResponse is the blob stored under the hotels key and served as hotels.json.
// Version 0 means a legacy blob written before the version field existed.
type HotelResponse struct {
	Version int     `json:"version,omitempty"`
	Count   int     `json:"count"`
	Pages   int     `json:"pages"`
	Hotels  []Hotel `json:"hotels"`
}

// HotelShape selects the third required field of a new hotel.
type HotelShape string

const (
	ShapeCatalog HotelShape = "catalog" // requires description
	ShapeContact HotelShape = "contact" // requires email
)

type HotelPatch struct {
	Name        *string        `json:"name,omitempty"`
	Location    *string        `json:"location,omitempty"`
	Description *string        `json:"description,omitempty"`
	Rating      *float64       `json:"rating,omitempty"`
	Phone       *string        `json:"phone,omitempty"`
	Email       *string        `json:"email,omitempty"`
	Amenities   []string       `json:"amenities,omitempty"`
	Images      []string       `json:"images,omitempty"`
	Category    *HotelCategory `json:"category,omitempty"`
	IsActive    *bool          `json:"isActive,omitempty"`
}

// Apply returns a copy of h with every provided field replaced.
func (p HotelPatch) Apply(h Hotel) Hotel {
	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.Location != nil {
		h.Location = *p.Location
	}
	if p.Description != nil {
		h.Description = *p.Description
	}
	if p.Rating != nil {
		h.Rating = *p.Rating
	}
	if p.Phone != nil {
		h.Phone = *p.Phone
	}
	if p.Email != nil {
		h.Email = *p.Email
	}
	if p.Amenities != nil {
		h.Amenities = append([]string(nil), p.Amenities...)
	}
	if p.Images != nil {
		h.Images = append([]string(nil), p.Images...)
	}
	if p.Category != nil {
		h.Category = *p.Category
	}
	if p.IsActive != nil {
		h.IsActive = *p.IsActive
	}
	return h
}

type RoomPatch struct {
	HotelID  *string  `json:"hotelId,omitempty"`
	RoomType *string  `json:"roomType,omitempty"`
	BaseCost *float64 `json:"baseCost,omitempty"`
	Tax      *float64 `json:"tax,omitempty"`
	Location *string  `json:"location,omitempty"`
	IsActive *bool    `json:"isActive,omitempty"`
}

func (p RoomPatch) Apply(r AdminRoom) AdminRoom {
	if p.HotelID != nil {
		r.HotelID = *p.HotelID
	}
	if p.RoomType != nil {
		r.RoomType = *p.RoomType
	}
	if p.BaseCost != nil {
		r.BaseCost = *p.BaseCost
	}
	if p.Tax != nil {
		r.Tax = *p.Tax
	}
	if p.Location != nil {
		r.Location = *p.Location
	}
	if p.IsActive != nil {
		r.IsActive = *p.IsActive
	}
	return r
}

// Defaults for guest room fields the admin console does not manage.
const (
	DefaultRoomCapacity  = 2
	DefaultRoomSize      = 25
	DefaultRoomAvailable = 1
)

func DefaultRoomAmenities() []string { return []string{"TV", "Wi-Fi"} }
