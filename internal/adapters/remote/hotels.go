package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"hotel_booking/internal/domain"
	"hotel_booking/internal/storage"
)

type HotelRepo struct{ c *Client }

func NewHotelRepo(c *Client) *HotelRepo { return &HotelRepo{c: c} }

// GetHotels fetches {base}/hotels.json; legacy catalogs are migrated the same
// way as stored ones.
func (r *HotelRepo) GetHotels(ctx context.Context) (domain.HotelResponse, error) {
	var raw json.RawMessage
	if err := r.c.do(ctx, http.MethodGet, "hotels.list", "/hotels.json", nil, &raw); err != nil {
		return domain.HotelResponse{}, err
	}
	return storage.DecodeCatalog(raw)
}

func (r *HotelRepo) GetHotelByID(ctx context.Context, id string) (*domain.Hotel, error) {
	var h domain.Hotel
	err := r.c.do(ctx, http.MethodGet, "hotels.get", "/hotels/"+url.PathEscape(id), nil, &h)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HotelRepo) CreateHotel(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	var out domain.Hotel
	if err := r.c.do(ctx, http.MethodPost, "hotels.create", "/hotels", h, &out); err != nil {
		return domain.Hotel{}, err
	}
	return out, nil
}

func (r *HotelRepo) UpdateHotel(ctx context.Context, id string, p domain.HotelPatch) (*domain.Hotel, error) {
	var out domain.Hotel
	err := r.c.do(ctx, http.MethodPut, "hotels.update", "/hotels/"+url.PathEscape(id), p, &out)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *HotelRepo) DeleteHotel(ctx context.Context, id string) (bool, error) {
	err := r.c.do(ctx, http.MethodDelete, "hotels.delete", "/hotels/"+url.PathEscape(id), nil, nil)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}
