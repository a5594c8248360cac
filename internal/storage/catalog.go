package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

// CatalogVersion is stamped on every catalog written by this package.
// Blobs without a version are migrated through the legacy mappers on read.
const CatalogVersion = 1

// NewCatalog wraps hotels in a current-version HotelResponse.
func NewCatalog(hotels []domain.Hotel) domain.HotelResponse {
	out := make([]domain.Hotel, len(hotels))
	for i, h := range hotels {
		if h.Rooms == nil {
			h.Rooms = []domain.Room{}
		}
		out[i] = h
	}
	pages := 0
	if len(out) > 0 {
		pages = 1
	}
	return domain.HotelResponse{Version: CatalogVersion, Count: len(out), Pages: pages, Hotels: out}
}

// DecodeCatalog accepts the current shape, a legacy object without version,
// or a bare legacy array of hotels. Any other version is an error; its
// fields cannot be trusted to mean what this package thinks they mean.
func DecodeCatalog(raw []byte) (domain.HotelResponse, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.HotelResponse{}, err
	}
	switch v := doc.(type) {
	case []any:
		log.Debug().Int("hotels", len(v)).Msg("migrating legacy hotel array")
		return NewCatalog(mapLegacyHotels(v)), nil
	case map[string]any:
		if f := getFloatFlexible(v, "version"); f != nil && *f > 0 {
			if *f != CatalogVersion {
				return domain.HotelResponse{}, fmt.Errorf("catalog: unsupported version %v (want %d)", *f, CatalogVersion)
			}
			var resp domain.HotelResponse
			if err := json.Unmarshal(raw, &resp); err != nil {
				return domain.HotelResponse{}, err
			}
			return NewCatalog(resp.Hotels), nil
		}
		hotels, _ := v["hotels"].([]any)
		log.Debug().Int("hotels", len(hotels)).Msg("migrating legacy hotel catalog")
		return NewCatalog(mapLegacyHotels(hotels)), nil
	default:
		return domain.HotelResponse{}, fmt.Errorf("catalog: unexpected JSON %T", doc)
	}
}

func mapLegacyHotels(in []any) []domain.Hotel {
	out := make([]domain.Hotel, 0, len(in))
	for _, it := range in {
		if m, ok := it.(map[string]any); ok {
			out = append(out, mapLegacyHotel(m))
		}
	}
	return out
}

// LoadCatalog reads the hotels blob. Missing or unreadable blobs yield an
// empty catalog.
func (a *Adapter) LoadCatalog(ctx context.Context) (domain.HotelResponse, error) {
	raw, ok, err := a.ReadRaw(ctx, KeyHotels)
	if err != nil {
		return domain.HotelResponse{}, err
	}
	if !ok {
		return NewCatalog(nil), nil
	}
	resp, err := DecodeCatalog(raw)
	if err != nil {
		a.corrupt(KeyHotels, err)
		return NewCatalog(nil), nil
	}
	return resp, nil
}

// SaveCatalog replaces the hotels blob.
func (a *Adapter) SaveCatalog(ctx context.Context, hotels []domain.Hotel) error {
	return a.Write(ctx, KeyHotels, NewCatalog(hotels))
}
