package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"hotel_booking/internal/domain"
	"hotel_booking/internal/storage"
)

// SeedSource yields the catalog used to initialize an empty store.
type SeedSource func(ctx context.Context) (domain.HotelResponse, error)

// FileSource reads a .json or .yaml/.yml catalog. Both the current and the
// legacy shapes are accepted.
func FileSource(path string) SeedSource {
	return func(ctx context.Context) (domain.HotelResponse, error) {
		raw, err := os.ReadFile(path)
		if err != nil {
			return domain.HotelResponse{}, fmt.Errorf("read seed: %w", err)
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			var doc any
			if err := yaml.Unmarshal(raw, &doc); err != nil {
				return domain.HotelResponse{}, fmt.Errorf("parse seed %s: %w", path, err)
			}
			if raw, err = json.Marshal(doc); err != nil {
				return domain.HotelResponse{}, fmt.Errorf("convert seed %s: %w", path, err)
			}
		}
		cat, err := storage.DecodeCatalog(raw)
		if err != nil {
			return domain.HotelResponse{}, fmt.Errorf("parse seed %s: %w", path, err)
		}
		return cat, nil
	}
}

// RepositorySource seeds from a hotel repository, typically the remote one.
func RepositorySource(r domain.HotelRepository) SeedSource { return r.GetHotels }

// Seed writes the source catalog unless storage already holds a non-empty
// valid one. An unparsable blob is removed first. It reports whether it wrote.
func Seed(ctx context.Context, a *storage.Adapter, src SeedSource) (bool, error) {
	raw, ok, err := a.ReadRaw(ctx, storage.KeyHotels)
	if err != nil {
		return false, err
	}
	if ok {
		cat, derr := storage.DecodeCatalog(raw)
		if derr == nil && len(cat.Hotels) > 0 {
			log.Info().Int("hotels", len(cat.Hotels)).Msg("hotels already stored; skipping seed")
			return false, nil
		}
		if derr != nil {
			log.Warn().Err(derr).Msg("stored hotels are invalid; reseeding")
			if err := a.Remove(ctx, storage.KeyHotels); err != nil {
				return false, err
			}
		}
	}

	cat, err := src(ctx)
	if err != nil {
		return false, err
	}
	if err := a.SaveCatalog(ctx, cat.Hotels); err != nil {
		return false, err
	}
	log.Info().Int("hotels", len(cat.Hotels)).Msg("hotel catalog seeded")
	return true, nil
}
