package shared_test

import (
	"testing"
	"time"

	"hotel_booking/internal/shared"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("API_DELAY_MS", "0")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("REMOTE_RPS", "not-a-number")
	t.Setenv("ADMIN_PASSWORD", "s3cret")

	c := shared.Load()

	if c.APIDelay != 0 {
		t.Fatalf("expected zero delay, got %s", c.APIDelay)
	}
	if c.StorageDriver != "memory" {
		t.Fatalf("unexpected storage driver %q", c.StorageDriver)
	}
	if c.RemoteRPS != 10 {
		t.Fatalf("expected default RPS on bad input, got %d", c.RemoteRPS)
	}
	if c.SessionTTL != 30*time.Minute {
		t.Fatalf("unexpected session ttl %s", c.SessionTTL)
	}
	if c.AdminPassword != "s3cret" || c.HotelShape != "catalog" {
		t.Fatalf("unexpected config: %+v", c)
	}
}
