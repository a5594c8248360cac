// Package ids mints the timestamp ids used across the catalog
// ("hotel-1712345678901", "RES-1712345678901").
package ids

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// New returns prefix + unix millis. When taken reports the id as used (two
// creations within the same millisecond) a short random suffix is appended.
// taken may be nil.
func New(prefix string, now time.Time, taken func(string) bool) string {
	id := prefix + strconv.FormatInt(now.UnixMilli(), 10)
	if taken == nil || !taken(id) {
		return id
	}
	for {
		alt := id + "-" + uuid.NewString()[:8]
		if !taken(alt) {
			return alt
		}
	}
}
