package cache

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// KeySeparator joins the normalized segments of a derived key.
const KeySeparator = "_"

// maxKeyLen caps derived keys. Free-text queries can be arbitrarily long;
// anything beyond the cap is truncated and suffixed with a hash of the
// full normalized key so distinct queries never collide on the truncation.
const maxKeyLen = 96

// KeyDeriver maps a logical request (query text, location segments) to a
// stable cache key. Implementations must be deterministic across runs:
// the key is persisted alongside the record.
type KeyDeriver interface {
	DeriveKey(segments ...string) string
}

// defaultKeyDeriver lower-cases each segment, collapses whitespace runs to
// a single underscore, drops empty segments, and joins with KeySeparator.
type defaultKeyDeriver struct{}

// NewDefaultKeyDeriver creates the default key deriver.
func NewDefaultKeyDeriver() KeyDeriver {
	return &defaultKeyDeriver{}
}

// DeriveKey builds a normalized key from the given segments.
// "Pune", "Maharashtra" → "pune_maharashtra"; "Organic  Cotton Yarn" →
// "organic_cotton_yarn". Empty and whitespace-only segments are skipped.
func (d *defaultKeyDeriver) DeriveKey(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if n := normalizeSegment(seg); n != "" {
			parts = append(parts, n)
		}
	}

	key := strings.Join(parts, KeySeparator)
	if len(key) <= maxKeyLen {
		return key
	}

	digest := xxhash.Sum64String(key)
	prefix := key[:maxKeyLen-17]
	for len(prefix) > 0 && !utf8.ValidString(prefix) {
		prefix = prefix[:len(prefix)-1]
	}
	return fmt.Sprintf("%s_%016x", prefix, digest)
}

// normalizeSegment lower-cases s and replaces each run of whitespace with
// a single underscore. Leading and trailing whitespace is dropped.
func normalizeSegment(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingGap := false
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsSpace(r) {
			pendingGap = true
			continue
		}
		if pendingGap {
			b.WriteByte('_')
			pendingGap = false
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
