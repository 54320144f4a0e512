package enrichment

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-enrichment-cache/cache"
)

// DefaultCountry is the broadest scope for geographic cascades and the
// fallback state for scheme searches.
const DefaultCountry = "india"

// Search radii for the event cascade, narrowest first.
const (
	CityRadiusKM    = 50
	StateRadiusKM   = 200
	CountryRadiusKM = 1000
)

// KindConfig is the per-data-kind behavioral contract: the store namespace,
// how long a successful fetch remains servable, and whether a fresh record
// holding an empty payload still forces a refetch.
type KindConfig struct {
	// Kind names the store namespace (one logical collection per data
	// kind), keeping cross-kind key interference impossible.
	Kind string

	// TTL bounds staleness with a half-open window; a record exactly TTL
	// old must be refetched.
	TTL time.Duration

	// RefreshEmpty treats a fresh empty record as stale.
	RefreshEmpty bool
}

// Validate checks the configuration values.
func (c KindConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Kind, validation.Required),
		validation.Field(&c.TTL, validation.Required, validation.Min(time.Minute)),
	)
}

// Policy converts the kind configuration into the engine's freshness policy.
func (c KindConfig) Policy() cache.Policy {
	return cache.Policy{TTL: c.TTL, RefreshEmpty: c.RefreshEmpty}
}

// ReportKind is the policy for AI trend/funding/insight reports.
func ReportKind() KindConfig {
	return KindConfig{Kind: "reports", TTL: 24 * time.Hour}
}

// EventKind is the policy for nearby-event search.
func EventKind() KindConfig {
	return KindConfig{Kind: "events", TTL: 6 * time.Hour}
}

// SchemeKind is the policy for government-scheme search. RefreshEmpty is
// the kind's special case: an empty payload inside the TTL is presumed to
// be a prior fetch failure and is refetched.
func SchemeKind() KindConfig {
	return KindConfig{Kind: "schemes", TTL: 12 * time.Hour, RefreshEmpty: true}
}

// MaterialKind is the policy for raw-material search.
func MaterialKind() KindConfig {
	return KindConfig{Kind: "materials", TTL: 24 * time.Hour}
}

// EventScopes builds the event cascade for a location, narrowest first:
// city at 50km, state at 200km, country at 1000km. Blank segments are
// skipped, so a request without a state cascades city → country.
func EventScopes(city, state string) []cache.Scope {
	var scopes []cache.Scope
	if city = strings.TrimSpace(city); city != "" {
		scopes = append(scopes, cache.Scope{Query: city, RadiusKM: CityRadiusKM})
	}
	if state = strings.TrimSpace(state); state != "" {
		scopes = append(scopes, cache.Scope{Query: state, RadiusKM: StateRadiusKM})
	}
	scopes = append(scopes, cache.Scope{Query: DefaultCountry, RadiusKM: CountryRadiusKM})
	return scopes
}
