package enrichment

import (
	"testing"
	"time"

	"github.com/goliatone/go-enrichment-cache/cache"
)

func TestKindPolicyTable(t *testing.T) {
	tests := []struct {
		name         string
		cfg          KindConfig
		wantTTL      time.Duration
		refreshEmpty bool
	}{
		{"reports", ReportKind(), 24 * time.Hour, false},
		{"events", EventKind(), 6 * time.Hour, false},
		{"schemes", SchemeKind(), 12 * time.Hour, true},
		{"materials", MaterialKind(), 24 * time.Hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err != nil {
				t.Fatalf("default kind config must validate: %v", err)
			}
			if tt.cfg.TTL != tt.wantTTL {
				t.Errorf("TTL = %v, want %v", tt.cfg.TTL, tt.wantTTL)
			}
			if tt.cfg.RefreshEmpty != tt.refreshEmpty {
				t.Errorf("RefreshEmpty = %v, want %v", tt.cfg.RefreshEmpty, tt.refreshEmpty)
			}
			p := tt.cfg.Policy()
			if p.TTL != tt.wantTTL || p.RefreshEmpty != tt.refreshEmpty {
				t.Errorf("Policy() = %+v, inconsistent with config", p)
			}
		})
	}
}

func TestKindConfig_Validate(t *testing.T) {
	if err := (KindConfig{TTL: time.Hour}).Validate(); err == nil {
		t.Error("missing kind name must fail validation")
	}
	if err := (KindConfig{Kind: "events"}).Validate(); err == nil {
		t.Error("missing TTL must fail validation")
	}
	if err := (KindConfig{Kind: "events", TTL: time.Second}).Validate(); err == nil {
		t.Error("sub-minute TTL must fail validation")
	}
}

func TestEventScopes(t *testing.T) {
	scopes := EventScopes("Pune", "Maharashtra")
	want := []cache.Scope{
		{Query: "Pune", RadiusKM: CityRadiusKM},
		{Query: "Maharashtra", RadiusKM: StateRadiusKM},
		{Query: DefaultCountry, RadiusKM: CountryRadiusKM},
	}
	if len(scopes) != len(want) {
		t.Fatalf("expected %d scopes, got %d", len(want), len(scopes))
	}
	for i := range want {
		if scopes[i] != want[i] {
			t.Errorf("scope[%d] = %+v, want %+v", i, scopes[i], want[i])
		}
	}
}

func TestEventScopes_SkipsBlankSegments(t *testing.T) {
	scopes := EventScopes("Pune", "  ")
	if len(scopes) != 2 {
		t.Fatalf("expected city and country only, got %v", scopes)
	}
	if scopes[0].Query != "Pune" || scopes[1].Query != DefaultCountry {
		t.Errorf("unexpected cascade: %v", scopes)
	}

	scopes = EventScopes("", "")
	if len(scopes) != 1 || scopes[0].Query != DefaultCountry {
		t.Errorf("expected country-only cascade, got %v", scopes)
	}
}
