package enrichment

import (
	"context"
	"encoding/json"
	"time"
)

// ReportType distinguishes the AI report variants.
type ReportType string

const (
	// ReportTrends is the platform-wide market-trend report (no owner).
	ReportTrends ReportType = "trends"
	// ReportFunding is the per-artisan funding report.
	ReportFunding ReportType = "funding"
	// ReportInsights is the per-artisan insight report.
	ReportInsights ReportType = "insights"
)

// Report is one generated AI report. Records are immutable once appended;
// the ledger is the audit trail of how funding/insight reports evolved over
// time for a given artisan.
type Report struct {
	ID          string          `json:"id"`
	Type        ReportType      `json:"type"`
	OwnerID     string          `json:"owner_id,omitempty"` // empty for platform-wide types
	Payload     json.RawMessage `json:"payload"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// ReportLedger is the append-only variant of the store used for AI
// reports. Append always creates a new record and never mutates prior
// ones. Latest selects the record with the maximum GeneratedAt among exact
// (type, ownerID) matches — an empty ownerID only matches records with an
// empty ownerID — and returns nil when none exists. The ledger itself
// never fetches; freshness is the caller's concern.
type ReportLedger interface {
	Append(ctx context.Context, typ ReportType, ownerID string, payload json.RawMessage) (Report, error)
	Latest(ctx context.Context, typ ReportType, ownerID string) (*Report, error)
}
