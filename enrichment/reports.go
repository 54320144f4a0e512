package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/goliatone/go-enrichment-cache/cache"
)

// Generator produces a fresh report payload for a (type, ownerID) pair.
// It is the injected LLM capability; the service holds no credentials.
type Generator func(ctx context.Context, typ ReportType, ownerID string) (json.RawMessage, error)

// ReportService applies the report kind's freshness rule to the ledger:
// serve the latest record while it is younger than the TTL, otherwise
// generate a fresh payload and append it. Prior records are never touched.
type ReportService struct {
	ledger   ReportLedger
	generate Generator
	policy   cache.Policy
	clock    cache.Clock
}

// NewReportService wires a ledger to its generator with the report kind's
// default 24h policy.
func NewReportService(ledger ReportLedger, generate Generator) *ReportService {
	return NewReportServiceWithClock(ledger, generate, ReportKind().Policy(), time.Now)
}

// NewReportServiceWithClock creates a service with an explicit policy and
// clock, for callers that tune TTLs or need deterministic time in tests.
func NewReportServiceWithClock(ledger ReportLedger, generate Generator, policy cache.Policy, clock cache.Clock) *ReportService {
	if clock == nil {
		clock = time.Now
	}
	return &ReportService{
		ledger:   ledger,
		generate: generate,
		policy:   policy,
		clock:    clock,
	}
}

// Latest returns the current report for (typ, ownerID), generating and
// appending a new one when the latest record is absent, stale (half-open
// window on GeneratedAt), or a refresh is forced. A generator failure
// surfaces as cache.ErrUpstreamUnavailable and leaves the ledger unchanged.
// Use an empty ownerID for platform-wide types such as trends.
func (s *ReportService) Latest(ctx context.Context, typ ReportType, ownerID string, forceRefresh bool) (Report, error) {
	if !forceRefresh {
		latest, err := s.ledger.Latest(ctx, typ, ownerID)
		if err != nil {
			return Report{}, err
		}
		if latest != nil && s.policy.IsFresh(latest.GeneratedAt, s.clock()) {
			return *latest, nil
		}
	}

	payload, err := s.generate(ctx, typ, ownerID)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %w", cache.ErrUpstreamUnavailable, err)
	}
	return s.ledger.Append(ctx, typ, ownerID, payload)
}

// HistoryLedger is satisfied by ledgers that expose their full trail,
// such as the bunstore implementation.
type HistoryLedger interface {
	ReportLedger
	History(ctx context.Context, typ ReportType, ownerID string) ([]Report, error)
}

// History returns every appended report for (typ, ownerID), newest first,
// when the underlying ledger keeps an accessible trail.
func (s *ReportService) History(ctx context.Context, typ ReportType, ownerID string) ([]Report, error) {
	hl, ok := s.ledger.(HistoryLedger)
	if !ok {
		return nil, fmt.Errorf("enrichment: ledger %T does not expose history", s.ledger)
	}
	return hl.History(ctx, typ, ownerID)
}
