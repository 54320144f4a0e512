// Package enrichment is the call-site layer over the cache engine: one
// thin, fully configured service per data kind instead of four hand-rolled
// copies of the read-check-fetch-write sequence.
//
// The four kinds and their behavioral contract:
//
//	Kind             TTL   Key basis              Cascade                        Empty results
//	AI reports       24h   (type, ownerID)        no                             append-only ledger
//	Nearby events    6h    city[_state]           city 50km → state 200km →      cached like any other
//	                                              country 1000km
//	Gov. schemes     12h   state (default india)  no                             fresh-but-empty is refetched
//	Raw materials    24h   free-text query        no                             cached like any other
//
// The scheme kind's empty-result override is deliberate: schemes are
// assumed genuinely available for every state, so a persisted empty result
// is presumed to be a prior fetch failure rather than a true negative. The
// other kinds must not apply it.
//
// Each service receives its upstream fetcher as an injected closure built
// once at process start with its credentials; neither the services nor the
// engine hold API keys. Reports differ from the other kinds: every
// generation is appended to a ReportLedger (a historical audit trail), and
// "current" is derived at read time as the most recent record for a
// (type, ownerID) pair.
package enrichment
