package enrichment

// Event is one nearby-event search result. The engine treats the payload as
// opaque; these fields exist for call sites and persistence only.
type Event struct {
	Title   string `json:"title"`
	Venue   string `json:"venue,omitempty"`
	City    string `json:"city,omitempty"`
	Date    string `json:"date,omitempty"`
	URL     string `json:"url,omitempty"`
	Snippet string `json:"snippet,omitempty"`
	DistKM  int    `json:"dist_km,omitempty"`
}

// Scheme is one government-scheme search result.
type Scheme struct {
	Name        string `json:"name"`
	Agency      string `json:"agency,omitempty"`
	Description string `json:"description,omitempty"`
	Eligibility string `json:"eligibility,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Material is one raw-material search result.
type Material struct {
	Name       string `json:"name"`
	Supplier   string `json:"supplier,omitempty"`
	Location   string `json:"location,omitempty"`
	PriceRange string `json:"price_range,omitempty"`
	URL        string `json:"url,omitempty"`
}
