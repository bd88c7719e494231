package models

// SearchResult represents a single search hit with its relevance data.
type SearchResult struct {
	Recipe           *Recipe           `json:"recipe"`
	Score            float64           `json:"score"`
	MatchedFields    []string          `json:"matched_fields,omitempty"`
	Highlights       map[string]string `json:"highlights,omitempty"`
	RelevanceFactors []string          `json:"relevance_factors,omitempty"`
	Rank             int               `json:"rank"`
}

// SearchResponse is the response for a search request.
type SearchResponse struct {
	Query       string          `json:"query"`
	Results     []*SearchResult `json:"results"`
	Total       int             `json:"total"`
	QueryTime   int64           `json:"query_time_ms"`
	Suggestions []string        `json:"suggestions,omitempty"`
	// Filters are the constraints inferred from the query text. They are
	// surfaced for the caller to apply; the engine does not enforce them.
	Filters SearchFilters `json:"filters,omitempty"`
}
