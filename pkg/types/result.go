package types

// SearchResult is the assembled response for one search request.
//
// Results holds the fuzzy-filtered, relevance-ordered part records and
// TotalFound is their count after filtering, not the catalog's raw count.
// Recommendations come from the AI text generator (or the deterministic
// templates when it fails); PersonalizedRecommendations come from the
// per-user personalization engine.
type SearchResult struct {
	OriginalQuery               string   `json:"original_query"`
	EnhancedQuery               string   `json:"enhanced_query"`
	Results                     []Part   `json:"results"`
	Recommendations             []string `json:"recommendations"`
	PersonalizedRecommendations []string `json:"personalized_recommendations"`
	TotalFound                  int      `json:"total_found"`
	SearchContext               string   `json:"search_context,omitempty"`
}
