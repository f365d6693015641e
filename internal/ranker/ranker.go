package ranker

import (
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/partscout/partscout/pkg/types"
)

// DefaultThreshold is the minimum partial-ratio score a candidate must
// reach to survive ranking. Override per call rather than editing here.
const DefaultThreshold = 80

// ScoredPart pairs a part with its match score for callers that need
// the score itself, not just the order.
type ScoredPart struct {
	Part  types.Part
	Score int
}

// Ranker ranks part records against a query string.
type Ranker struct{}

// New creates a Ranker.
func New() *Ranker {
	return &Ranker{}
}

// Rank scores every candidate against query using partial-ratio matching
// over the candidate's searchable text, drops candidates scoring below
// threshold, and returns the survivors ordered by descending score.
// Equal scores preserve the original candidate order. An empty candidate
// list yields an empty result, never an error.
func (r *Ranker) Rank(candidates []types.Part, query string, threshold int) []types.Part {
	scored := r.Score(candidates, query, threshold)

	results := make([]types.Part, len(scored))
	for i, sp := range scored {
		results[i] = sp.Part
	}
	return results
}

// Score is Rank with the match scores retained.
func (r *Ranker) Score(candidates []types.Part, query string, threshold int) []ScoredPart {
	if len(candidates) == 0 {
		return nil
	}

	q := strings.ToLower(query)

	scored := make([]ScoredPart, 0, len(candidates))
	for _, part := range candidates {
		score := fuzzy.PartialRatio(q, strings.ToLower(SearchableText(part)))
		if score < threshold {
			continue
		}
		scored = append(scored, ScoredPart{Part: part, Score: score})
	}

	// Stable sort: no secondary key is defined, ties keep input order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

// SearchableText builds the string a part is matched against: part
// number, manufacturer, description and category, space joined. Original
// case is preserved; comparisons lowercase both sides.
func SearchableText(p types.Part) string {
	return p.PartNumber + " " + p.Manufacturer + " " + p.Description + " " + p.Category
}

// DescriptionSimilarity computes the full-ratio similarity between two
// part descriptions. Unlike partial-ratio ranking, it penalizes length
// mismatch, which is the right behavior when both sides are complete
// catalog descriptions.
func DescriptionSimilarity(a, b string) int {
	return fuzzy.Ratio(a, b)
}
