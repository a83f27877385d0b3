package detection

import (
	"strings"

	"github.com/SakethSumanBathini/scam-shield-api/internal/extraction"
)

// categoryWeights maps a term category to its contribution per matched
// term. Credential requests weigh heaviest; urgency and reward language
// alone weigh least.
var categoryWeights = map[string]float64{
	"urgency":            0.15,
	"threat":             0.25,
	"credential_request": 0.30,
	"money_request":      0.25,
	"reward":             0.15,
	"impersonation":      0.20,
	"kyc":                0.20,
	"tech_scam":          0.20,
	"investment_scam":    0.25,
}

const defaultCategoryWeight = 0.1

// KeywordScore sums the weight of every suspicious term found in text
// and clamps the sum to 1.0. It also returns the matched terms in
// category table order and the per-category hit lists.
func KeywordScore(text string) (float64, []string, map[string][]string) {
	lower := strings.ToLower(text)
	score := 0.0
	var found []string
	hits := make(map[string][]string)

	for _, cat := range extraction.TermCategories {
		weight, ok := categoryWeights[cat.Key]
		if !ok {
			weight = defaultCategoryWeight
		}
		for _, term := range cat.Terms {
			if strings.Contains(lower, strings.ToLower(term)) {
				score += weight
				found = append(found, term)
				hits[cat.Key] = append(hits[cat.Key], term)
			}
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score, found, hits
}
