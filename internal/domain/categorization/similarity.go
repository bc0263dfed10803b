package categorization

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SimilarityThreshold is the cutoff for treating two transactions as
// near-duplicates for batch recategorization suggestions.
const SimilarityThreshold = 0.60

// Record is a stored transaction's text and label, the unit the similarity
// matcher works over.
type Record struct {
	Description string
	Merchant    string
	Category    Category
}

// Similarity returns the normalized edit-distance similarity of two strings:
// 1 - levenshtein(longer, shorter) / len(longer). Exact character edits only;
// no phonetic or token-level matching.
func Similarity(a, b string) float64 {
	longer, shorter := a, b
	if len(b) > len(a) {
		longer, shorter = b, a
	}
	if len(longer) == 0 {
		return 1.0
	}
	distance := fuzzy.LevenshteinDistance(longer, shorter)
	return float64(len(longer)-distance) / float64(len(longer))
}

// FindSimilar returns the records whose combined lowercased text is more than
// SimilarityThreshold similar to the target description+merchant.
func FindSimilar(description, merchant string, records []Record) []Record {
	target := combinedText(description, merchant)

	var similar []Record
	for _, r := range records {
		if Similarity(target, combinedText(r.Description, r.Merchant)) > SimilarityThreshold {
			similar = append(similar, r)
		}
	}
	return similar
}

// GroupSimilar clusters descriptions into groups of near-duplicates. The
// first unassigned description becomes the canonical form for its group.
// Useful for consolidating variations like "STARBUCKS #4521" / "STARBUCKS #4522".
func GroupSimilar(descriptions []string) map[string][]string {
	groups := make(map[string][]string)
	assigned := make(map[int]bool)

	for i, desc := range descriptions {
		if assigned[i] {
			continue
		}
		group := []string{desc}
		assigned[i] = true

		for j := i + 1; j < len(descriptions); j++ {
			if assigned[j] {
				continue
			}
			if Similarity(strings.ToLower(desc), strings.ToLower(descriptions[j])) > SimilarityThreshold {
				group = append(group, descriptions[j])
				assigned[j] = true
			}
		}
		groups[desc] = group
	}
	return groups
}

func combinedText(description, merchant string) string {
	return strings.ToLower(description + " " + merchant)
}
