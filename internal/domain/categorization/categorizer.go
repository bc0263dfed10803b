package categorization

import (
	"math"
	"strings"
	"sync"
)

// Categorizer resolves a category label for a transaction description and
// merchant token. The vendor table is instance state rather than a package
// global so that override scope stays an explicit wiring decision; an RWMutex
// guards it because hosts may call AddVendorOverride while imports run.
type Categorizer struct {
	mu       sync.RWMutex
	vendors  []vendorEntry
	index    map[string]int // lowercase vendor key -> position in vendors
	keywords []keywordGroup
	engine   *engine
}

// Input is one description/merchant pair for batch categorization.
type Input struct {
	Description string
	Merchant    string
}

// Result pairs the assigned label with its advisory confidence score.
type Result struct {
	Category   Category
	Confidence int
}

// NewCategorizer seeds a categorizer with the built-in vendor and keyword
// tables. Overrides added later live only for the lifetime of the instance.
func NewCategorizer() *Categorizer {
	c := &Categorizer{
		vendors:  builtinVendors(),
		keywords: builtinKeywords(),
		index:    make(map[string]int),
	}
	for i, v := range c.vendors {
		c.index[v.key] = i
	}
	c.engine = newEngine(c.vendors, c.keywords)
	return c
}

// AddVendorOverride inserts or replaces the mapping for the lowercased vendor
// fragment. A replaced entry keeps its original table position; a new entry is
// appended, so built-in entries always scan first.
func (c *Categorizer) AddVendorOverride(vendor string, category Category) {
	key := strings.ToLower(strings.TrimSpace(vendor))
	if key == "" || !category.Valid() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i, ok := c.index[key]; ok {
		c.vendors[i].category = category
	} else {
		c.index[key] = len(c.vendors)
		c.vendors = append(c.vendors, vendorEntry{key: key, category: category})
	}
	c.engine = newEngine(c.vendors, c.keywords)
}

// VendorCount returns the number of vendor table entries, built-in plus
// overrides.
func (c *Categorizer) VendorCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vendors)
}

// Categorize returns exactly one label from the closed set. Resolution order:
// vendor table against the merchant token, vendor table against the combined
// description+merchant text, keyword table, then Other. It never fails.
func (c *Categorizer) Categorize(description, merchant string) Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.categorizeLocked(description, merchant)
}

func (c *Categorizer) categorizeLocked(description, merchant string) Category {
	searchText := strings.ToLower(description + " " + merchant)

	// Vendor table on the merchant token. Substring matching runs both ways so
	// truncated tokens ("whole") and padded ones ("whole foods market #123")
	// both land on the same entry. First structural match wins.
	if merchant != "" {
		merchantLower := strings.ToLower(merchant)
		for _, v := range c.vendors {
			if strings.Contains(merchantLower, v.key) || strings.Contains(v.key, merchantLower) {
				return v.category
			}
		}
	}

	// Vendor table on the combined text.
	for _, v := range c.vendors {
		if strings.Contains(searchText, v.key) {
			return v.category
		}
	}

	// Keyword fallback, categories in declaration order.
	for _, group := range c.keywords {
		for _, kw := range group.keywords {
			if strings.Contains(searchText, kw) {
				return group.category
			}
		}
	}

	return Other
}

// Confidence scores how strongly the tables support the given category for
// this description/merchant pair: +2 per vendor entry of that category
// matching the merchant, +1 per keyword of that category found in the
// combined text, scaled as min(100, round(matchCount/3*100)).
//
// The scan is deliberately independent of Categorize: the score is an
// advisory signal count, not a probability, and querying it for a label other
// than the assigned one understates it by design.
func (c *Categorizer) Confidence(description, merchant string, category Category) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.confidenceLocked(description, merchant, category)
}

func (c *Categorizer) confidenceLocked(description, merchant string, category Category) int {
	searchText := strings.ToLower(description + " " + merchant)
	matchCount := 0

	if merchant != "" {
		merchantLower := strings.ToLower(merchant)
		for _, v := range c.vendors {
			if v.category != category {
				continue
			}
			if strings.Contains(merchantLower, v.key) || strings.Contains(v.key, merchantLower) {
				matchCount += 2
			}
		}
	}

	for _, group := range c.keywords {
		if group.category != category {
			continue
		}
		for _, kw := range group.keywords {
			if strings.Contains(searchText, kw) {
				matchCount++
			}
		}
	}

	score := int(math.Round(float64(matchCount) / 3 * 100))
	if score > 100 {
		score = 100
	}
	return score
}

// CategorizeBatch resolves labels and confidence for many rows under a single
// read lock. Rows without a merchant token go through the Aho-Corasick
// prefilter first: when no table pattern occurs in the combined text at all,
// the linear scans cannot match and the row resolves to Other with zero
// confidence immediately. Rows with a merchant always take the full path,
// because a token shorter than a vendor key can still match it.
func (c *Categorizer) CategorizeBatch(inputs []Input) []Result {
	c.mu.RLock()
	defer c.mu.RUnlock()

	results := make([]Result, len(inputs))
	for i, in := range inputs {
		if in.Merchant == "" && !c.engine.hasMatch(in.Description) {
			results[i] = Result{Category: Other, Confidence: 0}
			continue
		}
		cat := c.categorizeLocked(in.Description, in.Merchant)
		results[i] = Result{
			Category:   cat,
			Confidence: c.confidenceLocked(in.Description, in.Merchant, cat),
		}
	}
	return results
}
