// Package categorization assigns spending categories to normalized bank
// transactions. It combines an insertion-ordered vendor table, a keyword
// fallback table, an Aho-Corasick prefilter for bulk work, and a
// Levenshtein-based similarity matcher for grouping near-duplicates.
package categorization

// Category is a spending category label. The set is closed: every
// categorization resolves to one of the constants below, worst case Other.
type Category string

const (
	Groceries      Category = "Groceries"
	GasFuel        Category = "Gas/Fuel"
	Restaurants    Category = "Restaurants"
	Utilities      Category = "Utilities"
	Insurance      Category = "Insurance"
	Subscriptions  Category = "Subscriptions"
	Entertainment  Category = "Entertainment"
	Transportation Category = "Transportation"
	Healthcare     Category = "Healthcare"
	Shopping       Category = "Shopping"
	Transfer       Category = "Transfer"
	Salary         Category = "Salary"
	Investment     Category = "Investment"
	Other          Category = "Other"
)

// Categories returns all labels in declaration order.
func Categories() []Category {
	return []Category{
		Groceries, GasFuel, Restaurants, Utilities, Insurance, Subscriptions,
		Entertainment, Transportation, Healthcare, Shopping, Transfer, Salary,
		Investment, Other,
	}
}

// Valid reports whether c is a member of the closed label set.
func (c Category) Valid() bool {
	switch c {
	case Groceries, GasFuel, Restaurants, Utilities, Insurance, Subscriptions,
		Entertainment, Transportation, Healthcare, Shopping, Transfer, Salary,
		Investment, Other:
		return true
	}
	return false
}

func (c Category) String() string { return string(c) }

// ParseCategory returns the matching label, or Other and false when the
// input is not a member of the set.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	if c.Valid() {
		return c, true
	}
	return Other, false
}
