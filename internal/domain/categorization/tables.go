package categorization

// vendorEntry maps a lowercase merchant-name fragment to a category.
// Entries are kept in insertion order: the categorizer scans linearly and the
// first structural match wins, so seeding order is part of the contract.
type vendorEntry struct {
	key      string
	category Category
}

// builtinVendors returns the seed vendor table. Keys are lowercase fragments
// matched by substring in either direction against the merchant token.
func builtinVendors() []vendorEntry {
	return []vendorEntry{
		// Groceries
		{"whole foods", Groceries},
		{"trader joes", Groceries},
		{"safeway", Groceries},
		{"kroger", Groceries},
		{"hyvee", Groceries},
		{"walmart", Groceries},
		{"target", Groceries},
		{"costco", Groceries},
		{"publix", Groceries},
		{"instacart", Groceries},

		// Gas/Fuel
		{"shell", GasFuel},
		{"chevron", GasFuel},
		{"exxon", GasFuel},
		{"mobil", GasFuel},
		{"speedway", GasFuel},
		{"texaco", GasFuel},
		{"bp", GasFuel},
		{"sunoco", GasFuel},
		{"76", GasFuel},
		{"sinclair", GasFuel},
		{"citgo", GasFuel},

		// Restaurants
		{"mcdonalds", Restaurants},
		{"subway", Restaurants},
		{"burger king", Restaurants},
		{"taco bell", Restaurants},
		{"chick-fil-a", Restaurants},
		{"chipotle", Restaurants},
		{"panera", Restaurants},
		{"olive garden", Restaurants},
		{"applebees", Restaurants},
		{"buffalo wild wings", Restaurants},
		{"pizza hut", Restaurants},
		{"dominos", Restaurants},
		{"papa john's", Restaurants},
		{"starbucks", Restaurants},
		{"dunkin", Restaurants},

		// Utilities
		{"electric", Utilities},
		{"water", Utilities},
		{"gas", Utilities},
		{"internet", Utilities},
		{"cable", Utilities},
		{"phone", Utilities},

		// Insurance
		{"geico", Insurance},
		{"state farm", Insurance},
		{"allstate", Insurance},
		{"progressive", Insurance},
		{"liberty mutual", Insurance},
		{"insurance", Insurance},

		// Subscriptions
		{"netflix", Subscriptions},
		{"spotify", Subscriptions},
		{"hulu", Subscriptions},
		{"disney", Subscriptions},
		{"adobe", Subscriptions},
		{"microsoft", Subscriptions},
		{"apple", Subscriptions},
		{"amazon prime", Subscriptions},
		{"gym", Subscriptions},
		{"membership", Subscriptions},

		// Entertainment
		{"movie", Entertainment},
		{"cinema", Entertainment},
		{"theatre", Entertainment},
		{"concert", Entertainment},
		{"game", Entertainment},
		{"steam", Entertainment},
		{"playstation", Entertainment},
		{"xbox", Entertainment},

		// Transportation
		{"uber", Transportation},
		{"lyft", Transportation},
		{"taxi", Transportation},
		{"parking", Transportation},
		{"metro", Transportation},
		{"transit", Transportation},
		{"airline", Transportation},
		{"delta", Transportation},
		{"united", Transportation},
		{"american", Transportation},

		// Healthcare
		{"hospital", Healthcare},
		{"clinic", Healthcare},
		{"pharmacy", Healthcare},
		{"cvs", Healthcare},
		{"walgreens", Healthcare},
		{"doctor", Healthcare},
		{"dentist", Healthcare},
		{"medical", Healthcare},

		// Shopping
		{"amazon", Shopping},
		{"ebay", Shopping},
		{"mall", Shopping},
		{"store", Shopping},
		{"shop", Shopping},
	}
}

// keywordGroup holds the fallback keyword phrases for one category.
// Groups are scanned in declaration order; the first category with any
// matching keyword wins.
type keywordGroup struct {
	category Category
	keywords []string
}

func builtinKeywords() []keywordGroup {
	return []keywordGroup{
		{Groceries, []string{"grocery", "supermarket", "produce", "market", "food", "fruit", "vegetable"}},
		{GasFuel, []string{"gas station", "fuel", "petrol", "pump", "diesel"}},
		{Restaurants, []string{"restaurant", "cafe", "diner", "food service", "fast food", "delivery"}},
		{Utilities, []string{"utility", "power", "electricity", "water", "gas service", "internet service", "cable service"}},
		{Insurance, []string{"insurance", "premium"}},
		{Shopping, []string{"retail", "merchandise", "clothing", "apparel", "shoes", "electronics"}},
		{Entertainment, []string{"movie", "entertainment", "game", "sports", "ticket", "recreation"}},
		{Transportation, []string{"transportation", "vehicle", "car", "transit", "parking", "taxi", "airline", "travel"}},
		{Healthcare, []string{"health", "medical", "healthcare", "prescription", "hospital", "clinic", "wellness"}},
		{Subscriptions, []string{"subscription", "monthly", "recurring", "membership", "premium"}},
		{Transfer, []string{"transfer", "deposit", "withdrawal"}},
		{Salary, []string{"payroll", "salary", "income", "wage", "payment"}},
		{Investment, []string{"investment", "brokerage", "stock", "mutual fund"}},
		{Other, nil},
	}
}
