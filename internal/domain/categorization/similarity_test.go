package categorization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarity(t *testing.T) {
	t.Run("near duplicates score high", func(t *testing.T) {
		got := Similarity("STARBUCKS #4521", "STARBUCKS #4522")
		assert.Greater(t, got, 0.6)
	})

	t.Run("different strings score low", func(t *testing.T) {
		got := Similarity("STARBUCKS", "WALMART")
		assert.LessOrEqual(t, got, 0.6)
	})

	t.Run("identical strings", func(t *testing.T) {
		assert.Equal(t, 1.0, Similarity("SHELL OIL 57444", "SHELL OIL 57444"))
	})

	t.Run("empty strings", func(t *testing.T) {
		assert.Equal(t, 1.0, Similarity("", ""))
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.Equal(t, Similarity("uber trip", "uber trip help.uber.com"),
			Similarity("uber trip help.uber.com", "uber trip"))
	})
}

func TestFindSimilar(t *testing.T) {
	records := []Record{
		{Description: "STARBUCKS #4521", Merchant: "STARBUCKS", Category: Restaurants},
		{Description: "STARBUCKS #4522", Merchant: "STARBUCKS", Category: Restaurants},
		{Description: "WALMART SUPERCENTER", Merchant: "WALMART", Category: Groceries},
	}

	similar := FindSimilar("STARBUCKS #4523", "STARBUCKS", records)

	require.Len(t, similar, 2)
	for _, r := range similar {
		assert.Contains(t, r.Description, "STARBUCKS")
	}
}

func TestFindSimilar_NoMatches(t *testing.T) {
	records := []Record{
		{Description: "WALMART SUPERCENTER", Merchant: "WALMART", Category: Groceries},
	}
	assert.Empty(t, FindSimilar("GEICO PREMIUM PAYMENT", "GEICO", records))
}

func TestGroupSimilar(t *testing.T) {
	descriptions := []string{
		"STARBUCKS #4521",
		"STARBUCKS #4522",
		"SHELL OIL 57444",
		"SHELL OIL 57499",
		"GEICO PREMIUM",
	}

	groups := GroupSimilar(descriptions)

	require.Len(t, groups, 3)
	assert.Len(t, groups["STARBUCKS #4521"], 2)
	assert.Len(t, groups["SHELL OIL 57444"], 2)
	assert.Len(t, groups["GEICO PREMIUM"], 1)
}
