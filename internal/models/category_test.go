package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategories_UniqueKeys(t *testing.T) {
	seen := map[Category]bool{}
	for _, c := range Categories {
		assert.False(t, seen[c.Key], "duplicate category %s", c.Key)
		seen[c.Key] = true
		assert.NotEmpty(t, c.Label)
	}
	assert.Len(t, Categories, 12)
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("online_retail")
	assert.True(t, ok)
	assert.Equal(t, CategoryOnlineRetail, c)

	_, ok = ParseCategory("travel")
	assert.False(t, ok)
}

func TestCategory_Info(t *testing.T) {
	assert.Equal(t, "Dining & Restaurants", CategoryDining.Info().Label)
	assert.Equal(t, "mystery", Category("mystery").Info().Label)
}

func TestSortCategoryKeys(t *testing.T) {
	keys := []string{"zeta", "other", "groceries", "alpha", "dining"}
	SortCategoryKeys(keys)
	assert.Equal(t, []string{"groceries", "dining", "other", "alpha", "zeta"}, keys)
}
