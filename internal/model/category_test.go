package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryAt(t *testing.T) {
	name, ok := CategoryAt(0)
	assert.True(t, ok)
	assert.Equal(t, "School life", name)

	name, ok = CategoryAt(7)
	assert.True(t, ok)
	assert.Equal(t, "Physical Environment", name)

	for _, idx := range []int{-1, 8, 100} {
		_, ok := CategoryAt(idx)
		assert.False(t, ok, "index %d", idx)
	}
}

func TestValidRating(t *testing.T) {
	assert.True(t, ValidRating(0))
	assert.True(t, ValidRating(10))
	assert.False(t, ValidRating(-1))
	assert.False(t, ValidRating(11))
}

func TestRatingsOrderedUsesCanonicalOrder(t *testing.T) {
	r := Ratings{
		"Romance":     6,
		"School life": 3,
		"Health":      5,
	}

	got := r.Ordered()

	assert.Equal(t, []CategoryRating{
		{Category: "School life", Rating: 3},
		{Category: "Health", Rating: 5},
		{Category: "Romance", Rating: 6},
	}, got)
}

func TestRatingsOrderedSkipsUnknownKeys(t *testing.T) {
	r := Ratings{"Not a category": 4}
	assert.Empty(t, r.Ordered())
	assert.False(t, IsCategory("Not a category"))
	assert.True(t, IsCategory("Finances"))
}
