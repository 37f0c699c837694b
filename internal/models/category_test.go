package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryRegistry(t *testing.T) {
	r := NewCategoryRegistry([]string{"Music", "Music", " "})
	assert.Equal(t, []string{"Music"}, r.Custom())
	assert.True(t, r.Contains("Routine"))
	assert.True(t, r.Contains("Music"))

	assert.ErrorIs(t, r.Add("Study"), ErrDuplicateCategory)
	assert.ErrorIs(t, r.Add("Music"), ErrDuplicateCategory)
	assert.ErrorIs(t, r.Add("   "), ErrEmptyCategory)
	assert.NoError(t, r.Add("Cooking"))
	assert.Equal(t, append(append([]string{}, DefaultCategories...), "Music", "Cooking"), r.All())

	assert.ErrorIs(t, r.Remove("Routine"), ErrUnknownCategory, "defaults cannot be removed")
	assert.NoError(t, r.Remove("Music"))
	assert.False(t, r.Contains("Music"))
}
