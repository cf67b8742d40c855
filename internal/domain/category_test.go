package domain_test

import (
	"testing"

	"dhanrekha/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCategories_FixedSet(t *testing.T) {
	cats := domain.Categories()
	assert.Len(t, cats, 13)
	// Every declared category validates against itself
	for _, c := range cats {
		assert.True(t, c.Valid(), "category %q must be valid", c)
	}
}

func TestCategory_Valid(t *testing.T) {
	tests := []struct {
		name     string
		category domain.Category
		want     bool
	}{
		{name: "known category", category: domain.CategoryFood, want: true},
		{name: "multi-word category", category: domain.CategoryElectricBill, want: true},
		{name: "unknown label", category: domain.Category("Gambling"), want: false},
		{name: "wrong case", category: domain.Category("food"), want: false},
		{name: "empty", category: domain.Category(""), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.Valid())
		})
	}
}
