package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductVariantLookup(t *testing.T) {
	product := Product{Variants: []ProductVariant{
		{ID: 71, Size: "M", Color: "blue", StockQuantity: 3},
		{ID: 72, Size: "L", Color: "blue", StockQuantity: 1},
	}}

	variant, ok := product.Variant("L", "blue")
	require.True(t, ok)
	assert.Equal(t, int64(72), variant.ID)

	_, ok = product.Variant("XL", "blue")
	assert.False(t, ok)
}

func TestPrimaryImageUrl(t *testing.T) {
	assert.Empty(t, Product{}.PrimaryImageUrl())

	product := Product{Images: []ProductImage{
		{ID: 1, Url: "https://cdn.example.com/front.jpg"},
		{ID: 2, Url: "https://cdn.example.com/back.jpg"},
	}}
	assert.Equal(t, "https://cdn.example.com/front.jpg", product.PrimaryImageUrl())
}

func TestCategoryWalkVisitsDepthFirst(t *testing.T) {
	root := Category{ID: 1, Name: "Clothing", SubCategories: []Category{
		{ID: 2, Name: "Outerwear", SubCategories: []Category{
			{ID: 4, Name: "Jackets"},
		}},
		{ID: 3, Name: "Accessories"},
	}}

	visited := []int64{}
	root.Walk(func(c Category) { visited = append(visited, c.ID) })

	assert.Equal(t, []int64{1, 2, 4, 3}, visited)
}

func TestDefaultAddress(t *testing.T) {
	tests := []struct {
		name       string
		addresses  []Address
		expectedId int64
		expectedOk bool
	}{
		{name: "no addresses", addresses: nil, expectedOk: false},
		{
			name: "explicit default wins",
			addresses: []Address{
				{ID: 11},
				{ID: 12, IsDefault: true},
			},
			expectedId: 12,
			expectedOk: true,
		},
		{
			name:       "falls back to first",
			addresses:  []Address{{ID: 11}, {ID: 12}},
			expectedId: 11,
			expectedOk: true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			address, ok := UserProfile{Addresses: test.addresses}.DefaultAddress()
			assert.Equal(t, test.expectedOk, ok)
			assert.Equal(t, test.expectedId, address.ID)
		})
	}
}
