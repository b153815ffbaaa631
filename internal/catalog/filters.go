package catalog

import (
	"github.com/shopspring/decimal"
)

// Update is a partial filter change. Nil fields leave the current value
// untouched; the Clear flags reset their optional field to unset.
type Update struct {
	SearchText    *string
	CategoryID    *int64
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	ClearCategory bool
	ClearPrice    bool
}

func (u Update) apply(f Filters) Filters {
	if u.SearchText != nil {
		f.SearchText = *u.SearchText
	}
	if u.ClearCategory {
		f.CategoryID = nil
	} else if u.CategoryID != nil {
		f.CategoryID = u.CategoryID
	}
	if u.ClearPrice {
		f.MinPrice = nil
		f.MaxPrice = nil
	} else {
		if u.MinPrice != nil {
			f.MinPrice = u.MinPrice
		}
		if u.MaxPrice != nil {
			f.MaxPrice = u.MaxPrice
		}
	}
	return f
}

func (f Filters) equal(other Filters) bool {
	return f.SearchText == other.SearchText &&
		int64PtrEqual(f.CategoryID, other.CategoryID) &&
		decimalPtrEqual(f.MinPrice, other.MinPrice) &&
		decimalPtrEqual(f.MaxPrice, other.MaxPrice)
}

func int64PtrEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func decimalPtrEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
