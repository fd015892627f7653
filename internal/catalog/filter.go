package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceBracket is one of the three price filters offered by the catalog
type PriceBracket string

const (
	BracketUnder15 PriceBracket = "under-15"
	Bracket15To30  PriceBracket = "15-30"
	BracketAbove30 PriceBracket = "above-30"
)

var (
	fifteen = decimal.NewFromInt(15)
	thirty  = decimal.NewFromInt(30)
)

// Brackets lists the recognized price brackets in ascending price order
func Brackets() []PriceBracket {
	return []PriceBracket{BracketUnder15, Bracket15To30, BracketAbove30}
}

// Valid reports whether b is a recognized bracket token
func (b PriceBracket) Valid() bool {
	switch b {
	case BracketUnder15, Bracket15To30, BracketAbove30:
		return true
	}
	return false
}

// Range returns the price range of the bracket. Unrecognized tokens
// (including the empty token) have no range.
func (b PriceBracket) Range() (PriceRange, bool) {
	switch b {
	case BracketUnder15:
		return PriceRange{Max: &fifteen}, true
	case Bracket15To30:
		return PriceRange{Min: &fifteen, MinInclusive: true, Max: &thirty, MaxInclusive: true}, true
	case BracketAbove30:
		return PriceRange{Min: &thirty}, true
	}
	return PriceRange{}, false
}

// FilterSelection is the set of catalog filters chosen by a shopper.
// Zero-valued fields impose no constraint.
type FilterSelection struct {
	Category     string
	SellerID     *uuid.UUID
	PriceBracket PriceBracket
}

// PriceRange bounds a price on either or both sides
type PriceRange struct {
	Min          *decimal.Decimal
	MinInclusive bool
	Max          *decimal.Decimal
	MaxInclusive bool
}

// Contains reports whether price lies inside the range
func (r PriceRange) Contains(price decimal.Decimal) bool {
	if r.Min != nil {
		if r.MinInclusive && price.LessThan(*r.Min) {
			return false
		}
		if !r.MinInclusive && price.LessThanOrEqual(*r.Min) {
			return false
		}
	}
	if r.Max != nil {
		if r.MaxInclusive && price.GreaterThan(*r.Max) {
			return false
		}
		if !r.MaxInclusive && price.GreaterThanOrEqual(*r.Max) {
			return false
		}
	}
	return true
}

// Predicate is a conjunction of optional product constraints.
// A nil clause does not restrict the result.
type Predicate struct {
	SellerCategoryEquals *string
	SellerIDEquals       *uuid.UUID
	Price                *PriceRange
}

// Build turns a filter selection into a predicate
func Build(sel FilterSelection) Predicate {
	var pred Predicate

	if sel.Category != "" {
		category := sel.Category
		pred.SellerCategoryEquals = &category
	}

	if sel.SellerID != nil {
		sellerID := *sel.SellerID
		pred.SellerIDEquals = &sellerID
	}

	if r, ok := sel.PriceBracket.Range(); ok {
		pred.Price = &r
	}

	return pred
}

// Matches evaluates the predicate against a joined product row
func (p Predicate) Matches(row JoinedProductRow) bool {
	if p.SellerCategoryEquals != nil {
		if row.Seller.Profile == nil || row.Seller.Profile.Category != *p.SellerCategoryEquals {
			return false
		}
	}
	if p.SellerIDEquals != nil && row.SellerID != *p.SellerIDEquals {
		return false
	}
	if p.Price != nil && !p.Price.Contains(row.Price) {
		return false
	}
	return true
}
