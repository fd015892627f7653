package catalog

import (
	"bytes"
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memoryStore is an in-memory Store used to exercise the catalog service
type memoryStore struct {
	rows     []JoinedProductRow
	countErr error
	findErr  error
	calls    int
}

func (m *memoryStore) Count(ctx context.Context, pred Predicate) (int, error) {
	m.calls++
	if m.countErr != nil {
		return 0, m.countErr
	}
	total := 0
	for _, row := range m.rows {
		if pred.Matches(row) {
			total++
		}
	}
	return total, nil
}

func (m *memoryStore) Find(ctx context.Context, pred Predicate, limit, offset int) ([]JoinedProductRow, error) {
	m.calls++
	if m.findErr != nil {
		return nil, m.findErr
	}

	matched := []JoinedProductRow{}
	for _, row := range m.rows {
		if pred.Matches(row) {
			matched = append(matched, row)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Name != matched[j].Name {
			return matched[i].Name < matched[j].Name
		}
		return bytes.Compare(matched[i].ID[:], matched[j].ID[:]) < 0
	})

	if offset >= len(matched) {
		return []JoinedProductRow{}, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

type staticCategories struct {
	categories []string
	err        error
}

func (s staticCategories) List(ctx context.Context) ([]string, error) {
	return s.categories, s.err
}

func strPtr(s string) *string {
	return &s
}

// newRow builds a joined row for a seller with a profile in the given category
func newRow(name string, price string, sellerID uuid.UUID, sellerCategory string) JoinedProductRow {
	return JoinedProductRow{
		ID:          uuid.New(),
		SellerID:    sellerID,
		Name:        name,
		Description: strPtr("Handmade " + name),
		Price:       decimal.RequireFromString(price),
		Image:       strPtr("/images/" + name + ".png"),
		Category:    strPtr(sellerCategory),
		Seller: SellerRow{
			FirstName: strPtr("Ana"),
			LastName:  strPtr("Gomez"),
			Profile:   &ProfileRow{Category: sellerCategory},
		},
	}
}
