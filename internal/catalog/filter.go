// Package catalog derives the displayed subset of an entity list from
// a free-text search term and a selected category. It is pure: the
// source list is never mutated and relative order is preserved.
package catalog

import (
	"strings"

	"github.com/kalaicenter/kalaiweb/internal/domain"
)

// CategoryAll selects every category.
const CategoryAll = "all"

// Query is the ephemeral filter state of a catalog view.
type Query struct {
	Search   string
	Category string
}

// Apply filters items against q. Category selection is an exact,
// case-sensitive match; the search term is a case-insensitive
// substring match on name or description. An empty description never
// matches the search term.
func Apply[E any](items []E, q Query, fields func(E) (name, description, category string)) []E {
	filtered := items

	if q.Category != "" && q.Category != CategoryAll {
		kept := make([]E, 0, len(filtered))
		for _, item := range filtered {
			_, _, category := fields(item)
			if category == q.Category {
				kept = append(kept, item)
			}
		}
		filtered = kept
	}

	if q.Search != "" {
		term := strings.ToLower(q.Search)
		kept := make([]E, 0, len(filtered))
		for _, item := range filtered {
			name, description, _ := fields(item)
			if strings.Contains(strings.ToLower(name), term) {
				kept = append(kept, item)
				continue
			}
			if description != "" && strings.Contains(strings.ToLower(description), term) {
				kept = append(kept, item)
			}
		}
		filtered = kept
	}

	return filtered
}

// FilterProducts applies q to a product list.
func FilterProducts(products []domain.Product, q Query) []domain.Product {
	return Apply(products, q, func(p domain.Product) (string, string, string) {
		return p.Name, p.Description, p.Category
	})
}

// FilterTreatments applies q to a treatment list.
func FilterTreatments(treatments []domain.Treatment, q Query) []domain.Treatment {
	return Apply(treatments, q, func(t domain.Treatment) (string, string, string) {
		return t.Name, t.Description, t.Category
	})
}
