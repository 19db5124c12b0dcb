package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/apper-canvas/stylehub-port-matrix/pkg/errors"
)

// SortKey selects the comparator applied after filtering.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
)

// PriceRange bounds the effective price. A nil bound imposes no constraint
// on that side.
type PriceRange struct {
	Min *decimal.Decimal `json:"min,omitempty"`
	Max *decimal.Decimal `json:"max,omitempty"`
}

// FilterState holds the user-selected narrowing criteria. Empty sets mean
// "no restriction".
type FilterState struct {
	PriceRange PriceRange `json:"priceRange"`
	Categories []string   `json:"categories"`
	Brands     []string   `json:"brands"`
	Sizes      []string   `json:"sizes"`
	Colors     []string   `json:"colors"`
}

// Validate rejects inverted price bounds.
func (f FilterState) Validate() error {
	if f.PriceRange.Min != nil && f.PriceRange.Max != nil &&
		f.PriceRange.Min.GreaterThan(*f.PriceRange.Max) {
		return pkgerrors.New(pkgerrors.CodeValidation, "price range min cannot exceed max")
	}
	return nil
}

// Query combines the route-scoped category, the free-text search and the
// filter state with a sort key.
type Query struct {
	Category string
	Search   string
	Filters  FilterState
	Sort     SortKey
}

// ApplyFilters narrows and orders a product collection. All predicates are
// independent conjunctions, so filter order never changes the result set.
// Sorting is stable; an empty or unknown sort key preserves filter order.
func ApplyFilters(products []Product, q Query) []Product {
	out := make([]Product, 0, len(products))
	search := strings.ToLower(strings.TrimSpace(q.Search))
	categories := toSet(q.Filters.Categories)
	brands := toSet(q.Filters.Brands)
	sizes := toSet(q.Filters.Sizes)
	// Color selections are carried in the filter state but products hold no
	// color data yet, so they impose no restriction.
	// TODO: filter on colors once products carry color attributes.

	for _, p := range products {
		if q.Category != "" && !strings.EqualFold(p.Category, q.Category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Brand), search) {
			continue
		}
		if !inPriceRange(p.EffectivePrice(), q.Filters.PriceRange) {
			continue
		}
		if len(categories) > 0 {
			if _, ok := categories[p.Category]; !ok {
				continue
			}
		}
		if len(brands) > 0 {
			if _, ok := brands[p.Brand]; !ok {
				continue
			}
		}
		if len(sizes) > 0 && !intersects(p.Sizes, sizes) {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, q.Sort)
	return out
}

func inPriceRange(price decimal.Decimal, pr PriceRange) bool {
	if pr.Min != nil && price.LessThan(*pr.Min) {
		return false
	}
	if pr.Max != nil && price.GreaterThan(*pr.Max) {
		return false
	}
	return true
}

func sortProducts(products []Product, key SortKey) {
	switch key {
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePrice().LessThan(products[j].EffectivePrice())
		})
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePrice().GreaterThan(products[j].EffectivePrice())
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case SortNewest:
		// Higher identities were allocated later.
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].ID > products[j].ID
		})
	}
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		set[v] = struct{}{}
	}
	return set
}

func intersects(values []string, set map[string]struct{}) bool {
	for _, v := range values {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}
