// internal/domain/catalog/filter.go
package catalog

import (
	"sort"
	"strings"
)

// Apply returns the products satisfying every active predicate of fs,
// preserving input order. Filtering is a logical AND across active
// dimensions; a product missing an optional attribute fails any active
// filter on that attribute instead of passing through.
func Apply(products []Product, fs FilterState) []Product {
	result := make([]Product, 0, len(products))
	for _, p := range products {
		if matches(&p, fs) {
			result = append(result, p)
		}
	}
	return result
}

// SortByPrice orders products by price. The sort is stable, so products
// with equal prices keep their original relative order.
func SortByPrice(products []Product, order SortOrder) []Product {
	if order == SortNone {
		return products
	}

	sorted := make([]Product, len(products))
	copy(sorted, products)

	sort.SliceStable(sorted, func(i, j int) bool {
		if order == SortPriceDesc {
			return sorted[i].Price > sorted[j].Price
		}
		return sorted[i].Price < sorted[j].Price
	})

	return sorted
}

// FacetKey names a filterable dimension for facet derivation
type FacetKey string

const (
	FacetBrand    FacetKey = "brand"
	FacetCategory FacetKey = "category"
	FacetDiameter FacetKey = "diameter"
	FacetSeason   FacetKey = "season"
	FacetThread   FacetKey = "thread"
	FacetShape    FacetKey = "shape"
	FacetColor    FacetKey = "color"
)

// DistinctValues derives the selectable filter options for a dimension by
// scanning all products. Values are returned sorted; products without the
// attribute contribute nothing.
func DistinctValues(products []Product, key FacetKey) []string {
	seen := map[string]bool{}

	for i := range products {
		p := &products[i]
		switch key {
		case FacetBrand:
			if p.Brand != "" {
				seen[p.Brand] = true
			}
		case FacetCategory:
			for _, tag := range p.Tags {
				if tag != "" {
					seen[tag] = true
				}
			}
			if p.Fastener != nil && p.Fastener.Category != "" {
				seen[p.Fastener.Category] = true
			}
		case FacetDiameter:
			if p.Tire != nil && p.Tire.Diameter != "" {
				seen[p.Tire.Diameter] = true
			}
		case FacetSeason:
			if p.Tire != nil && p.Tire.Season != "" {
				seen[p.Tire.Season] = true
			}
		case FacetThread:
			if p.Fastener != nil && p.Fastener.Thread != "" {
				seen[p.Fastener.Thread] = true
			}
		case FacetShape:
			if p.Fastener != nil && p.Fastener.Shape != "" {
				seen[p.Fastener.Shape] = true
			}
		case FacetColor:
			if p.Fastener != nil && p.Fastener.Color != "" {
				seen[p.Fastener.Color] = true
			}
		}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)

	return values
}

// InStockOnly pre-filters to products that can actually be bought.
// Some slices (dokatki) derive their facets from this subset only.
func InStockOnly(products []Product) []Product {
	result := make([]Product, 0, len(products))
	for _, p := range products {
		if p.InStock() {
			result = append(result, p)
		}
	}
	return result
}

func matches(p *Product, fs FilterState) bool {
	if fs.Brand != "" && !strings.EqualFold(p.Brand, fs.Brand) {
		return false
	}

	if fs.Category != "" && !hasCategory(p, fs.Category) {
		return false
	}

	if fs.MinPrice > 0 && p.Price < fs.MinPrice {
		return false
	}
	if fs.MaxPrice > 0 && p.Price > fs.MaxPrice {
		return false
	}

	if fs.InStockOnly && !p.InStock() {
		return false
	}

	// Tire dimensions
	if fs.Width > 0 && (p.Tire == nil || p.Tire.Width != fs.Width) {
		return false
	}
	if fs.Profile > 0 && (p.Tire == nil || p.Tire.Profile != fs.Profile) {
		return false
	}
	if fs.Diameter != "" && !matchesDiameter(p, fs.Diameter) {
		return false
	}
	if fs.Season != "" && (p.Tire == nil || !strings.EqualFold(p.Tire.Season, fs.Season)) {
		return false
	}
	if fs.Spiked != nil && (p.Tire == nil || p.Tire.Spiked != *fs.Spiked) {
		return false
	}
	if fs.RunFlat != nil && (p.Tire == nil || p.Tire.RunFlat != *fs.RunFlat) {
		return false
	}

	// Fastener dimensions
	if fs.Thread != "" && (p.Fastener == nil || !strings.EqualFold(p.Fastener.Thread, fs.Thread)) {
		return false
	}
	if fs.Shape != "" && (p.Fastener == nil || !strings.EqualFold(p.Fastener.Shape, fs.Shape)) {
		return false
	}
	if fs.Color != "" && (p.Fastener == nil || p.Fastener.Color == "" || !strings.EqualFold(p.Fastener.Color, fs.Color)) {
		return false
	}

	return true
}

func hasCategory(p *Product, category string) bool {
	for _, tag := range p.Tags {
		if strings.EqualFold(tag, category) {
			return true
		}
	}
	if p.Fastener != nil && strings.EqualFold(p.Fastener.Category, category) {
		return true
	}
	return false
}

func matchesDiameter(p *Product, diameter string) bool {
	if p.Tire != nil {
		return strings.EqualFold(p.Tire.Diameter, diameter)
	}
	// Dokatki carry the diameter in their tags
	for _, tag := range p.Tags {
		if strings.EqualFold(tag, diameter) {
			return true
		}
	}
	return false
}
