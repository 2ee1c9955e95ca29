// internal/domain/booking/pricing.go
package booking

import (
	"fmt"
	"sort"
	"strings"
)

// ErrUnpricedService indicates that a requested service has no price for the
// selected dimension. The whole computation fails instead of silently
// charging nothing for the line.
type ErrUnpricedService struct {
	ServiceKeys  []string
	DimensionKey string
}

func (e *ErrUnpricedService) Error() string {
	return fmt.Sprintf("no price for %s at dimension %q", strings.Join(e.ServiceKeys, ", "), e.DimensionKey)
}

// ComputeTotal prices a quantities map against a pricing table for one
// dimension key. Lines are produced in serviceKey order for every key with
// quantity > 0, so repeated calls with the same inputs yield identical
// results. A table miss for any requested key fails the computation.
func ComputeTotal(quantities map[string]int, table PricingTable, dimensionKey string) (*Breakdown, error) {
	keys := make([]string, 0, len(quantities))
	for key, qty := range quantities {
		if qty > 0 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	breakdown := &Breakdown{Lines: []LineItem{}}
	var unpriced []string

	for _, key := range keys {
		unitPrice, ok := lookupPrice(table, key, dimensionKey)
		if !ok {
			unpriced = append(unpriced, key)
			continue
		}

		qty := quantities[key]
		line := LineItem{
			ServiceKey: key,
			Quantity:   qty,
			UnitPrice:  unitPrice,
			LineTotal:  unitPrice * int64(qty),
		}
		breakdown.Lines = append(breakdown.Lines, line)
		breakdown.Total += line.LineTotal
	}

	if len(unpriced) > 0 {
		return nil, &ErrUnpricedService{ServiceKeys: unpriced, DimensionKey: dimensionKey}
	}

	return breakdown, nil
}

func lookupPrice(table PricingTable, serviceKey, dimensionKey string) (int64, bool) {
	byDimension, ok := table[serviceKey]
	if !ok {
		return 0, false
	}
	price, ok := byDimension[dimensionKey]
	return price, ok
}

// promoCodes maps known promo codes (lowercase) to discount percentages
var promoCodes = map[string]int{
	"жизнь": 15,
}

// ApplyPromoCode resolves a promo code case-insensitively against the fixed
// code set and returns the discount rate in percent with the discounted
// total. Unknown codes yield rate 0 and the unchanged total; that absence of
// a discount is the only failure signal.
func ApplyPromoCode(code string, baseTotal int64) (int, int64) {
	rate, ok := promoCodes[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return 0, baseTotal
	}

	return rate, baseTotal - baseTotal*int64(rate)/100
}

// Package is a bundle of services applied in one action
type Package struct {
	Name        string   `json:"name"`
	ServiceKeys []string `json:"service_keys"`
}

// MountingPackage bundles the full wheel change: every constituent key is
// incremented together so the breakdown and total stay consistent after a
// single click.
var MountingPackage = Package{
	Name: "full-mounting",
	ServiceKeys: []string{
		"wheel-removal",
		"tire-removal",
		"tire-install",
		"balancing",
		"wheel-install",
	},
}

// PackageByName resolves a bundle by its wire name
func PackageByName(name string) (Package, bool) {
	if name == MountingPackage.Name {
		return MountingPackage, true
	}
	return Package{}, false
}

// Apply increments every constituent service quantity by count and returns
// the updated map. The input map is not modified.
func (p Package) Apply(quantities map[string]int, count int) map[string]int {
	updated := make(map[string]int, len(quantities)+len(p.ServiceKeys))
	for key, qty := range quantities {
		updated[key] = qty
	}

	for _, key := range p.ServiceKeys {
		updated[key] += count
	}

	return updated
}
