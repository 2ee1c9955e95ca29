// internal/domain/catalog/filterstate.go
package catalog

import (
	"net/url"
	"strconv"
)

// SortOrder selects result ordering
type SortOrder string

const (
	SortNone      SortOrder = ""
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

// FilterState holds the active filter predicates for a catalog listing.
// Zero values mean "unconstrained" for that dimension. The canonical wire
// form is a query string: one parameter per active dimension, absent
// parameter per inactive one.
type FilterState struct {
	Brand       string
	Category    string
	Width       int
	Profile     int
	Diameter    string
	Season      string
	Spiked      *bool
	RunFlat     *bool
	Thread      string
	Shape       string
	Color       string
	MinPrice    int64
	MaxPrice    int64
	InStockOnly bool
	Sort        SortOrder
}

// ParseQuery decodes a FilterState from request query parameters
func ParseQuery(values url.Values) FilterState {
	fs := FilterState{
		Brand:    values.Get("brand"),
		Category: values.Get("category"),
		Diameter: values.Get("diameter"),
		Season:   values.Get("season"),
		Thread:   values.Get("thread"),
		Shape:    values.Get("shape"),
		Color:    values.Get("color"),
	}

	if v := values.Get("width"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			fs.Width = n
		}
	}
	if v := values.Get("profile"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			fs.Profile = n
		}
	}
	if v := values.Get("min_price"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			fs.MinPrice = n
		}
	}
	if v := values.Get("max_price"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			fs.MaxPrice = n
		}
	}
	if v := values.Get("spiked"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			fs.Spiked = &b
		}
	}
	if v := values.Get("runflat"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			fs.RunFlat = &b
		}
	}
	if v := values.Get("in_stock"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			fs.InStockOnly = b
		}
	}

	switch SortOrder(values.Get("sort")) {
	case SortPriceAsc:
		fs.Sort = SortPriceAsc
	case SortPriceDesc:
		fs.Sort = SortPriceDesc
	}

	return fs
}

// Query encodes the state back to query parameters. Inactive dimensions
// produce no parameter, so clearing a filter drops its key.
func (fs FilterState) Query() url.Values {
	values := url.Values{}

	setIf := func(key, v string) {
		if v != "" {
			values.Set(key, v)
		}
	}

	setIf("brand", fs.Brand)
	setIf("category", fs.Category)
	setIf("diameter", fs.Diameter)
	setIf("season", fs.Season)
	setIf("thread", fs.Thread)
	setIf("shape", fs.Shape)
	setIf("color", fs.Color)

	if fs.Width > 0 {
		values.Set("width", strconv.Itoa(fs.Width))
	}
	if fs.Profile > 0 {
		values.Set("profile", strconv.Itoa(fs.Profile))
	}
	if fs.MinPrice > 0 {
		values.Set("min_price", strconv.FormatInt(fs.MinPrice, 10))
	}
	if fs.MaxPrice > 0 {
		values.Set("max_price", strconv.FormatInt(fs.MaxPrice, 10))
	}
	if fs.Spiked != nil {
		values.Set("spiked", strconv.FormatBool(*fs.Spiked))
	}
	if fs.RunFlat != nil {
		values.Set("runflat", strconv.FormatBool(*fs.RunFlat))
	}
	if fs.InStockOnly {
		values.Set("in_stock", "true")
	}
	if fs.Sort != SortNone {
		values.Set("sort", string(fs.Sort))
	}

	return values
}

// ForKind strips dimensions that are not meaningful for the target catalog
// slice, so switching the top-level category does not carry stale filters.
// The spiked filter survives only inside the winter-tire listing.
func (fs FilterState) ForKind(kind Kind) FilterState {
	if kind != KindTire {
		fs.Width = 0
		fs.Profile = 0
		fs.Season = ""
		fs.Spiked = nil
		fs.RunFlat = nil
	}
	if kind != KindTire && kind != KindDokatka {
		fs.Diameter = ""
	}
	if kind != KindFastener {
		fs.Thread = ""
		fs.Shape = ""
		fs.Color = ""
	}
	if kind == KindTire && fs.Season != "winter" {
		fs.Spiked = nil
	}
	return fs
}
