// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"

	"github.com/baxtbl4b/app-goroshina-sub001/internal/config"
	"gorm.io/gorm"
)

// ErrLoad indicates the catalog source was unreachable or returned bad data.
// Callers render an empty-result state with a retry affordance instead of
// failing the page.
var ErrLoad = errors.New("catalog: load failed")

// ErrProductNotFound indicates an id that matches no product
var ErrProductNotFound = errors.New("product not found")

// Service handles catalog business logic. The catalog is read-only for the
// storefront: records are created by imports, never mutated by shoppers.
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ListRequest represents catalog list query parameters
type ListRequest struct {
	Kind   Kind
	Filter FilterState
}

// ListResponse represents a filtered catalog slice with its facets
type ListResponse struct {
	Products []Product           `json:"products"`
	Facets   map[string][]string `json:"facets"`
	Total    int                 `json:"total"`
}

// Load fetches the full product slice for a catalog kind in stable insertion
// order. A database failure is reported as ErrLoad.
func (s *Service) Load(kind Kind) ([]Product, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown catalog %q", ErrLoad, kind)
	}

	var products []Product
	err := s.db.Where("kind = ?", kind).Order("created_at ASC, id ASC").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	return products, nil
}

// List loads a catalog slice, applies the filter state and derives facets.
// Facets for the dokatka slice reflect only in-stock products, matching how
// that catalog is merchandised.
func (s *Service) List(req *ListRequest) (*ListResponse, error) {
	products, err := s.Load(req.Kind)
	if err != nil {
		return nil, err
	}

	facetSource := products
	if req.Kind == KindDokatka {
		facetSource = InStockOnly(products)
	}

	fs := req.Filter.ForKind(req.Kind)
	filtered := Apply(facetSource, fs)
	filtered = SortByPrice(filtered, fs.Sort)

	return &ListResponse{
		Products: filtered,
		Facets:   s.facets(req.Kind, facetSource),
		Total:    len(filtered),
	}, nil
}

// GetProduct retrieves a single product by its normalized id
func (s *Service) GetProduct(id string) (*Product, error) {
	var product Product
	result := s.db.Where("id = ?", id).First(&product)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}

	return &product, nil
}

// facets derives the selectable filter options relevant to a catalog slice
func (s *Service) facets(kind Kind, products []Product) map[string][]string {
	keys := []FacetKey{FacetBrand, FacetCategory}
	switch kind {
	case KindTire:
		keys = append(keys, FacetDiameter, FacetSeason)
	case KindDokatka:
		keys = append(keys, FacetDiameter)
	case KindFastener:
		keys = append(keys, FacetThread, FacetShape, FacetColor)
	}

	facets := make(map[string][]string, len(keys))
	for _, key := range keys {
		if values := DistinctValues(products, key); len(values) > 0 {
			facets[string(key)] = values
		}
	}

	return facets
}
