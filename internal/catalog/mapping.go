package catalog

import "github.com/salespipe-dev/salespipe/internal/model"

// Mapping provides read-only lookup of catalog products by numeric ID.
// It is built once per pipeline run.
type Mapping struct {
	byID map[int]model.CatalogProduct
}

// NewMapping builds a Mapping from fetched products. Later duplicates win,
// matching the order the catalog returned them.
func NewMapping(products []model.CatalogProduct) Mapping {
	byID := make(map[int]model.CatalogProduct, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return Mapping{byID: byID}
}

// Get returns the product with the given ID.
func (m Mapping) Get(id int) (model.CatalogProduct, bool) {
	p, ok := m.byID[id]
	return p, ok
}

// Len returns the number of products in the mapping.
func (m Mapping) Len() int { return len(m.byID) }
