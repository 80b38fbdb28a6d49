package catalog

import (
	"github.com/salespipe-dev/salespipe/internal/id"
	"github.com/salespipe-dev/salespipe/internal/model"
)

// Enrich joins transactions against the catalog mapping. Each returned
// transaction carries its match status; a product ID whose digits resolve
// to no catalog entry is treated exactly like one with no digits at all.
// The input slice is left untouched.
func Enrich(txns []model.Transaction, m Mapping) []model.Transaction {
	enriched := make([]model.Transaction, len(txns))
	for i, txn := range txns {
		enriched[i] = txn
		enriched[i].Enrichment = lookup(txn.ProductID, m)
	}
	return enriched
}

func lookup(productID string, m Mapping) model.Enrichment {
	key, ok := id.CatalogKey(productID)
	if !ok {
		return model.Enrichment{}
	}
	product, ok := m.Get(key)
	if !ok {
		return model.Enrichment{}
	}
	return model.Enrichment{
		Category: product.Category,
		Brand:    product.Brand,
		Rating:   product.Rating,
		Matched:  true,
	}
}
