package model

import "github.com/shopspring/decimal"

// CatalogProduct is one product record from the remote catalog service.
type CatalogProduct struct {
	ID       int
	Title    string
	Category string
	Brand    string
	Price    decimal.Decimal
	Rating   float64
}
