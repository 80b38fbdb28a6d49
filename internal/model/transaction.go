package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one cleaned row of the sales log.
type Transaction struct {
	TransactionID string // "T"-prefixed
	Date          time.Time
	ProductID     string
	ProductName   string
	Quantity      int
	UnitPrice     decimal.Decimal
	CustomerID    string // "C"-prefixed
	Region        string // raw region text; see ParseRegion

	Enrichment Enrichment
}

// Enrichment holds catalog metadata attached after the enrichment join.
// The metadata fields stay zero unless Matched is true.
type Enrichment struct {
	Category string
	Brand    string
	Rating   float64
	Matched  bool
}

// Amount returns Quantity x UnitPrice.
func (t Transaction) Amount() decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(int64(t.Quantity)))
}
