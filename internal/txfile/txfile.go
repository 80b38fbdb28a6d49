// Package txfile reads and writes the pipe-delimited sales files shared by
// the pipeline stages.
package txfile

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salespipe-dev/salespipe/internal/model"
)

// Delimiter separates fields in all sales files.
const Delimiter = "|"

// Header is the 8-column header of sales_data.txt and the cleaned artifact.
const Header = "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region"

// EnrichedHeader is the 12-column header of enriched_sales_data.txt.
const EnrichedHeader = Header + "|API_Category|API_Brand|API_Rating|API_Match"

const (
	NumFields        = 8
	ColTransactionID = 0
	ColDate          = 1
	ColProductID     = 2
	ColProductName   = 3
	ColQuantity      = 4
	ColUnitPrice     = 5
	ColCustomerID    = 6
	ColRegion        = 7
)

// Rejection records a row that failed to parse, without failing the batch.
type Rejection struct {
	Line int // 1-based line number in the input
	Err  error
}

func (r Rejection) Error() string {
	return fmt.Sprintf("line %d: %v", r.Line, r.Err)
}

// CoerceInt parses an integer field, stripping thousands separators:
// "1,200" -> 1200. Unparseable values, including decimals like "12.50",
// coerce to zero.
func CoerceInt(s string) int {
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0
	}
	return n
}

// LegacyPrice converts a UnitPrice field to a decimal by way of CoerceInt,
// so fractional cents never survive. Kept as a single function until the
// truncation is fixed.
func LegacyPrice(s string) decimal.Decimal {
	return decimal.NewFromInt(int64(CoerceInt(s)))
}

// ReadTransactions parses cleaned pipe-delimited text into transactions.
// The first line must be a header; it supplies the field-name-to-column map.
// Rows that fail to parse are returned as rejections, not errors.
func ReadTransactions(raw string) ([]model.Transaction, []Rejection, error) {
	lines := strings.Split(raw, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, nil, fmt.Errorf("missing header line")
	}
	headings := strings.Split(strings.TrimSpace(lines[0]), Delimiter)

	var txns []model.Transaction
	var rejections []Rejection
	for i, line := range lines[1:] {
		row := strings.TrimSpace(line)
		if row == "" {
			continue
		}
		txn, err := parseRow(headings, strings.Split(row, Delimiter))
		if err != nil {
			rejections = append(rejections, Rejection{Line: i + 2, Err: err})
			continue
		}
		txns = append(txns, txn)
	}
	return txns, rejections, nil
}

func parseRow(headings, fields []string) (model.Transaction, error) {
	if len(fields) != len(headings) {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", len(headings), len(fields))
	}

	var txn model.Transaction
	for i, heading := range headings {
		field := fields[i]
		switch heading {
		case "TransactionID":
			txn.TransactionID = field
		case "Date":
			date, err := time.Parse(time.DateOnly, field)
			if err != nil {
				return model.Transaction{}, fmt.Errorf("parsing date %q: %w", field, err)
			}
			txn.Date = date
		case "ProductID":
			txn.ProductID = field
		case "ProductName":
			// The pipe format never escapes commas; spaces are close enough.
			txn.ProductName = strings.ReplaceAll(field, ",", " ")
		case "Quantity":
			qty, err := strconv.Atoi(field)
			if err != nil {
				return model.Transaction{}, fmt.Errorf("parsing quantity %q: %w", field, err)
			}
			txn.Quantity = qty
		case "UnitPrice":
			txn.UnitPrice = LegacyPrice(field)
		case "CustomerID":
			txn.CustomerID = field
		case "Region":
			txn.Region = field
		}
	}
	return txn, nil
}

// WriteEnriched writes the 12-column enriched artifact (header included).
func WriteEnriched(w io.Writer, txns []model.Transaction) error {
	if _, err := fmt.Fprintln(w, EnrichedHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, txn := range txns {
		if _, err := fmt.Fprintln(w, MarshalEnriched(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return nil
}

// MarshalEnriched renders one enriched transaction as a 12-column row.
func MarshalEnriched(txn model.Transaction) string {
	fields := make([]string, 12)
	fields[ColTransactionID] = txn.TransactionID
	fields[ColDate] = txn.Date.Format(time.DateOnly)
	fields[ColProductID] = txn.ProductID
	fields[ColProductName] = txn.ProductName
	fields[ColQuantity] = strconv.Itoa(txn.Quantity)
	fields[ColUnitPrice] = txn.UnitPrice.String()
	fields[ColCustomerID] = txn.CustomerID
	fields[ColRegion] = txn.Region
	if txn.Enrichment.Matched {
		fields[8] = txn.Enrichment.Category
		fields[9] = txn.Enrichment.Brand
		fields[10] = strconv.FormatFloat(txn.Enrichment.Rating, 'f', -1, 64)
	}
	fields[11] = strconv.FormatBool(txn.Enrichment.Matched)
	return strings.Join(fields, Delimiter)
}
