// Package analytics computes the report views over a transaction set.
// Every function is pure: inputs are never mutated, so running a view
// twice yields identical results.
package analytics

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salespipe-dev/salespipe/internal/model"
)

// DefaultTopN is the product ranking size when none is given.
const DefaultTopN = 5

// DefaultLowQuantityThreshold marks products as low-performing below it.
const DefaultLowQuantityThreshold = 10

// ErrNoTransactions is returned by PeakSalesDay on empty input.
var ErrNoTransactions = errors.New("no transactions")

var hundred = decimal.NewFromInt(100)

// TotalRevenue sums Quantity x UnitPrice over all transactions.
func TotalRevenue(txns []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range txns {
		total = total.Add(txn.Amount())
	}
	return total
}

// RegionSales is one region's share of the total.
type RegionSales struct {
	Region           model.Region
	TransactionCount int
	TotalSales       decimal.Decimal
	Percentage       decimal.Decimal // of total revenue, rounded to 2 places
}

// RegionBreakdown covers the four fixed regions, ordered by descending
// total sales. Rows with an empty or unrecognized region are not silently
// lost; they are counted in Skipped.
type RegionBreakdown struct {
	Regions []RegionSales
	Skipped int
}

// RegionWise aggregates sales per region. Percentages are computed against
// the total revenue of all transactions, including skipped rows, and are
// zero when the total is zero.
func RegionWise(txns []model.Transaction) RegionBreakdown {
	out := make([]RegionSales, len(model.Regions))
	index := make(map[model.Region]int, len(model.Regions))
	for i, r := range model.Regions {
		out[i] = RegionSales{Region: r, TotalSales: decimal.Zero, Percentage: decimal.Zero}
		index[r] = i
	}

	var skipped int
	for _, txn := range txns {
		region, ok := model.ParseRegion(txn.Region)
		if !ok {
			skipped++
			continue
		}
		i := index[region]
		out[i].TransactionCount++
		out[i].TotalSales = out[i].TotalSales.Add(txn.Amount())
	}

	total := TotalRevenue(txns)
	if total.Sign() > 0 {
		for i := range out {
			out[i].Percentage = out[i].TotalSales.Mul(hundred).Div(total).Round(2)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalSales.GreaterThan(out[j].TotalSales)
	})
	return RegionBreakdown{Regions: out, Skipped: skipped}
}

// ProductSales accumulates quantity and revenue for one product.
type ProductSales struct {
	Name     string
	Quantity int
	Revenue  decimal.Decimal
}

// TopProducts returns the n products with the highest total quantity sold.
// Entries with a blank name are ignored; ties keep first-encounter order.
func TopProducts(txns []model.Transaction, n int) []ProductSales {
	if n <= 0 {
		n = DefaultTopN
	}

	index := make(map[string]int)
	var out []ProductSales
	for _, txn := range txns {
		name := strings.TrimSpace(txn.ProductName)
		if name == "" {
			continue
		}
		i, seen := index[name]
		if !seen {
			i = len(out)
			index[name] = i
			out = append(out, ProductSales{Name: name, Revenue: decimal.Zero})
		}
		out[i].Quantity += txn.Quantity
		out[i].Revenue = out[i].Revenue.Add(txn.Amount())
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Quantity > out[j].Quantity
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// CustomerSummary accumulates one customer's activity.
type CustomerSummary struct {
	CustomerID    string
	TotalSpent    decimal.Decimal
	PurchaseCount int
	AvgOrderValue decimal.Decimal // rounded to 2 places
	Products      []string        // distinct product names, first-seen order
}

// Customers aggregates per-customer spend, ordered by descending total
// spent. Blank customer IDs are ignored.
func Customers(txns []model.Transaction) []CustomerSummary {
	index := make(map[string]int)
	products := make(map[string]map[string]bool)
	var out []CustomerSummary

	for _, txn := range txns {
		custID := strings.TrimSpace(txn.CustomerID)
		if custID == "" {
			continue
		}
		i, seen := index[custID]
		if !seen {
			i = len(out)
			index[custID] = i
			products[custID] = make(map[string]bool)
			out = append(out, CustomerSummary{CustomerID: custID, TotalSpent: decimal.Zero})
		}
		out[i].TotalSpent = out[i].TotalSpent.Add(txn.Amount())
		out[i].PurchaseCount++

		if name := strings.TrimSpace(txn.ProductName); name != "" && !products[custID][name] {
			products[custID][name] = true
			out[i].Products = append(out[i].Products, name)
		}
	}

	for i := range out {
		if out[i].PurchaseCount > 0 {
			count := decimal.NewFromInt(int64(out[i].PurchaseCount))
			out[i].AvgOrderValue = out[i].TotalSpent.Div(count).Round(2)
		} else {
			out[i].AvgOrderValue = decimal.Zero
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalSpent.GreaterThan(out[j].TotalSpent)
	})
	return out
}

// DailySales is one day's activity.
type DailySales struct {
	Date             string
	Revenue          decimal.Decimal
	TransactionCount int
	UniqueCustomers  int
}

// DailyTrend aggregates revenue per day, ordered by ascending date.
func DailyTrend(txns []model.Transaction) []DailySales {
	index := make(map[string]int)
	customers := make(map[string]map[string]bool)
	var out []DailySales

	for _, txn := range txns {
		if txn.Date.IsZero() {
			continue
		}
		date := txn.Date.Format(time.DateOnly)
		i, seen := index[date]
		if !seen {
			i = len(out)
			index[date] = i
			customers[date] = make(map[string]bool)
			out = append(out, DailySales{Date: date, Revenue: decimal.Zero})
		}
		out[i].Revenue = out[i].Revenue.Add(txn.Amount())
		out[i].TransactionCount++

		if custID := strings.TrimSpace(txn.CustomerID); custID != "" {
			customers[date][custID] = true
		}
	}

	for i := range out {
		out[i].UniqueCustomers = len(customers[out[i].Date])
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Peak is the single best sales day.
type Peak struct {
	Date             string
	Revenue          decimal.Decimal
	TransactionCount int
}

// PeakSalesDay returns the date with the highest summed revenue.
// Ties resolve to the earliest date. Empty input is an error.
func PeakSalesDay(txns []model.Transaction) (Peak, error) {
	if len(txns) == 0 {
		return Peak{}, ErrNoTransactions
	}

	days := DailyTrend(txns)
	if len(days) == 0 {
		return Peak{}, ErrNoTransactions
	}

	best := days[0]
	for _, day := range days[1:] {
		if day.Revenue.GreaterThan(best.Revenue) {
			best = day
		}
	}
	return Peak{Date: best.Date, Revenue: best.Revenue, TransactionCount: best.TransactionCount}, nil
}

// LowPerformers returns products whose total quantity is strictly below
// threshold, ordered by ascending quantity. Unlike TopProducts, product
// names are taken verbatim.
func LowPerformers(txns []model.Transaction, threshold int) []ProductSales {
	if threshold <= 0 {
		threshold = DefaultLowQuantityThreshold
	}

	index := make(map[string]int)
	var all []ProductSales
	for _, txn := range txns {
		i, seen := index[txn.ProductName]
		if !seen {
			i = len(all)
			index[txn.ProductName] = i
			all = append(all, ProductSales{Name: txn.ProductName, Revenue: decimal.Zero})
		}
		all[i].Quantity += txn.Quantity
		all[i].Revenue = all[i].Revenue.Add(txn.Amount())
	}

	var low []ProductSales
	for _, p := range all {
		if p.Quantity < threshold {
			low = append(low, p)
		}
	}
	sort.SliceStable(low, func(i, j int) bool { return low[i].Quantity < low[j].Quantity })
	return low
}
