// Package report renders the fixed-layout sales analytics report.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salespipe-dev/salespipe/internal/analytics"
	"github.com/salespipe-dev/salespipe/internal/model"
)

const (
	ruleWidth    = 60
	productWidth = 35 // display width of a customer's product list
)

// Data carries everything the renderer needs. The aggregation views are
// computed upstream; the renderer only formats.
type Data struct {
	GeneratedAt  time.Time
	Transactions []model.Transaction
	Enriched     []model.Transaction
	Regions      analytics.RegionBreakdown
	TopProducts  []analytics.ProductSales
	Customers    []analytics.CustomerSummary
	Daily        []analytics.DailySales
	Peak         analytics.Peak
	Low          []analytics.ProductSales
	Currency     string
	TopCustomers int
}

// Render writes the report to w.
func Render(w io.Writer, d Data) error {
	if len(d.Transactions) == 0 {
		return fmt.Errorf("rendering report: no transactions")
	}

	var b strings.Builder
	writeHeader(&b, d)
	writeSummary(&b, d)
	writeRegions(&b, d)
	writeTopProducts(&b, d)
	writeTopCustomers(&b, d)
	writeDailyTrend(&b, d)
	writePeakBlock(&b, d)
	writeEnrichmentSummary(&b, d)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func rule(b *strings.Builder, ch string) {
	b.WriteString(strings.Repeat(ch, ruleWidth) + "\n")
}

func writeHeader(b *strings.Builder, d Data) {
	rule(b, "=")
	b.WriteString("SALES ANALYTICS REPORT\n")
	fmt.Fprintf(b, "Generated: %s\n", d.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(b, "Records Processed: %d\n", len(d.Transactions))
	rule(b, "=")
	b.WriteString("\n")
}

func writeSummary(b *strings.Builder, d Data) {
	total := analytics.TotalRevenue(d.Transactions)
	count := len(d.Transactions)
	avg := decimal.Zero
	if count > 0 {
		avg = total.Div(decimal.NewFromInt(int64(count)))
	}

	minDate, maxDate := dateRange(d.Transactions)

	b.WriteString("OVERALL SUMMARY\n")
	rule(b, "-")
	fmt.Fprintf(b, "Total Revenue: %s\n", currency(d.Currency, total))
	fmt.Fprintf(b, "Total Transactions: %d\n", count)
	fmt.Fprintf(b, "Average Order Value: %s\n", currency(d.Currency, avg))
	fmt.Fprintf(b, "Date Range: %s to %s\n\n", minDate, maxDate)
}

func writeRegions(b *strings.Builder, d Data) {
	b.WriteString("REGION-WISE PERFORMANCE\n")
	rule(b, "-")
	fmt.Fprintf(b, "%-10s%15s%14s%8s\n", "Region", "Sales", "% of Total", "Txns")
	for _, r := range d.Regions.Regions {
		fmt.Fprintf(b, "%-10s%15s%11s%%%8d\n",
			r.Region,
			currency(d.Currency, r.TotalSales),
			r.Percentage.StringFixed(2),
			r.TransactionCount,
		)
	}
	b.WriteString("\n")
}

func writeTopProducts(b *strings.Builder, d Data) {
	b.WriteString("TOP 5 PRODUCTS\n")
	rule(b, "-")
	fmt.Fprintf(b, "%-6s%-20s%-12s%s\n", "Rank", "Product", "Qty Sold", "Revenue")
	for i, p := range d.TopProducts {
		fmt.Fprintf(b, "%-6d%-20s%-12d%s\n", i+1, p.Name, p.Quantity, currency(d.Currency, p.Revenue))
	}
	b.WriteString("\n")
}

func writeTopCustomers(b *strings.Builder, d Data) {
	limit := d.TopCustomers
	if limit <= 0 {
		limit = 5
	}
	customers := d.Customers
	if len(customers) > limit {
		customers = customers[:limit]
	}

	b.WriteString("TOP 5 CUSTOMERS\n")
	rule(b, "-")
	fmt.Fprintf(b, "%-12s%-35s%15s%10s%15s\n",
		"CustomerID", "Products Bought", "Total Spent", "Orders", "Avg Order")
	for _, c := range customers {
		fmt.Fprintf(b, "%-12s%-35s%15s%8d%18s\n",
			c.CustomerID,
			truncate(strings.Join(c.Products, ", "), productWidth),
			currency(d.Currency, c.TotalSpent),
			c.PurchaseCount,
			currency(d.Currency, c.AvgOrderValue),
		)
	}
	b.WriteString("\n")
}

func writeDailyTrend(b *strings.Builder, d Data) {
	b.WriteString("DAILY SALES TREND\n")
	rule(b, "-")
	fmt.Fprintf(b, "%-12s%15s%10s%13s\n", "Date", "Revenue", "Txns", "Customers")
	for _, day := range d.Daily {
		fmt.Fprintf(b, "%-12s%15s%8d%10d\n",
			day.Date, currency(d.Currency, day.Revenue), day.TransactionCount, day.UniqueCustomers)
	}
	b.WriteString("\n")
}

func writePeakBlock(b *strings.Builder, d Data) {
	b.WriteString("PEAK SALES DAYS \n")
	rule(b, "-")
	fmt.Fprintf(b, "Best Selling Day: %s\n", d.Peak.Date)

	names := make([]string, len(d.Low))
	for i, p := range d.Low {
		names[i] = p.Name
	}
	fmt.Fprintf(b, "Low Performing Products: %s\n", joinOrNone(names))

	for _, r := range d.Regions.Regions {
		fmt.Fprintf(b, "Average Transaction Value (%s):%s\n",
			r.Region, currency(d.Currency, legacyAvgTransactionValue(r.TotalSales, r.TransactionCount)))
	}
	b.WriteString("\n")
}

func writeEnrichmentSummary(b *strings.Builder, d Data) {
	var matched int
	var missIDs []string
	seen := make(map[string]bool)
	for _, txn := range d.Enriched {
		if txn.Enrichment.Matched {
			matched++
			continue
		}
		if !seen[txn.ProductID] {
			seen[txn.ProductID] = true
			missIDs = append(missIDs, txn.ProductID)
		}
	}
	sort.Strings(missIDs)

	rate := decimal.Zero
	if len(d.Enriched) > 0 {
		rate = decimal.NewFromInt(int64(matched)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(len(d.Enriched))))
	}

	b.WriteString("API ENRICHMENT SUMMARY\n")
	rule(b, "-")
	fmt.Fprintf(b, "Total Products Enriched: %d\n", matched)
	fmt.Fprintf(b, "Success Rate: %s%%\n", rate.StringFixed(2))
	fmt.Fprintf(b, "Products Not Enriched: %s\n", joinOrNone(missIDs))
}

// legacyAvgTransactionValue divides the per-region average by 100, keeping
// the legacy report's formula intact. Drop the divisor to correct it.
func legacyAvgTransactionValue(totalSales decimal.Decimal, count int) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	return totalSales.
		Div(decimal.NewFromInt(int64(count))).
		Div(decimal.NewFromInt(100))
}

func dateRange(txns []model.Transaction) (minDate, maxDate string) {
	first, last := txns[0].Date, txns[0].Date
	for _, txn := range txns[1:] {
		if txn.Date.Before(first) {
			first = txn.Date
		}
		if txn.Date.After(last) {
			last = txn.Date
		}
	}
	return first.Format(time.DateOnly), last.Format(time.DateOnly)
}

// currency renders symbol + thousands-grouped value with 2 decimal places.
func currency(symbol string, v decimal.Decimal) string {
	s := v.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")
	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	sign := ""
	if neg {
		sign = "-"
	}
	return symbol + sign + strings.Join(groups, ",") + "." + fracPart
}

// truncate shortens text to width runes, ending with an ellipsis.
func truncate(text string, width int) string {
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	return string(runes[:width-3]) + "..."
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
