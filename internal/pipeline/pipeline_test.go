package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salespipe-dev/salespipe/internal/config"
	"github.com/salespipe-dev/salespipe/internal/filter"
	"github.com/salespipe-dev/salespipe/internal/logging"
	"github.com/salespipe-dev/salespipe/internal/runlog"
)

const catalogJSON = `{
	"products": [
		{"id": 1, "title": "Wireless Mouse", "category": "peripherals", "brand": "Logi", "price": 11.99, "rating": 4.2},
		{"id": 42, "title": "Headphones", "category": "electronics", "brand": "Beats", "price": 99.5, "rating": 4.1}
	]
}`

func testCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(catalogJSON))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, baseURL string) (*config.Config, string) {
	t.Helper()
	root := t.TempDir()

	input, err := os.ReadFile("../../testdata/sales_data.txt")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "data", "sales_data.txt"), input, 0o644))

	cfg := config.Default()
	cfg.Input = filepath.Join(root, "data", "sales_data.txt")
	cfg.OutputDir = filepath.Join(root, "output")
	cfg.Catalog.BaseURL = baseURL
	return cfg, root
}

func TestRunEndToEnd(t *testing.T) {
	srv := testCatalogServer(t)
	cfg, root := testConfig(t, srv.URL)

	p := New(cfg, root, logging.NewWithWriter(os.Stderr))
	require.NoError(t, p.Run(context.Background(), filter.Options{}))

	// Cleaned artifact: header + the 4 surviving rows.
	cleaned, err := os.ReadFile(filepath.Join(cfg.OutputDir, CleanedFile))
	require.NoError(t, err)
	assert.Contains(t, string(cleaned), "T1001|")
	assert.NotContains(t, string(cleaned), "X1004")

	// Enriched artifact: PRD-1 and PRD-42 match the catalog.
	enriched, err := os.ReadFile(filepath.Join(cfg.OutputDir, EnrichedFile))
	require.NoError(t, err)
	assert.Contains(t, string(enriched), "|peripherals|Logi|4.2|true")
	assert.Contains(t, string(enriched), "|electronics|Beats|4.1|true")
	assert.Contains(t, string(enriched), "PRD-2|Mechanical Keyboard|5|450|C502|South||||false")

	// Report content.
	out, err := os.ReadFile(filepath.Join(cfg.OutputDir, ReportFile))
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "Records Processed: 4")
	// 2400 + 2250 + 1500 + 3000
	assert.Contains(t, text, "Total Revenue: ₹9,150.00")
	assert.Contains(t, text, "Date Range: 2024-01-01 to 2024-01-03")
	assert.Contains(t, text, "Total Products Enriched: 2")
	assert.Contains(t, text, "Success Rate: 50.00%")
	assert.Contains(t, text, "Products Not Enriched: PRD-2, PRD-3")

	// Run log captured every stage.
	entries, err := runlog.Read(root)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	stages := []string{entries[0].Stage, entries[1].Stage, entries[2].Stage, entries[3].Stage}
	assert.Equal(t, []string{"clean", "parse", "enrich", "report"}, stages)
	for _, e := range entries {
		assert.Equal(t, entries[0].RunID, e.RunID)
	}
}

func TestRunWithFilter(t *testing.T) {
	srv := testCatalogServer(t)
	cfg, root := testConfig(t, srv.URL)

	p := New(cfg, root, logging.NewWithWriter(os.Stderr))
	minAmount := decimal.NewFromInt(2000)
	opts := filter.Options{Region: "North", MinAmount: &minAmount}
	require.NoError(t, p.Run(context.Background(), opts))

	out, err := os.ReadFile(filepath.Join(cfg.OutputDir, ReportFile))
	require.NoError(t, err)
	// Only T1001 (North, 2400) survives the filter.
	assert.Contains(t, string(out), "Records Processed: 1")

	entries, err := runlog.Read(root)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	assert.Equal(t, "filter", entries[2].Stage)
	assert.Contains(t, entries[2].Details, "final=1")
}

func TestRunCatalogDown(t *testing.T) {
	// Unreachable catalog degrades to zero matches, never aborts.
	cfg, root := testConfig(t, "http://127.0.0.1:1")
	cfg.Catalog.TimeoutSeconds = 1

	p := New(cfg, root, logging.NewWithWriter(os.Stderr))
	require.NoError(t, p.Run(context.Background(), filter.Options{}))

	out, err := os.ReadFile(filepath.Join(cfg.OutputDir, ReportFile))
	require.NoError(t, err)
	assert.Contains(t, string(out), "Total Products Enriched: 0")
	assert.Contains(t, string(out), "Success Rate: 0.00%")
}

func TestRunMissingInput(t *testing.T) {
	srv := testCatalogServer(t)
	cfg, root := testConfig(t, srv.URL)
	cfg.Input = filepath.Join(root, "data", "missing.txt")

	p := New(cfg, root, logging.NewWithWriter(os.Stderr))
	err := p.Run(context.Background(), filter.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cleaning")
}

func TestRunAllRowsFilteredOut(t *testing.T) {
	srv := testCatalogServer(t)
	cfg, root := testConfig(t, srv.URL)

	p := New(cfg, root, logging.NewWithWriter(os.Stderr))
	err := p.Run(context.Background(), filter.Options{Region: "Central"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid transactions")
}
