package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Input = "data/q4.txt"
	cfg.Catalog.Limit = 50

	path := filepath.Join(t.TempDir(), "salespipe.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "data/q4.txt", got.Input)
	assert.Equal(t, cfg.OutputDir, got.OutputDir)
	assert.Equal(t, cfg.Catalog.BaseURL, got.Catalog.BaseURL)
	assert.Equal(t, 50, got.Catalog.Limit)
	assert.Equal(t, cfg.Catalog.TimeoutSeconds, got.Catalog.TimeoutSeconds)
	assert.Equal(t, cfg.Report.TopProducts, got.Report.TopProducts)
	assert.Equal(t, cfg.Report.Currency, got.Report.Currency)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "data/sales_data.txt", cfg.Input)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "https://dummyjson.com", cfg.Catalog.BaseURL)
	assert.Equal(t, 100, cfg.Catalog.Limit)
	assert.Equal(t, 5, cfg.Catalog.TimeoutSeconds)
	assert.Equal(t, 5, cfg.Report.TopProducts)
	assert.Equal(t, 5, cfg.Report.TopCustomers)
	assert.Equal(t, 6, cfg.Report.LowQuantityThreshold)
	assert.Equal(t, "₹", cfg.Report.Currency)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salespipe.yaml")
	err := Save(path, Default())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "input: data/sales_data.txt")
	assert.Contains(t, contents, "base_url: https://dummyjson.com")
	assert.Contains(t, contents, "low_quantity_threshold: 6")
}
