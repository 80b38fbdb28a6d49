// Package cleaner implements the structural cleaning pass over the raw
// sales log.
package cleaner

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/salespipe-dev/salespipe/internal/encio"
	"github.com/salespipe-dev/salespipe/internal/id"
	"github.com/salespipe-dev/salespipe/internal/txfile"
)

// Summary reports cleaning counters.
type Summary struct {
	Total   int // non-blank data rows seen
	Invalid int // rows dropped
}

// Valid returns the number of rows that survived cleaning.
func (s Summary) Valid() int { return s.Total - s.Invalid }

// Clean validates raw pipe-delimited text and writes the header plus all
// surviving rows to w. Malformed rows are counted and dropped; nothing
// short of a write failure aborts the pass.
func Clean(raw string, w io.Writer) (Summary, error) {
	lines := strings.Split(raw, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return Summary{}, fmt.Errorf("missing header line")
	}

	if _, err := fmt.Fprintln(w, strings.TrimSpace(lines[0])); err != nil {
		return Summary{}, fmt.Errorf("writing header: %w", err)
	}

	var sum Summary
	for _, line := range lines[1:] {
		row := strings.TrimSpace(line)
		if row == "" {
			continue
		}
		sum.Total++

		if !validRow(strings.Split(row, txfile.Delimiter)) {
			sum.Invalid++
			continue
		}
		if _, err := fmt.Fprintln(w, row); err != nil {
			return sum, fmt.Errorf("writing row: %w", err)
		}
	}
	return sum, nil
}

// validRow applies the structural rules: a "C"-prefixed customer ID, a
// parseable non-negative quantity, a non-negative unit price, and a
// "T"-prefixed transaction ID.
func validRow(fields []string) bool {
	if len(fields) != txfile.NumFields {
		return false
	}
	if !id.ValidCustomerID(fields[txfile.ColCustomerID]) {
		return false
	}
	qty, err := strconv.Atoi(fields[txfile.ColQuantity])
	if err != nil || qty < 0 {
		return false
	}
	if txfile.CoerceInt(fields[txfile.ColUnitPrice]) < 0 {
		return false
	}
	return id.ValidTransactionID(fields[txfile.ColTransactionID])
}

// CleanFile reads inputPath with the encoding fallback chain, cleans it,
// and writes the cleaned dataset to outputPath.
func CleanFile(inputPath, outputPath string) (Summary, error) {
	raw, err := encio.ReadFile(inputPath)
	if err != nil {
		return Summary{}, fmt.Errorf("reading %s: %w", inputPath, err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return Summary{}, fmt.Errorf("creating %s: %w", outputPath, err)
	}
	defer out.Close()

	sum, err := Clean(raw, out)
	if err != nil {
		return sum, err
	}
	return sum, out.Close()
}
