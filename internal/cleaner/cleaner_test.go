package cleaner

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salespipe-dev/salespipe/internal/txfile"
)

func TestCleanFixture(t *testing.T) {
	data, err := os.ReadFile("../../testdata/sales_data.txt")
	require.NoError(t, err)

	var buf bytes.Buffer
	sum, err := Clean(string(data), &buf)
	require.NoError(t, err)

	assert.Equal(t, 7, sum.Total)
	assert.Equal(t, 3, sum.Invalid)
	assert.Equal(t, 4, sum.Valid())
	assert.Equal(t, sum.Total, sum.Valid()+sum.Invalid)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, txfile.Header, lines[0])
	for _, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, "T"))
	}
}

func TestCleanRules(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"bad transaction prefix", "X1|2024-01-01|P1|Mouse|1|100|C1|North"},
		{"bad customer prefix", "T1|2024-01-01|P1|Mouse|1|100|501|North"},
		{"negative quantity", "T1|2024-01-01|P1|Mouse|-1|100|C1|North"},
		{"unparseable quantity", "T1|2024-01-01|P1|Mouse|two|100|C1|North"},
		{"negative price", "T1|2024-01-01|P1|Mouse|1|-100|C1|North"},
		{"short row", "T1|2024-01-01|P1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			sum, err := Clean(txfile.Header+"\n"+tt.row+"\n", &buf)
			require.NoError(t, err)
			assert.Equal(t, 1, sum.Total)
			assert.Equal(t, 1, sum.Invalid)
			assert.Equal(t, txfile.Header+"\n", buf.String())
		})
	}
}

func TestCleanKeepsCommaPrice(t *testing.T) {
	// "1,200" passes validation and is preserved verbatim in the output.
	row := "T1|2024-01-01|P1|Mouse|1|1,200|C1|North"
	var buf bytes.Buffer
	sum, err := Clean(txfile.Header+"\n"+row+"\n", &buf)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Invalid)
	assert.Contains(t, buf.String(), row)
}

func TestCleanBlankLinesSkipped(t *testing.T) {
	raw := txfile.Header + "\n\nT1|2024-01-01|P1|Mouse|1|100|C1|North\n\n"
	var buf bytes.Buffer
	sum, err := Clean(raw, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Total)
	assert.Equal(t, 0, sum.Invalid)
}

func TestCleanMissingHeader(t *testing.T) {
	var buf bytes.Buffer
	_, err := Clean("", &buf)
	assert.Error(t, err)
}

func TestCleanFile(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "first_question.txt")

	sum, err := CleanFile("../../testdata/sales_data.txt", outPath)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Valid())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), txfile.Header))
}

func TestCleanFileMissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := CleanFile(filepath.Join(dir, "missing.txt"), filepath.Join(dir, "out.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
