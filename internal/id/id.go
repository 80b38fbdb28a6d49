package id

import (
	"strconv"
	"strings"
)

// ValidTransactionID reports whether s is a well-formed transaction ID
// ("T"-prefixed, non-empty).
func ValidTransactionID(s string) bool {
	return strings.HasPrefix(s, "T")
}

// ValidCustomerID reports whether s is a well-formed customer ID
// ("C"-prefixed, non-empty).
func ValidCustomerID(s string) bool {
	return strings.HasPrefix(s, "C")
}

// CatalogKey extracts the numeric catalog ID from a product ID by
// concatenating every digit character and parsing the result.
// "PRD-42" -> 42, but also "12-34" -> 1234; separators are not respected.
// Returns false when the product ID contains no digits.
func CatalogKey(productID string) (int, bool) {
	var b strings.Builder
	for _, r := range productID {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, false
	}
	return n, true
}
