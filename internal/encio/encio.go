package encio

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// fallbacks is the decode preference order applied after UTF-8.
// Latin-1 accepts every byte value, so in practice the chain ends there;
// Windows-1252 stays listed to keep the documented order intact.
var fallbacks = []struct {
	name string
	enc  encoding.Encoding
}{
	{"latin-1", charmap.ISO8859_1},
	{"windows-1252", charmap.Windows1252},
}

// ReadFile reads path and decodes it with the first encoding that accepts
// the content: UTF-8, then latin-1, then windows-1252.
func ReadFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Decode(raw)
}

// Decode converts raw bytes to a string via the fallback chain.
func Decode(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	for _, fb := range fallbacks {
		decoded, err := fb.enc.NewDecoder().Bytes(raw)
		if err != nil {
			continue
		}
		return string(decoded), nil
	}
	return "", fmt.Errorf("decoding input: all fallback encodings exhausted")
}
