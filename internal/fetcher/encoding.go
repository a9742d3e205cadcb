package fetcher

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// DecodeText converts response bytes to a string without ever failing.
// Valid UTF-8 passes through untouched. Invalid input goes through a
// replacing UTF-8 decoder; if that decoder itself errors, Latin-1 maps
// every remaining byte. Each step degrades, none raises.
func DecodeText(body []byte) string {
	if utf8.Valid(body) {
		return string(body)
	}

	decoded, err := unicode.UTF8.NewDecoder().Bytes(body)
	if err == nil {
		return string(decoded)
	}

	return decodeLatin1(body)
}

// decodeLatin1 decodes bytes as ISO 8859-1. Every byte has a mapping, so
// this is the terminal fallback.
func decodeLatin1(body []byte) string {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(body)
	if err != nil {
		// Cannot happen for Latin-1, but keep the degradation total.
		return string(body)
	}
	return string(decoded)
}
