package usecase

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldForSearch normaliza un texto para búsqueda: minúsculas y sin
// diacríticos, de modo que "Fábrica" calce con "fabrica".
func foldForSearch(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// matchesSearch indica si query (ya plegada o no) aparece en alguno de los
// campos dados, ignorando mayúsculas y diacríticos.
func matchesSearch(query string, fields ...string) bool {
	q := foldForSearch(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(foldForSearch(f), q) {
			return true
		}
	}
	return false
}
