package gen

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LowerFirst lower-cases the first rune of s and leaves the rest untouched,
// so "HTTPClient" becomes "hTTPClient".
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsLower(r) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// UpperName upper-cases the whole class name, e.g. "OrderItem" -> "ORDERITEM".
func UpperName(s string) string {
	return cases.Upper(language.Und).String(s)
}

// TableName converts a class name to its underscored upper-case table
// constant, e.g. "OrderItem" -> "ORDER_ITEM" and "HTTPClient" -> "HTTP_CLIENT".
func TableName(s string) string {
	return UpperName(Snake(s))
}

// Snake converts a class name to snake_case. Runs of capitals are kept
// together as one word, so "HTTPCode" becomes "http_code". Spaces and
// dashes separate words.
func Snake(s string) string {
	rs := []rune(strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, s))
	var (
		b strings.Builder
		j int // index of the last inserted word break
	)
	for i, r := range rs {
		// Break before an upper-case letter that ends a lower-case run
		// ("UserInfo"), or that starts a word after an acronym ("XMLParser").
		if i > 0 && i < len(rs)-1 && unicode.IsUpper(r) {
			prev, next := rs[i-1], rs[i+1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) ||
				j != i-1 && unicode.IsLower(next) && unicode.IsLetter(prev) {
				j = i
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return strings.Trim(b.String(), "_")
}

// Plural returns the English plural of a class name, e.g. "Category" -> "Categories".
func Plural(s string) string {
	return inflect.Pluralize(s)
}
