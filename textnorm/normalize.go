// Package textnorm converts arbitrary text into a 7-bit-safe form suitable
// for embedding in markdown documents and their header blocks.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// replacements maps common typographic punctuation to ASCII equivalents.
// Applied after accent stripping, before the final non-ASCII sweep.
var replacements = strings.NewReplacer(
	"–", "-", // en dash
	"—", "--", // em dash
	"‘", "'", // left single quotation mark
	"’", "'", // right single quotation mark
	"“", `"`, // left double quotation mark
	"”", `"`, // right double quotation mark
	"…", "...", // horizontal ellipsis
	" ", " ", // non-breaking space
	"•", "*", // bullet point
	"«", "<<", // left guillemet
	"»", ">>", // right guillemet
)

// Normalize converts text to its closest ASCII representation.
// Accented letters lose their marks, typographic punctuation becomes its
// plain equivalent, and anything still outside ASCII is replaced with '?'
// so positions are roughly preserved. Idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	// NFD decomposition separates base letters from combining marks,
	// which are then dropped.
	decomposed := norm.NFD.String(text)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}

	replaced := replacements.Replace(b.String())

	var out strings.Builder
	out.Grow(len(replaced))
	for _, r := range replaced {
		if r > unicode.MaxASCII {
			out.WriteByte('?')
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

// EscapeHeaderValue makes text safe for a quoted header-block field:
// double quotes are backslash-escaped and embedded line breaks collapse
// to spaces.
func EscapeHeaderValue(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, `"`, `\"`)
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\r", " ")
	return text
}
