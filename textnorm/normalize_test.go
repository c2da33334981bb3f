package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePunctuation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"en dash", "2020–2021", "2020-2021"},
		{"em dash", "wait—what", "wait--what"},
		{"curly single quotes", "‘quoted’", "'quoted'"},
		{"curly double quotes", "“quoted”", `"quoted"`},
		{"ellipsis", "and so…", "and so..."},
		{"non-breaking space", "a b", "a b"},
		{"bullet", "• item", "* item"},
		{"guillemets", "«word»", "<<word>>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeStripsAccents(t *testing.T) {
	assert.Equal(t, "cafe", Normalize("café"))
	assert.Equal(t, "Jose nunez", Normalize("José nuñez"))
}

func TestNormalizeReplacesRemainingNonASCII(t *testing.T) {
	// CJK has no ASCII decomposition; each rune becomes a marker instead
	// of disappearing, keeping positions roughly stable.
	got := Normalize("news 新聞 here")
	assert.Equal(t, "news ?? here", got)
}

func TestNormalizeIdempotent(t *testing.T) {
	samples := []string{
		"plain ascii text",
		"café — “quoted”…",
		"«新聞» • bullet list",
		"",
	}
	for _, s := range samples {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestNormalizeOutputIsASCII(t *testing.T) {
	out := Normalize("résumé — 新 test")
	for _, r := range out {
		assert.LessOrEqual(t, int(r), 127)
	}
}

func TestEscapeHeaderValue(t *testing.T) {
	assert.Equal(t, `say \"hi\"`, EscapeHeaderValue(`say "hi"`))
	assert.Equal(t, "two lines", EscapeHeaderValue("two\nlines"))
	assert.Equal(t, "a  b", EscapeHeaderValue("a\r\nb"))
	assert.Equal(t, "", EscapeHeaderValue(""))
}
