package htmlwasher

import (
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textEscaper  = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	quoteEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&#39;")
)

// EscapeHTML escapes &, < and > so text cannot open a tag. With
// escapeQuotes set it also escapes " and ', which makes the result safe
// inside a quoted attribute value.
func EscapeHTML(text string, escapeQuotes bool) string {
	if escapeQuotes {
		return quoteEscaper.Replace(text)
	}
	return textEscaper.Replace(text)
}

// NmToken maps text to a string usable as the name attribute of an
// anchor: ASCII letters and digits and the marks . - _ : are kept, every
// other rune becomes its decimal code point. Hyphens are doubled first so
// that "-" and a code point rarely collide.
//
// The mapping is not injective. Two different texts can produce the same
// token, which is unlikely within a single page.
func NmToken(text string) string {
	text = strings.ReplaceAll(text, "-", "--")
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if isNmTokenRune(r) {
			sb.WriteRune(r)
			continue
		}
		sb.WriteString(strconv.Itoa(int(r)))
	}
	return sb.String()
}

func isNmTokenRune(r rune) bool {
	switch {
	case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
		return true
	case r == '.', r == '-', r == '_', r == ':':
		return true
	}
	return false
}

// stripPolicy is safe for concurrent use once built.
var stripPolicy = bluemonday.StrictPolicy()

// StripTags removes every tag and returns the remaining text, still
// HTML-escaped. The contents of script and style elements are dropped.
func StripTags(input string) string {
	return stripPolicy.Sanitize(input)
}
