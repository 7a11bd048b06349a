package htmlwasher

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Separators a browser ignores between the letters of a scheme: raw
// control characters and spaces, and their encoded forms.
const schemeSeparator = `(?:[\x00-\x20]|&#0*(?:9|10|13);?|&#x0*(?:9|a|d);?|&(?:tab|newline);)*`

const schemeColon = `(?::|&#0*58;?|&#x0*3a;?|&colon;)`

// dangerousSchemes match javascript: and vbscript: anywhere in a value,
// literal or spelled with numeric character references, in any case, with
// whitespace between letters. Go's regexp engine runs in time linear in
// the input, so adversarial values cannot trigger backtracking blowups.
var dangerousSchemes = []*regexp.Regexp{
	schemePattern("javascript"),
	schemePattern("vbscript"),
}

func schemePattern(keyword string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("(?i)")
	for _, c := range keyword {
		b.WriteString(letterPattern(c))
		b.WriteString(schemeSeparator)
	}
	b.WriteString(schemeColon)
	return regexp.MustCompile(b.String())
}

// letterPattern accepts c itself or a decimal or hex reference to either
// of its cases, with optional zero padding and optional semicolon.
func letterPattern(c rune) string {
	lower, upper := unicode.ToLower(c), unicode.ToUpper(c)
	return fmt.Sprintf(`(?:%c|&#0*(?:%d|%d);?|&#x0*(?:%x|%x);?)`, lower, lower, upper, lower, upper)
}

// IsDangerousURI reports whether value would be read by a browser as a
// javascript: or vbscript: URI. The check is deliberately broad: any
// value containing the scheme shape is flagged, even past the start.
func IsDangerousURI(value string) bool {
	for _, re := range dangerousSchemes {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

// SanitizeAttribute returns value ready to be written between double
// quotes. A value that resolves to a script scheme comes back empty; the
// attribute is kept so the markup keeps its shape. The same rules apply to
// every attribute name.
func SanitizeAttribute(name, value string) string {
	v, _ := sanitizeAttribute(value)
	return v
}

// sanitizeAttribute also reports whether value was neutralized.
func sanitizeAttribute(value string) (string, bool) {
	if IsDangerousURI(value) {
		return "", true
	}
	return EscapeHTML(value, true), false
}
