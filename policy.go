package htmlwasher

import "strings"

// Policy defines which markup survives a wash.
type Policy struct {
	// RenderUnallowedTags controls what happens to tags outside
	// AllowedTags. When true the tag is written back as escaped, inert
	// text so the reader can see it. When false the tag delimiters are
	// dropped. Text inside a disallowed tag is kept either way.
	RenderUnallowedTags bool

	// AllowedTags is the list of tag names that are kept in output.
	// Matching is ASCII case-insensitive.
	AllowedTags []string

	// AllowedAttributes is the list of attribute names kept on allowed
	// tags, regardless of the tag. Matching is ASCII case-insensitive.
	AllowedAttributes []string
}

// DefaultTags lists the tags admitted by DefaultPolicy. None of them can
// carry script on their own.
var DefaultTags = []string{
	"a",
	"p", "br", "blockquote",
	"strong", "b", "u", "i", "em",
	"ul", "ol", "li", "sub", "sup",
}

// DefaultAttributes lists the attributes admitted by DefaultPolicy. Be
// careful when extending it: <p style="background: url(x.js)"> is a
// working vector.
var DefaultAttributes = []string{"href", "name"}

// DefaultPolicy returns a Policy admitting basic inline and block
// formatting plus links. Disallowed tags are dropped silently.
func DefaultPolicy() *Policy {
	return &Policy{
		AllowedTags:       append([]string(nil), DefaultTags...),
		AllowedAttributes: append([]string(nil), DefaultAttributes...),
	}
}

// StrictPolicy returns a Policy that keeps only emphasis, paragraphs and
// line breaks, with no attributes at all. Good for comment sections.
func StrictPolicy() *Policy {
	return &Policy{
		AllowedTags:       []string{"b", "i", "em", "strong", "br", "p"},
		AllowedAttributes: []string{},
	}
}

// whitelist is the compiled, read-only form of a Policy.
type whitelist struct {
	tags  map[string]struct{}
	attrs map[string]struct{}
}

func newWhitelist(p *Policy) whitelist {
	return whitelist{
		tags:  nameSet(p.AllowedTags),
		attrs: nameSet(p.AllowedAttributes),
	}
}

func (wl whitelist) admitTag(name string) bool {
	_, ok := wl.tags[asciiLower(name)]
	return ok
}

func (wl whitelist) admitAttribute(name string) bool {
	_, ok := wl.attrs[asciiLower(name)]
	return ok
}

func nameSet(names []string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		m[asciiLower(n)] = struct{}{}
	}
	return m
}

// asciiLower folds A-Z only. Non-ASCII names never match a whitelist
// entry by accident of Unicode case folding.
func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; 'A' <= c && c <= 'Z' {
			return strings.Map(func(r rune) rune {
				if 'A' <= r && r <= 'Z' {
					return r + ('a' - 'A')
				}
				return r
			}, s)
		}
	}
	return s
}
