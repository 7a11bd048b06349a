package htmlwasher

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

type eventKind uint8

const (
	textEvent eventKind = iota
	startTagEvent
	endTagEvent
	selfClosingTagEvent
)

func (k eventKind) String() string {
	switch k {
	case textEvent:
		return "text"
	case startTagEvent:
		return "start"
	case endTagEvent:
		return "end"
	case selfClosingTagEvent:
		return "self-closing"
	}
	return "unknown"
}

// event is one structural piece of the input. Tag events carry a
// lowercased name and attributes in source order; text events carry data.
// Values are already entity-decoded by the tokenizer.
type event struct {
	kind  eventKind
	name  string
	attrs []html.Attribute
	data  string
}

// lexer turns markup into a flat sequence of events. It never builds a
// tree and never checks that tags balance.
type lexer struct {
	z *html.Tokenizer
}

func newLexer(r io.Reader) *lexer {
	return &lexer{z: html.NewTokenizer(r)}
}

// next returns the next event, or io.EOF once the input is consumed.
// Any other error comes from the underlying reader. Comments and
// doctypes are skipped. A tag cut off by the end of input is discarded
// by the tokenizer and never surfaces. Only script and style bodies are
// read as raw text; markup inside any other element is tokenized. NUL
// bytes become U+FFFD.
func (l *lexer) next() (event, error) {
	for {
		tt := l.z.Next()
		switch tt {
		case html.ErrorToken:
			return event{}, l.z.Err()
		case html.TextToken:
			tok := l.z.Token()
			if tok.Data == "" {
				continue
			}
			return event{kind: textEvent, data: replaceNUL(tok.Data)}, nil
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			tok := l.z.Token()
			if tt == html.StartTagToken && !rawTextTags[tok.Data] {
				l.z.NextIsNotRawText()
			}
			for i := range tok.Attr {
				tok.Attr[i].Key = replaceNUL(tok.Attr[i].Key)
				tok.Attr[i].Val = replaceNUL(tok.Attr[i].Val)
			}
			return event{kind: tagKind(tt), name: replaceNUL(tok.Data), attrs: tok.Attr}, nil
		case html.CommentToken, html.DoctypeToken:
			continue
		}
	}
}

// rawTextTags keep their body as a single text event. The tokenizer
// would also do this for textarea, title, noscript, plaintext and others,
// which would hide allowed markup nested in them.
var rawTextTags = map[string]bool{
	"script": true,
	"style":  true,
}

func replaceNUL(s string) string {
	if strings.IndexByte(s, 0) < 0 {
		return s
	}
	return strings.ReplaceAll(s, "\x00", "\uFFFD")
}

func tagKind(tt html.TokenType) eventKind {
	switch tt {
	case html.StartTagToken:
		return startTagEvent
	case html.EndTagToken:
		return endTagEvent
	default:
		return selfClosingTagEvent
	}
}
