package htmlwasher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Option configures a Washer.
type Option func(*Washer)

// WithLogger sets the logger that receives debug records about dropped
// tags and neutralized attributes. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(w *Washer) {
		if l != nil {
			w.logger = l
		}
	}
}

// Washer washes untrusted HTML fragments against a Policy.
//
// A Washer owns one output buffer and must not be used from several
// goroutines at once. The compiled whitelist is read-only, so any number
// of Washers built from the same Policy may run in parallel.
type Washer struct {
	allow  whitelist
	render bool
	logger *slog.Logger
	buf    bytes.Buffer
}

// NewWasher compiles p into a Washer. If p is nil, DefaultPolicy is used.
// Later changes to p do not affect the Washer.
func NewWasher(p *Policy, opts ...Option) *Washer {
	if p == nil {
		p = DefaultPolicy()
	}
	w := &Washer{
		allow:  newWhitelist(p),
		render: p.RenderUnallowedTags,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Wash parses input, applies p, and returns markup that is safe to embed
// in a page. It never fails: malformed markup degrades to escaped text or
// is dropped. If p is nil, DefaultPolicy is used.
func Wash(input string, p *Policy) string {
	return NewWasher(p).Wash(input)
}

// WashReader reads HTML from r, applies p, and returns the washed markup.
// The only errors are ErrNilReader and failures of r itself.
func WashReader(r io.Reader, p *Policy) (string, error) {
	return NewWasher(p).WashReader(r)
}

// Wash washes input. See the package function Wash.
func (w *Washer) Wash(input string) string {
	// A strings.Reader cannot fail.
	out, _ := w.WashReader(strings.NewReader(input))
	return out
}

// WashReader washes everything read from r. The buffer is cleared on
// entry and on return, so a Washer can be reused for the next input.
func (w *Washer) WashReader(r io.Reader) (string, error) {
	if r == nil {
		return "", ErrNilReader
	}
	w.buf.Reset()
	defer w.buf.Reset()

	lx := newLexer(r)
	for {
		ev, err := lx.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("htmlwasher: read input: %w", err)
		}
		w.handle(ev)
	}
	return w.buf.String(), nil
}

func (w *Washer) handle(ev event) {
	switch ev.kind {
	case textEvent:
		w.buf.WriteString(EscapeHTML(ev.data, true))
	case startTagEvent, selfClosingTagEvent:
		w.writeOpenTag(ev)
	case endTagEvent:
		w.writeEndTag(ev)
	}
}

func (w *Washer) writeOpenTag(ev event) {
	selfClosing := ev.kind == selfClosingTagEvent

	if !w.allow.admitTag(ev.name) {
		if !w.render {
			w.debug("tag dropped", slog.String("tag", ev.name), slog.String("kind", ev.kind.String()))
			return
		}
		w.debug("tag rendered as text", slog.String("tag", ev.name), slog.String("kind", ev.kind.String()))
		w.buf.WriteString("&lt;")
		w.buf.WriteString(EscapeHTML(ev.name, true))
		for _, a := range ev.attrs {
			w.writeAttr(EscapeHTML(a.Key, true), EscapeHTML(a.Val, true))
		}
		if selfClosing {
			w.buf.WriteString(" /&gt;")
		} else {
			w.buf.WriteString("&gt;")
		}
		return
	}

	w.buf.WriteByte('<')
	w.buf.WriteString(ev.name)
	for _, a := range ev.attrs {
		if !w.allow.admitAttribute(a.Key) {
			w.debug("attribute dropped", slog.String("tag", ev.name), slog.String("attr", a.Key))
			continue
		}
		val, neutralized := sanitizeAttribute(a.Val)
		if neutralized {
			w.debug("attribute neutralized", slog.String("tag", ev.name), slog.String("attr", a.Key))
		}
		w.writeAttr(a.Key, val)
	}
	if selfClosing {
		w.buf.WriteString(" />")
	} else {
		w.buf.WriteByte('>')
	}
}

func (w *Washer) writeEndTag(ev event) {
	if w.allow.admitTag(ev.name) {
		w.buf.WriteString("</")
		w.buf.WriteString(ev.name)
		w.buf.WriteByte('>')
		return
	}
	if !w.render {
		w.debug("tag dropped", slog.String("tag", ev.name), slog.String("kind", ev.kind.String()))
		return
	}
	w.debug("tag rendered as text", slog.String("tag", ev.name), slog.String("kind", ev.kind.String()))
	w.buf.WriteString("&lt;/")
	w.buf.WriteString(EscapeHTML(ev.name, true))
	w.buf.WriteString("&gt;")
}

// writeAttr writes ` key="val"`. Both parts must already be escaped.
func (w *Washer) writeAttr(key, val string) {
	w.buf.WriteByte(' ')
	w.buf.WriteString(key)
	w.buf.WriteString(`="`)
	w.buf.WriteString(val)
	w.buf.WriteByte('"')
}

func (w *Washer) debug(msg string, attrs ...slog.Attr) {
	w.logger.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs...)
}
