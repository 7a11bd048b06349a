// Package htmlwasher turns untrusted, possibly malformed HTML fragments
// into markup that is safe to embed back into a page.
//
// # Overview
//
// htmlwasher reads input with the golang.org/x/net/html tokenizer and
// handles it as a flat stream of start, end, self-closing and text
// events. No tree is built and tags are not balanced or repaired. Each
// event is written to the output according to a [Policy]:
//   - Tags in [Policy.AllowedTags] are kept, with only the attributes in
//     [Policy.AllowedAttributes].
//   - Other tags are dropped, or written back as escaped text when
//     [Policy.RenderUnallowedTags] is set. Their text content is kept.
//   - Text is always escaped.
//
// # Script schemes
//
// Attribute values that a browser would read as a javascript: or
// vbscript: URI are emptied. Detection ([IsDangerousURI]) sees through
// numeric character references, whitespace between letters and mixed
// case, so "jaVas  cRipt:" and "&#106;avascript:" are both caught. The
// matcher runs in linear time on any input.
//
// # Concurrency
//
// [Wash] and [WashReader] build fresh state per call and are safe for
// concurrent use. A [Washer] reuses its buffer and belongs to one
// goroutine at a time.
//
// # Example
//
//	clean := htmlwasher.Wash(userInput, nil)
//	// "Spam and <b><blink>eggs</blink></b>" -> "Spam and <b>eggs</b>"
package htmlwasher
