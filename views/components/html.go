// Package components holds the landing page's reusable templ components.
package components

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// Writer accumulates markup and keeps the first write error.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup as is.
func (h *Writer) Raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// Text writes s escaped for element content or a quoted attribute.
func (h *Writer) Text(s string) {
	h.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with value escaped.
func (h *Writer) Attr(name, value string) {
	h.Raw(" " + name + `="`)
	h.Text(value)
	h.Raw(`"`)
}

// Int writes an integer.
func (h *Writer) Int(n int64) {
	h.Raw(strconv.FormatInt(n, 10))
}

// Render renders a child component in place.
func (h *Writer) Render(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// Err returns the first error seen.
func (h *Writer) Err() error {
	return h.err
}

// Text renders plain, escaped text.
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}
