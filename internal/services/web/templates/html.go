// Package templates holds the templ components that render the web front-end.
// Components take already-resolved data and never fail on partial entities;
// absent optional fields render as placeholders or are omitted.
package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// html accumulates the first write error so components read as straight-line
// markup.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(parts ...string) {
	for _, part := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, part)
	}
}

func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *html) attr(name, value string) {
	h.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func (h *html) url(name, value string) {
	h.attr(name, string(templ.URL(value)))
}

func (h *html) render(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

func (h *html) element(tag, class, content string) {
	h.raw("<", tag)
	if class != "" {
		h.attr("class", class)
	}
	h.raw(">")
	h.text(content)
	h.raw("</", tag, ">")
}

func component(fn func(ctx context.Context, h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		fn(ctx, h)
		return h.err
	})
}

// Empty renders nothing.
func Empty() templ.Component {
	return templ.NopComponent
}

// InlineError renders a failure message scoped to the view or block that
// produced it.
func InlineError(message string) templ.Component {
	return component(func(_ context.Context, h *html) {
		message = strings.TrimSpace(message)
		if message == "" {
			return
		}
		h.raw(`<p class="inline-error" role="alert">`)
		h.text(message)
		h.raw("</p>")
	})
}

func initial(name string) string {
	for _, r := range strings.TrimSpace(name) {
		return strings.ToUpper(string(r))
	}
	return "?"
}

func artImage(h *html, artURL, name string) {
	if strings.TrimSpace(artURL) == "" {
		h.raw(`<div class="art-placeholder" aria-hidden="true">`)
		h.text(initial(name))
		h.raw("</div>")
		return
	}
	h.raw("<img")
	h.attr("class", "art")
	h.url("src", artURL)
	h.attr("alt", name)
	h.raw(` loading="lazy">`)
}
