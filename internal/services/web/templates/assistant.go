package templates

import (
	"context"

	"github.com/a-h/templ"

	"github.com/louisbranch/tabletop/internal/services/web/routepath"
)

// AssistantPage renders the transcript panel shell. Messages are appended by
// the stream client.
func AssistantPage(loc Localizer) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<section class="assistant">`)
		h.element("h1", "", T(loc, "assistant.title"))
		h.raw(`<div id="transcript" class="transcript" aria-live="polite"`)
		h.attr("data-stream-url", routepath.AppAssistantStream)
		h.attr("data-render-url", routepath.AppAssistantRender)
		h.raw(">")
		h.element("p", "muted", T(loc, "assistant.placeholder"))
		h.raw("</div></section>")
	})
}

// AssistantMessage wraps one rendered transcript message.
func AssistantMessage(messageID string, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<article class="transcript-message"`)
		if messageID != "" {
			h.attr("id", "message-"+messageID)
			h.attr("data-message-id", messageID)
		}
		h.raw(">")
		h.render(ctx, body)
		h.raw("</article>")
	})
}
