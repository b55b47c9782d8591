package templates

import (
	"context"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/louisbranch/tabletop/internal/services/shared/entity"
	"github.com/louisbranch/tabletop/internal/services/web/routepath"
)

const timestampLayout = "2006-01-02 15:04"

// SessionCard renders one session.
func SessionCard(s entity.Session, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *html) {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			name = T(loc, "session.unnamed")
		}
		h.raw(`<article class="card session-card"`)
		if !s.ID.IsZero() {
			h.attr("data-session-id", s.ID.String())
		}
		h.raw(">")
		if s.ID.IsZero() {
			h.element("h3", "card-title", name)
		} else {
			h.raw(`<h3 class="card-title"><a`)
			h.url("href", routepath.AppSession(s.ID.String()))
			h.raw(">")
			h.text(name)
			h.raw("</a></h3>")
		}
		h.element("span", "status status-"+statusClass(s.Status), sessionStatusLabel(s.Status, loc))
		if s.StartedAt != nil {
			h.element("p", "timestamp", T(loc, "session.started", formatTime(*s.StartedAt)))
		}
		if s.EndedAt != nil {
			h.element("p", "timestamp", T(loc, "session.ended", formatTime(*s.EndedAt)))
		}
		h.raw("</article>")
	})
}

// SessionList renders sessions in order.
func SessionList(items []entity.Session, loc Localizer) templ.Component {
	return component(func(ctx context.Context, h *html) {
		if len(items) == 0 {
			h.element("p", "empty", T(loc, "sessions.empty"))
			return
		}
		h.raw(`<div class="list session-list">`)
		for _, s := range items {
			h.render(ctx, SessionCard(s, loc))
		}
		h.raw("</div>")
	})
}

// SessionDetailPage renders the session page.
func SessionDetailPage(s entity.Session, loc Localizer) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<section class="session-detail">`)
		h.render(ctx, SessionCard(s, loc))
		h.raw("</section>")
	})
}

func sessionStatusLabel(status entity.SessionStatus, loc Localizer) string {
	switch status {
	case entity.SessionActive:
		return T(loc, "session.status.active")
	case entity.SessionEnded:
		return T(loc, "session.status.ended")
	default:
		return T(loc, "session.status.unknown")
	}
}

func statusClass(status entity.SessionStatus) string {
	switch status {
	case entity.SessionActive, entity.SessionEnded:
		return string(status)
	default:
		return "unknown"
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
