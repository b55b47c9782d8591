package templates

import (
	"context"
	"errors"

	"github.com/a-h/templ"

	"github.com/louisbranch/tabletop/internal/services/shared/structured"
)

// StructuredBlock renders a dispatched chat block. Inapplicable results
// render nothing.
func StructuredBlock(result structured.Result, loc Localizer) templ.Component {
	return component(func(ctx context.Context, h *html) {
		var body templ.Component
		switch result.Kind {
		case structured.ResultCharacter:
			body = CharacterCard(result.Character, CharacterCardOptions{}, loc)
		case structured.ResultCharacters:
			body = CharacterGrid(result.Characters, CharacterCardOptions{}, loc)
		case structured.ResultSession:
			body = SessionCard(result.Session, loc)
		case structured.ResultSessions:
			body = SessionList(result.Sessions, loc)
		case structured.ResultCampaign:
			body = CampaignCard(result.Campaign, CampaignCardOptions{}, loc)
		default:
			return
		}
		h.raw(`<div class="structured-block"`)
		h.attr("data-kind", result.Kind.String())
		h.raw(">")
		h.render(ctx, body)
		h.raw("</div>")
	})
}

// StructuredError renders a dispatch failure inline.
func StructuredError(err error, loc Localizer) templ.Component {
	return InlineError(StructuredErrorMessage(err, loc))
}

// StructuredErrorMessage localizes a dispatch failure.
func StructuredErrorMessage(err error, loc Localizer) string {
	if err == nil {
		return ""
	}
	switch structured.KindOf(err) {
	case structured.ErrMalformedPayload:
		return T(loc, "error.malformed_payload")
	case structured.ErrInvalidShape:
		return T(loc, "error.invalid_shape")
	case structured.ErrResolutionFailed:
		cause := err
		var dispatchErr *structured.Error
		if errors.As(err, &dispatchErr) && dispatchErr.Err != nil {
			cause = dispatchErr.Err
		}
		return T(loc, "error.resolution_failed", cause.Error())
	default:
		return T(loc, "error.generic")
	}
}
