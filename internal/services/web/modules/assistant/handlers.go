package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"mime"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/a-h/templ"

	apperrors "github.com/louisbranch/tabletop/internal/platform/errors"
	"github.com/louisbranch/tabletop/internal/services/web/platform/httpx"
	"github.com/louisbranch/tabletop/internal/services/web/platform/modulehandler"
	webtemplates "github.com/louisbranch/tabletop/internal/services/web/templates"
)

const (
	maxRenderBodyBytes  = 64 * 1024
	maxMessageIDRunes   = 128
	maxContentBodyRunes = 32 * 1024
)

type handlers struct {
	modulehandler.Base
	renderer Renderer
}

// messageInput is one transcript message as posted by the client.
type messageInput struct {
	MessageID string `json:"message_id"`
	Content   string `json:"content"`
}

func (in messageInput) normalized() (messageInput, error) {
	in.MessageID = strings.TrimSpace(in.MessageID)
	if utf8.RuneCountInString(in.MessageID) > maxMessageIDRunes {
		return in, apperrors.E(apperrors.KindInvalidInput, "message_id is too long")
	}
	if utf8.RuneCountInString(in.Content) > maxContentBodyRunes {
		return in, apperrors.E(apperrors.KindInvalidInput, "content is too long")
	}
	return in, nil
}

func (h handlers) handlePage(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.PageLocalizer(w, r)
	h.WriteLocalizedPage(w, r, loc, lang, webtemplates.T(loc, "assistant.title"), http.StatusOK, webtemplates.AssistantPage(loc))
}

func (h handlers) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRenderBodyBytes)
	in, err := decodeMessageInput(r)
	if err == nil {
		in, err = in.normalized()
	}
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	if h.renderer == nil {
		h.WriteError(w, r, apperrors.EK(apperrors.KindUnavailable, "error.unavailable", "transcript renderer is not configured"))
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	fragment, err := renderMessage(httpx.RequestContext(r), h.renderer, in, loc)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	if err := httpx.WriteHTML(w, http.StatusOK, fragment); err != nil {
		h.Logger().WarnContext(r.Context(), "write rendered message", "error", err)
	}
}

func decodeMessageInput(r *http.Request) (messageInput, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var in messageInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			return messageInput{}, apperrors.Wrap(apperrors.KindInvalidInput, "invalid message payload", err)
		}
		return in, nil
	}
	if err := r.ParseForm(); err != nil {
		return messageInput{}, apperrors.Wrap(apperrors.KindInvalidInput, "invalid message form", err)
	}
	return messageInput{
		MessageID: r.PostFormValue("message_id"),
		Content:   r.PostFormValue("content"),
	}, nil
}

// renderMessage renders in as a complete transcript message fragment.
func renderMessage(ctx context.Context, renderer Renderer, in messageInput, loc webtemplates.Localizer) (string, error) {
	body, err := renderer.Render(ctx, in.Content, loc)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := webtemplates.AssistantMessage(in.MessageID, templ.Raw(body)).Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
