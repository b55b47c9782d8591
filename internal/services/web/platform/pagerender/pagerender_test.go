package pagerender

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/louisbranch/tabletop/internal/services/web/platform/flash"
)

func textComponent(value string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, value)
		return err
	})
}

func TestWriteModulePageRendersHTMXFragmentWithStatus(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/app/campaigns", nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()

	err := WriteModulePage(rr, req, ModulePage{
		Title:      "Campaigns",
		StatusCode: http.StatusCreated,
		Fragment:   textComponent(`<section id="fragment-root">ok</section>`),
	})
	if err != nil {
		t.Fatalf("WriteModulePage() error = %v", err)
	}
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusCreated)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `id="fragment-root"`) {
		t.Fatalf("body missing fragment marker: %q", body)
	}
	if strings.Contains(strings.ToLower(body), "<html") {
		t.Fatalf("expected htmx fragment without full document wrapper")
	}
}

func TestWriteModulePageRendersFullPage(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/app/campaigns", nil)
	rr := httptest.NewRecorder()

	err := WriteModulePage(rr, req, ModulePage{
		Title:      "Campaigns",
		StatusCode: http.StatusAccepted,
		Fragment:   textComponent(`<section id="fragment-root">ok</section>`),
	})
	if err != nil {
		t.Fatalf("WriteModulePage() error = %v", err)
	}
	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusAccepted)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("content-type = %q", got)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "<!doctype html>") || !strings.Contains(body, `id="fragment-root"`) {
		t.Fatalf("body = %q", body)
	}
}

func TestWriteModulePageShowsAndClearsNotice(t *testing.T) {
	t.Parallel()

	seed := httptest.NewRecorder()
	flash.Write(seed, httptest.NewRequest(http.MethodPost, "/app/campaigns/1/delete", nil), flash.Success("flash.campaign_deleted"))

	req := httptest.NewRequest(http.MethodGet, "/app/campaigns", nil)
	for _, c := range seed.Result().Cookies() {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	if err := WriteModulePage(rr, req, ModulePage{Fragment: textComponent("ok")}); err != nil {
		t.Fatalf("WriteModulePage() error = %v", err)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `role="status"`) || !strings.Contains(body, "app-notice-success") || !strings.Contains(body, "flash.campaign_deleted") {
		t.Fatalf("body = %q", body)
	}
	cleared := rr.Result().Cookies()
	if len(cleared) != 1 || cleared[0].Name != flash.CookieName || cleared[0].MaxAge >= 0 {
		t.Fatalf("cookies = %+v", cleared)
	}
}

func TestWriteModulePageRenderFailureWritesNothing(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	failing := templ.ComponentFunc(func(context.Context, io.Writer) error { return errors.New("boom") })
	err := WriteModulePage(rr, httptest.NewRequest(http.MethodGet, "/", nil), ModulePage{Fragment: failing})
	if err == nil {
		t.Fatal("expected render error")
	}
	if rr.Body.Len() != 0 {
		t.Fatalf("partial body written: %q", rr.Body.String())
	}
}

func TestWriteFragment(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	if err := WriteFragment(rr, httptest.NewRequest(http.MethodPost, "/", nil), 0, textComponent("<p>card</p>")); err != nil {
		t.Fatalf("WriteFragment() error = %v", err)
	}
	if rr.Code != http.StatusOK || rr.Body.String() != "<p>card</p>" {
		t.Fatalf("response = %d %q", rr.Code, rr.Body.String())
	}
}
