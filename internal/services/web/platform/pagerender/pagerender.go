// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"

	"github.com/louisbranch/tabletop/internal/services/web/platform/flash"
	"github.com/louisbranch/tabletop/internal/services/web/platform/httpx"
	webtemplates "github.com/louisbranch/tabletop/internal/services/web/templates"
)

// ModulePage describes a module page response for both full-page and HTMX flows.
type ModulePage struct {
	Title      string
	StatusCode int
	Lang       string
	Loc        webtemplates.Localizer
	Fragment   templ.Component
}

// WriteModulePage writes the fragment alone for HTMX requests and inside the
// document layout otherwise. Rendering is buffered so a render failure never
// leaves a partial response.
func WriteModulePage(w http.ResponseWriter, r *http.Request, page ModulePage) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = templ.NopComponent
	}
	ctx := templ.WithChildren(httpx.RequestContext(r), fragment)

	var shell templ.Component
	if httpx.IsHTMXRequest(r) {
		shell = webtemplates.Main()
	} else {
		path := ""
		if r != nil && r.URL != nil {
			path = r.URL.Path
		}
		layout := webtemplates.PageContext{
			Title:       page.Title,
			Lang:        page.Lang,
			Loc:         page.Loc,
			CurrentPath: path,
		}
		if notice, ok := flash.ReadAndClear(w, r); ok {
			layout.Notice = &webtemplates.Notice{Kind: string(notice.Kind), Message: webtemplates.T(page.Loc, notice.Key)}
		}
		shell = webtemplates.Layout(layout)
	}
	var buf bytes.Buffer
	if err := shell.Render(ctx, &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}

// WriteFragment writes a bare component regardless of request type.
func WriteFragment(w http.ResponseWriter, r *http.Request, statusCode int, fragment templ.Component) error {
	if w == nil {
		return nil
	}
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	if fragment == nil {
		fragment = templ.NopComponent
	}
	var buf bytes.Buffer
	if err := fragment.Render(httpx.RequestContext(r), &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}
