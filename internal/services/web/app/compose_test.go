package app

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/tabletop/internal/services/web/module"
)

type stubModule struct {
	id    string
	mount module.Mount
	err   error
}

func (s stubModule) ID() string { return s.id }

func (s stubModule) Mount() (module.Mount, error) { return s.mount, s.err }

func echoHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, body)
	})
}

func TestComposeMountsModules(t *testing.T) {
	t.Parallel()

	h, err := Compose(ComposeInput{Modules: []module.Module{
		stubModule{id: "one", mount: module.Mount{Prefix: "/app/one", Handler: echoHandler("one")}},
		stubModule{id: "two", mount: module.Mount{Prefix: "/app/two", Handler: echoHandler("two")}},
	}})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	for path, want := range map[string]string{"/app/one": "one", "/app/two/x": "two"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Body.String() != want {
			t.Fatalf("GET %s = %q, want %q", path, rr.Body.String(), want)
		}
	}
}

func TestComposeRejectsDuplicateModulePrefix(t *testing.T) {
	t.Parallel()

	_, err := Compose(ComposeInput{Modules: []module.Module{
		stubModule{id: "one", mount: module.Mount{Prefix: "/app/one", Handler: echoHandler("")}},
		stubModule{id: "two", mount: module.Mount{Prefix: "/app/one", Handler: echoHandler("")}},
	}})
	if err == nil || !strings.Contains(err.Error(), "duplicates prefix") {
		t.Fatalf("err = %v, want duplicate prefix error", err)
	}
}

func TestComposeRejectsInvalidModulePrefixes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
	}{
		{name: "empty", prefix: ""},
		{name: "outside app", prefix: "/public"},
		{name: "trailing slash", prefix: "/app/x/"},
		{name: "surrounding whitespace", prefix: "/app/x "},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Compose(ComposeInput{Modules: []module.Module{
				stubModule{id: "bad", mount: module.Mount{Prefix: tc.prefix, Handler: echoHandler("")}},
			}})
			if err == nil || !strings.Contains(err.Error(), "invalid prefix") || !strings.Contains(err.Error(), "bad") {
				t.Fatalf("err = %v", err)
			}
		})
	}
}

func TestComposeRejectsBrokenModules(t *testing.T) {
	t.Parallel()

	if _, err := Compose(ComposeInput{Modules: []module.Module{nil}}); err == nil {
		t.Fatal("expected nil module error")
	}
	if _, err := Compose(ComposeInput{Modules: []module.Module{stubModule{id: "x", err: errors.New("boom")}}}); err == nil {
		t.Fatal("expected mount error")
	}
	if _, err := Compose(ComposeInput{Modules: []module.Module{stubModule{id: "x", mount: module.Mount{Prefix: "/app/x"}}}}); err == nil {
		t.Fatal("expected missing handler error")
	}
}

func TestComposeServesHealthAndRootRedirect(t *testing.T) {
	t.Parallel()

	h, err := Compose(ComposeInput{})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/up", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "OK" {
		t.Fatalf("health = %d %q", rr.Code, rr.Body.String())
	}
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/app/campaigns" {
		t.Fatalf("root = %d %q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestComposeAppliesMiddlewareInOrder(t *testing.T) {
	t.Parallel()

	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h, err := Compose(ComposeInput{Middleware: []func(http.Handler) http.Handler{tag("outer"), tag("inner")}})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/up", nil))
	if strings.Join(order, ",") != "outer,inner" {
		t.Fatalf("order = %v", order)
	}
}

func TestComposeRejectsCrossOriginMutations(t *testing.T) {
	t.Parallel()

	h, err := Compose(ComposeInput{Modules: []module.Module{
		stubModule{id: "one", mount: module.Mount{Prefix: "/app/one", Handler: echoHandler("ok")}},
	}})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	tests := []struct {
		name   string
		origin string
		want   int
	}{
		{name: "no origin", origin: "", want: http.StatusOK},
		{name: "same origin", origin: "http://example.com", want: http.StatusOK},
		{name: "cross origin", origin: "https://evil.test", want: http.StatusForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "http://example.com/app/one", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != tc.want {
				t.Fatalf("status = %d, want %d", rr.Code, tc.want)
			}
		})
	}
}
