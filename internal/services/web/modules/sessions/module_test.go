package sessions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/louisbranch/tabletop/internal/platform/errors"
	"github.com/louisbranch/tabletop/internal/services/shared/entity"
	"github.com/louisbranch/tabletop/internal/services/web/platform/modulehandler"
)

type fakeGateway map[entity.ID]entity.Session

func (g fakeGateway) Session(_ context.Context, id entity.ID) (entity.Session, error) {
	s, ok := g[id]
	if !ok {
		return entity.Session{}, apperrors.E(apperrors.KindNotFound, "Session not found")
	}
	return s, nil
}

func newHandler(t *testing.T, m Module) http.Handler {
	t.Helper()
	mount, err := m.Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	r := chi.NewRouter()
	r.Mount(mount.Prefix, mount.Handler)
	return r
}

func TestSessionDetail(t *testing.T) {
	t.Parallel()

	started := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)
	gw := fakeGateway{"3": {
		ID:        "3",
		Name:      "Into the Mists",
		Status:    entity.SessionActive,
		StartedAt: &started,
	}}
	rr := httptest.NewRecorder()
	newHandler(t, NewWithGateway(gw, modulehandler.Base{})).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/app/sessions/3", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Into the Mists") || !strings.Contains(body, "Active") {
		t.Fatalf("body = %s", body)
	}
}

func TestSessionNotFound(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	newHandler(t, NewWithGateway(fakeGateway{}, modulehandler.Base{})).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/app/sessions/9", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `id="app-error-state"`) {
		t.Fatalf("body = %s", rr.Body.String())
	}
}

func TestDegradedSessionsModule(t *testing.T) {
	t.Parallel()

	m := New()
	if m.ID() != "sessions" || m.Healthy() {
		t.Fatalf("id = %q healthy = %v", m.ID(), m.Healthy())
	}
	rr := httptest.NewRecorder()
	newHandler(t, m).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/app/sessions/1", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rr.Code)
	}
}
