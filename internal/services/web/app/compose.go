// Package app composes web modules into the root handler.
package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/louisbranch/tabletop/internal/services/web/module"
	"github.com/louisbranch/tabletop/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/tabletop/internal/services/web/routepath"
)

// ComposeInput carries the modules and the routes owned by the root.
type ComposeInput struct {
	Modules []module.Module
	// Middleware wraps every route, outermost first.
	Middleware []func(http.Handler) http.Handler
	// Health answers liveness checks on /up.
	Health http.Handler
	// NotFound renders unmatched paths.
	NotFound http.HandlerFunc
	// TrustForwardedProto honors X-Forwarded-Proto in the origin check.
	TrustForwardedProto bool
}

// Compose builds a root HTTP handler from modules. Every module mounts under
// /app/ and owns its prefix exclusively.
func Compose(input ComposeInput) (http.Handler, error) {
	root := chi.NewRouter()
	for _, mw := range input.Middleware {
		if mw != nil {
			root.Use(mw)
		}
	}
	root.Use(requireSameOriginMutations(requestmeta.SchemePolicy{TrustForwardedProto: input.TrustForwardedProto}))

	seen := make(map[string]string)
	for _, feature := range input.Modules {
		if feature == nil {
			return nil, fmt.Errorf("module is nil")
		}
		mount, prefix, err := resolveMount(feature)
		if err != nil {
			return nil, err
		}
		if previous, ok := seen[prefix]; ok {
			return nil, fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
		}
		seen[prefix] = feature.ID()
		root.Mount(prefix, mount.Handler)
	}

	health := input.Health
	if health == nil {
		health = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte("OK"))
		})
	}
	root.Method(http.MethodGet, routepath.Health, health)
	root.Get(routepath.Root, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, routepath.AppCampaigns, http.StatusFound)
	})
	if input.NotFound != nil {
		root.NotFound(input.NotFound)
	}
	return root, nil
}

func resolveMount(feature module.Module) (module.Mount, string, error) {
	mount, err := feature.Mount()
	if err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	prefix := mount.Prefix
	if err := validatePrefix(prefix); err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), mount.Prefix, err)
	}
	if mount.Handler == nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, prefix, nil
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("prefix is required")
	}
	if strings.TrimSpace(prefix) != prefix {
		return fmt.Errorf("prefix must not include surrounding whitespace")
	}
	if !strings.HasPrefix(prefix, routepath.AppPrefix) {
		return fmt.Errorf("prefix must begin with %s", routepath.AppPrefix)
	}
	if strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("prefix must not end with /")
	}
	return nil
}

// requireSameOriginMutations rejects cross-site form posts.
func requireSameOriginMutations(policy requestmeta.SchemePolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isMutationMethod(r.Method) && !requestmeta.AllowsMutation(r, policy) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isMutationMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}
