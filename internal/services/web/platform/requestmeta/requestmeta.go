// Package requestmeta derives the origin facts the mutation guard checks.
package requestmeta

import (
	"net/http"
	"net/url"
	"strings"
)

// SchemePolicy controls how the request scheme is resolved. X-Forwarded-Proto
// is only honored when TrustForwardedProto is set.
type SchemePolicy struct {
	TrustForwardedProto bool
}

type origin struct {
	scheme string
	host   string
	port   string
}

// AllowsMutation reports whether a state-changing request may proceed.
// Requests carrying no Origin or Referer (non-browser clients) pass; requests
// carrying one must match the served origin.
func AllowsMutation(r *http.Request, policy SchemePolicy) bool {
	if r == nil {
		return false
	}
	claimed := strings.TrimSpace(r.Header.Get("Origin"))
	if claimed == "" || claimed == "null" {
		claimed = strings.TrimSpace(r.Header.Get("Referer"))
	}
	if claimed == "" {
		return true
	}
	return SameOrigin(r, claimed, policy)
}

// SameOrigin reports whether rawURL names the origin r was served on.
func SameOrigin(r *http.Request, rawURL string, policy SchemePolicy) bool {
	served, ok := servedOrigin(r, policy)
	if !ok {
		return false
	}
	claimed, ok := parseOrigin(rawURL)
	if !ok {
		return false
	}
	return claimed == served
}

func servedOrigin(r *http.Request, policy SchemePolicy) (origin, bool) {
	if r == nil {
		return origin{}, false
	}
	parsed, err := url.Parse("//" + strings.TrimSpace(r.Host))
	if err != nil || parsed.Hostname() == "" {
		return origin{}, false
	}
	o := origin{
		scheme: requestScheme(r, policy),
		host:   strings.ToLower(parsed.Hostname()),
		port:   parsed.Port(),
	}
	if o.port == "" {
		o.port = defaultPort(o.scheme)
	}
	return o, true
}

func parseOrigin(raw string) (origin, bool) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return origin{}, false
	}
	o := origin{
		scheme: strings.ToLower(parsed.Scheme),
		host:   strings.ToLower(parsed.Hostname()),
		port:   parsed.Port(),
	}
	if o.port == "" {
		o.port = defaultPort(o.scheme)
	}
	if o.host == "" || o.port == "" {
		return origin{}, false
	}
	return o, true
}

func requestScheme(r *http.Request, policy SchemePolicy) string {
	if policy.TrustForwardedProto {
		if forwarded := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); forwarded == "http" || forwarded == "https" {
			return forwarded
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

func defaultPort(scheme string) string {
	switch scheme {
	case "https":
		return "443"
	case "http":
		return "80"
	default:
		return ""
	}
}

// IsHTTPS reports whether r should be treated as served over HTTPS.
func IsHTTPS(r *http.Request, policy SchemePolicy) bool {
	return r != nil && requestScheme(r, policy) == "https"
}
