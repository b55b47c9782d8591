package restapi

import "strings"

// ResolveArtURL rewrites API-relative art URLs to absolute URLs on the
// configured backend. Any other URL, including absolute and empty ones, is
// returned unchanged.
func (c *Client) ResolveArtURL(raw string) string {
	if c == nil || raw == "" {
		return raw
	}
	if !strings.HasPrefix(raw, c.artPathPrefix) {
		return raw
	}
	base := *c.baseURL
	base.Path = ""
	base.RawQuery = ""
	base.RawPath = ""
	base.Fragment = ""
	return strings.TrimRight(base.String(), "/") + raw
}
