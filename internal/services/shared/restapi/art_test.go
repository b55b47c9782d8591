package restapi

import "testing"

func TestResolveArtURL(t *testing.T) {
	t.Parallel()

	client, err := New(Config{BaseURL: "https://api.example.test/v1"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "/api/art/campaigns/3.png", want: "https://api.example.test/api/art/campaigns/3.png"},
		{raw: "https://cdn.example.test/art/3.png", want: "https://cdn.example.test/art/3.png"},
		{raw: "/static/placeholder.png", want: "/static/placeholder.png"},
		{raw: "", want: ""},
	}
	for _, tc := range tests {
		if got := client.ResolveArtURL(tc.raw); got != tc.want {
			t.Fatalf("ResolveArtURL(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestResolveArtURLCustomPrefix(t *testing.T) {
	t.Parallel()

	client, err := New(Config{BaseURL: "http://localhost:8000", ArtPathPrefix: "/media/"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := client.ResolveArtURL("/media/c.png"); got != "http://localhost:8000/media/c.png" {
		t.Fatalf("ResolveArtURL() = %q", got)
	}
	if got := client.ResolveArtURL("/api/c.png"); got != "/api/c.png" {
		t.Fatalf("ResolveArtURL() = %q, want verbatim", got)
	}
}
