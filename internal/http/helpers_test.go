package httpserver

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/filmoteka-app/filmoteka/internal/config"
)

func TestBuildMovieFilters(t *testing.T) {
	values, _ := url.ParseQuery("q= Mann &year=1995&limit=25")

	filters, err := buildMovieFilters(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filters.Query == nil || *filters.Query != "Mann" {
		t.Fatalf("query not trimmed: %+v", filters.Query)
	}
	if filters.Year == nil || *filters.Year != 1995 {
		t.Fatalf("year parse failed: %+v", filters.Year)
	}
	if filters.Limit != 25 {
		t.Fatalf("limit not parsed: %d", filters.Limit)
	}
}

func TestBuildMovieFilters_Invalid(t *testing.T) {
	for _, raw := range []string{"year=abc", "limit=many", "cursor=!!!"} {
		values, _ := url.ParseQuery(raw)
		if _, err := buildMovieFilters(values); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestAuthorized(t *testing.T) {
	srv := &Server{cfg: config.Config{AuthToken: "secret"}}
	cases := []struct {
		header  string
		allowed bool
	}{
		{"Bearer secret", true},
		{"Bearer secret ", true},
		{"Bearer other", false},
		{"secret", false},
		{"", false},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodPost, "/movies", nil)
		if c.header != "" {
			req.Header.Set("Authorization", c.header)
		}
		if srv.authorized(req) != c.allowed {
			t.Fatalf("authorized(%q) expected %v", c.header, c.allowed)
		}
	}
}

func TestAuthorized_OpenWithoutToken(t *testing.T) {
	srv := &Server{cfg: config.Config{}}
	req := httptest.NewRequest(http.MethodPost, "/movies", nil)
	if !srv.authorized(req) {
		t.Fatalf("empty AUTH_TOKEN must leave writes open")
	}
}

func TestValidateMovieRequest(t *testing.T) {
	tests := []struct {
		name string
		req  movieRequest
		ok   bool
	}{
		{"valid", movieRequest{Title: "X"}, true},
		{"blank title", movieRequest{Title: "  "}, false},
		{"negative year", movieRequest{Title: "X", ReleaseYear: -1}, false},
		{"negative budget", movieRequest{Title: "X", Budget: -1}, false},
		{"zero actor id", movieRequest{Title: "X", ActorIDs: []int64{0}}, false},
		{"zero genre id", movieRequest{Title: "X", GenreIDs: []int64{0}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := validateMovieRequest(tt.req); ok != tt.ok {
				t.Fatalf("validateMovieRequest(%+v) ok = %v, want %v", tt.req, ok, tt.ok)
			}
		})
	}
}
