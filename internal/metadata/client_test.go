package metadata

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClientFetch(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))
		switch r.URL.Query().Get("title") {
		case "Heat":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"title":"Heat","director":"Michael Mann","writer":"  ","budget":60000000,"country":"USA"}`))
		default:
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		}
	}))
	defer upstream.Close()

	client, err := NewHTTPClient(upstream.URL, "test-key", 2*time.Second, log.New(io.Discard, "", 0))
	require.NoError(t, err)

	result, err := client.Fetch(context.Background(), "Heat")
	require.NoError(t, err)
	require.NotNil(t, result.Director)
	assert.Equal(t, "Michael Mann", *result.Director)
	assert.Nil(t, result.Writer, "blank upstream fields must normalize to nil")
	require.NotNil(t, result.Budget)
	assert.Equal(t, int64(60000000), *result.Budget)

	_, err = client.Fetch(context.Background(), "Unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPClientFetch_UpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	client, err := NewHTTPClient(upstream.URL, "", 2*time.Second, log.New(io.Discard, "", 0))
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), "Anything")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func FuzzConvertToResult(f *testing.F) {
	f.Add("Michael Mann", "", "Art Linson", int64(1000), "USA")

	f.Fuzz(func(t *testing.T, director, writer, producer string, budget int64, country string) {
		resp := apiResponse{
			Director: optionalString(director),
			Writer:   optionalString(writer),
			Producer: optionalString(producer),
			Budget:   &budget,
			Country:  optionalString(country),
		}
		result := convertToResult(resp)
		if result == nil {
			t.Fatalf("convertToResult returned nil")
		}
		for _, field := range []*string{result.Director, result.Writer, result.Producer, result.Country} {
			if field != nil && *field == "" {
				t.Fatalf("normalized field must never be empty")
			}
		}
	})
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
