package httpserver

import (
	"fmt"
	"net/http"
	"testing"
)

func BenchmarkHandleCreateMovie(b *testing.B) {
	srv := buildTestServer(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		body := []byte(fmt.Sprintf(`{"title":"Bench Movie %d","genreIds":[1,2]}`, i))
		rec := doRequest(srv, http.MethodPost, "/movies", body, true)
		if rec.Code != http.StatusCreated {
			b.Fatalf("unexpected status %d", rec.Code)
		}
	}
}
