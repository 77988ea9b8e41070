package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kunstwinkel/zoeker/internal/domain"
	logpkg "github.com/kunstwinkel/zoeker/internal/logger"
	searchuc "github.com/kunstwinkel/zoeker/internal/search"
)

type mockSearcher struct {
	resp *searchuc.Response
	err  error
}

func (m *mockSearcher) Search(_ context.Context, _ string) (*searchuc.Response, error) {
	return m.resp, m.err
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func newTestRouter(searcher Searcher, pinger Pinger) http.Handler {
	s := NewServer(searcher, pinger, zap.NewNop())
	r := chi.NewRouter()
	s.Routes(r)
	return r
}

func doSearch(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleSearch_OK(t *testing.T) {
	resp := &searchuc.Response{
		Success: true,
		Query:   searchuc.QueryEcho{Original: "kat beeld"},
		Results: searchuc.Results{Total: 1, Showing: 1, Advice: "advies",
			Items: []searchuc.Item{{ID: "p1", Similarity: 0.8}}},
	}
	h := newTestRouter(&mockSearcher{resp: resp}, &mockPinger{})

	rec := doSearch(t, h, `{"query":"kat beeld"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got searchuc.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !got.Success || got.Results.Total != 1 || got.Results.Advice == "" {
		t.Errorf("unexpected payload: %+v", got)
	}
}

func TestHandleSearch_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid query", domain.ErrInvalidQuery, http.StatusBadRequest},
		{"rate limited", domain.ErrEmbeddingRateLimited, http.StatusTooManyRequests},
		{"embedding down", domain.ErrEmbeddingUnavailable, http.StatusBadGateway},
		{"store down", domain.ErrStoreUnavailable, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(&mockSearcher{err: tt.err}, &mockPinger{})

			rec := doSearch(t, h, `{"query":"x"}`)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if body.Success {
				t.Error("error response has success=true")
			}
			if body.Error == "" {
				t.Error("error response has empty message")
			}
		})
	}
}

func TestHandleSearch_UsesRequestScopedLogger(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	reqLogger := zap.New(core).With(zap.String("request_id", "req-1"))

	s := NewServer(&mockSearcher{err: errors.New("boom")}, &mockPinger{}, zap.NewNop())
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := logpkg.ContextWithLogger(req.Context(), reqLogger)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	s.Routes(r)

	doSearch(t, r, `{"query":"x"}`)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["request_id"]; got != "req-1" {
		t.Errorf("request_id = %v, want req-1", got)
	}
}

func TestHandleSearch_BadBody(t *testing.T) {
	h := newTestRouter(&mockSearcher{}, &mockPinger{})

	rec := doSearch(t, h, `{"query":`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	h := newTestRouter(&mockSearcher{}, &mockPinger{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestHandleHealth_StoreDown(t *testing.T) {
	h := newTestRouter(&mockSearcher{}, &mockPinger{err: errors.New("no route")})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
