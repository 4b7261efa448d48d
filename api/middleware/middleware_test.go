package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/angelmondragon/catalog-admin/pkg/config"
	"github.com/angelmondragon/catalog-admin/pkg/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func newTestLogger(buf *bytes.Buffer) *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.DebugLevel, Output: buf})
}

func TestRequestIDAndLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := newTestLogger(buf)
	h := RequestID(logg)(Logging(logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	})))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/products", nil))

	id := w.Header().Get(requestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected generated uuid, got %q", id)
	}
	for _, want := range []string{`"status":201`, `"request_id":"` + id + `"`, `"path":"/api/v1/products"`, `"bytes":2`} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("expected %s in log %s", want, buf.String())
		}
	}
}

func TestRequestIDKeepsValidHeader(t *testing.T) {
	given := uuid.NewString()
	h := RequestID(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(requestIDHeader, given)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Header().Get(requestIDHeader) != given {
		t.Fatalf("expected request id to be reused")
	}
}

func TestRecovererWritesInternalError(t *testing.T) {
	buf := &bytes.Buffer{}
	h := Recoverer(newTestLogger(buf))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusInternalServerError || !strings.Contains(w.Body.String(), "INTERNAL_ERROR") {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}
	if !strings.Contains(buf.String(), "kaboom") {
		t.Fatalf("expected panic value logged")
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	h := CORS(config.CORSConfig{AllowedOrigins: []string{"http://admin.test"}})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	r := httptest.NewRequest(http.MethodOptions, "/api/v1/products", nil)
	r.Header.Set("Origin", "http://admin.test")
	r.Header.Set("Access-Control-Request-Method", "DELETE")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://admin.test" {
		t.Fatalf("expected allowed origin, got %q", got)
	}
}

func TestRequestIDReplacesMalformedHeader(t *testing.T) {
	var seen string
	h := RequestID(nil)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(requestIDHeader)
	}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(requestIDHeader, "<script>")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	got := w.Header().Get(requestIDHeader)
	if _, err := uuid.Parse(got); err != nil || got != seen {
		t.Fatalf("expected a fresh uuid shared with the handler, got %q / %q", got, seen)
	}
}
