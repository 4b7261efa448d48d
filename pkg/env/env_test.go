package env

import "testing"

func TestGetPrefersPrefixedKey(t *testing.T) {
	t.Setenv("LOG_FORMAT", "console")
	if got := Get("LOG_FORMAT", "json"); got != "console" {
		t.Fatalf("expected bare key value, got %q", got)
	}

	t.Setenv("CATALOG_LOG_FORMAT", "json")
	if got := Get("LOG_FORMAT", "console"); got != "json" {
		t.Fatalf("expected prefixed key to win, got %q", got)
	}
	if got := Get("CATALOG_LOG_FORMAT", ""); got != "json" {
		t.Fatalf("prefixed lookups should work too, got %q", got)
	}
}

func TestGetFallback(t *testing.T) {
	if got := Get("CATALOG_TEST_UNSET_KEY", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}
