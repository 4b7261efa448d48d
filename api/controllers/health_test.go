package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/angelmondragon/catalog-admin/pkg/config"
	"github.com/angelmondragon/catalog-admin/pkg/logger"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func TestHealthReadyReportsCacheDown(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}
	handler := HealthReady(cfg, logger.Nop(), stubPinger{err: errors.New("connection refused")})

	resp := httptest.NewRecorder()
	handler(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"cache":"down"`) {
		t.Fatalf("expected cache detail, got %s", resp.Body.String())
	}
}

func TestHealthReadyWithCache(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}
	handler := HealthReady(cfg, logger.Nop(), stubPinger{})

	resp := httptest.NewRecorder()
	handler(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"cache":"ok"`) {
		t.Fatalf("expected ready with cache ok, got %d %s", resp.Code, resp.Body.String())
	}
}

func TestCategorySizesFreeText(t *testing.T) {
	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/Bags/sizes", nil)
	CategorySizes(nil)(resp, req)

	if !strings.Contains(resp.Body.String(), `"sizes":[]`) {
		t.Fatalf("expected empty size list, got %s", resp.Body.String())
	}
}
