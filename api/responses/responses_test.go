package responses

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/catalog-admin/pkg/errors"
	"github.com/angelmondragon/catalog-admin/pkg/logger"
	"github.com/rs/zerolog"
)

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, map[string]string{"hello": "world"})

	if got := w.Code; got != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", got)
	}

	var body SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode success envelope: %v", err)
	}
	if body.Data.(map[string]any)["hello"] != "world" {
		t.Fatalf("unexpected payload %v", body.Data)
	}
}

func TestWriteErrorMapsTypedError(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "bad input").
		WithDetails(map[string]string{"field": "demo"})
	WriteError(context.Background(), nil, w, err)

	if got := w.Code; got != http.StatusBadRequest {
		t.Fatalf("expected status 400 but got %d", got)
	}

	var body ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.Error.Code != string(pkgerrors.CodeValidation) || body.Error.Message != "bad input" {
		t.Fatalf("unexpected error %+v", body.Error)
	}
	if body.Error.Details == nil {
		t.Fatalf("expected details in public payload")
	}
}

func TestWriteErrorDefaultsToInternalForUntrustedErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, errors.New("boom"))

	if got := w.Code; got != http.StatusInternalServerError {
		t.Fatalf("expected status 500 but got %d", got)
	}
	if strings.Contains(w.Body.String(), "boom") {
		t.Fatalf("internal error text must not leak: %s", w.Body.String())
	}
}

func TestWriteErrorLogsUpstreamStatus(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.DebugLevel, Output: buf})
	err := pkgerrors.Wrap(pkgerrors.CodeUpstreamStatus, errors.New("status 500"), "products create request failed").
		WithDetails(pkgerrors.UpstreamDetails{Status: 500, Body: "db down"})

	w := httptest.NewRecorder()
	WriteError(context.Background(), logg, w, err)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	if !strings.Contains(buf.String(), `"upstream_status":500`) {
		t.Fatalf("expected upstream status in log, got %s", buf.String())
	}
	var body ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Message != "catalog api rejected the request" {
		t.Fatalf("expected public message, got %q", body.Error.Message)
	}
}

func TestWriteAttachment(t *testing.T) {
	w := httptest.NewRecorder()
	WriteAttachment(w, "products.csv", "text/csv", []byte("sku\n"))
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="products.csv"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if w.Body.String() != "sku\n" {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}
