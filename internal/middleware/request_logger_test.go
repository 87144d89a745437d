package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	handler := RequestLogger(zap.New(core).Sugar())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/weather?city=Paris", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if _, err := uuid.Parse(rr.Header().Get(RequestIDHeader)); err != nil {
		t.Errorf("Expected a generated request id, got %q", rr.Header().Get(RequestIDHeader))
	}
	if logs.Len() != 1 {
		t.Fatalf("Expected one log entry, got %d", logs.Len())
	}
	fields := logs.All()[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) {
		t.Errorf("Expected status 418, got %v", fields["status"])
	}
	if fields["ip"] != "203.0.113.7" {
		t.Errorf("Expected ip 203.0.113.7, got %v", fields["ip"])
	}
	if fields["path"] != "/weather" {
		t.Errorf("Expected path /weather, got %v", fields["path"])
	}
}

func TestRequestLogger_ReusesClientID(t *testing.T) {
	handler := RequestLogger(zap.NewNop().Sugar())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, id)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get(RequestIDHeader); got != id {
		t.Errorf("Expected request id %s, got %s", id, got)
	}
}

func TestGetIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	if ip := getIP(req); ip != "192.0.2.1" {
		t.Errorf("Expected 192.0.2.1, got %s", ip)
	}

	req.RemoteAddr = "not-an-addr"
	if ip := getIP(req); ip != "not-an-addr" {
		t.Errorf("Expected fallback to RemoteAddr, got %s", ip)
	}
}
