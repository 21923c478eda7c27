package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNotReadyByDefault(t *testing.T) {
	state := NewState()

	rec := httptest.NewRecorder()
	Handler(state)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "not ready" {
		t.Errorf("status field = %q, want %q", body["status"], "not ready")
	}
}

func TestReadyAfterSetReady(t *testing.T) {
	state := NewState()
	state.SetReady()

	rec := httptest.NewRecorder()
	Handler(state)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ready" {
		t.Errorf("status field = %q, want %q", body["status"], "ready")
	}
	if body["timestamp"] == "" {
		t.Error("expected timestamp in response")
	}
}
