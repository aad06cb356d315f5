package health

import "testing"

func TestStatus(t *testing.T) {
	got := NewService("2025.1").Status()
	if got["status"] != "OK" || got["message"] != Message {
		t.Fatalf("unexpected status %v", got)
	}
}

func TestReady(t *testing.T) {
	payload, ok := NewService("2025.1").Ready()
	if !ok || payload["catalogVersion"] != "2025.1" {
		t.Fatalf("expected ready with version, got %v %v", payload, ok)
	}
	if _, ok := NewService("").Ready(); ok {
		t.Fatalf("expected not ready without catalog")
	}
	var nilSvc *Service
	if _, ok := nilSvc.Ready(); ok {
		t.Fatalf("expected nil service not ready")
	}
}
