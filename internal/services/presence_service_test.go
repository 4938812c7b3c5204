package services

import "testing"

func TestPresenceCount(t *testing.T) {
	svc := NewPresenceService(287)

	if got := svc.Count(); got != 287 {
		t.Fatalf("empty tracker must report the baseline, got %d", got)
	}

	svc.Ping("visitor-a")
	svc.Ping("visitor-b")
	if got := svc.Count(); got != 289 {
		t.Fatalf("expected 289 got %d", got)
	}

	// a repeat heartbeat refreshes, it does not double count
	if got := svc.Ping("visitor-a"); got != 289 {
		t.Fatalf("expected 289 after repeat ping, got %d", got)
	}
}
