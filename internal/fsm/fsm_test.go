package fsm

import "testing"

func TestCanTransition(t *testing.T) {
	if !CanTransition(StatusSubmitted, StatusPending) {
		t.Fatal("expected submitted -> pending to be allowed")
	}
	if !CanTransition(StatusPending, StatusApproved) {
		t.Fatal("expected pending -> approved to be allowed")
	}
	if !CanTransition(StatusPending, StatusRejected) {
		t.Fatal("expected pending -> rejected to be allowed")
	}
	if CanTransition(StatusApproved, StatusPending) {
		t.Fatal("approved must be terminal")
	}
	if CanTransition(StatusRejected, StatusApproved) {
		t.Fatal("rejected must be terminal")
	}
	if CanTransition(StatusSubmitted, StatusApproved) {
		t.Fatal("submitted must pass through pending")
	}
	if !CanTransition(StatusPending, StatusPending) {
		t.Fatal("self transition must be allowed")
	}
}

func TestStep(t *testing.T) {
	got, err := Step(StatusPending, StatusApproved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != StatusApproved {
		t.Fatalf("got %q, want %q", got, StatusApproved)
	}

	got, err = Step(StatusApproved, StatusRejected)
	if err != ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if got != StatusApproved {
		t.Fatalf("failed step must keep the current status, got %q", got)
	}
}
