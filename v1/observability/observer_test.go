package observability

import (
	"errors"
	"testing"
)

func TestOperationContextStatus(t *testing.T) {
	if got := (OperationContext{}).Status(); got != "success" {
		t.Fatalf("expected success, got %q", got)
	}
	if got := (OperationContext{Error: errors.New("boom")}).Status(); got != "error" {
		t.Fatalf("expected error, got %q", got)
	}
}

func TestObserverFunc(t *testing.T) {
	var seen []OperationContext
	var obs Observer = ObserverFunc(func(ctx OperationContext) {
		seen = append(seen, ctx)
	})

	obs.ObserveOperation(OperationContext{Component: "inference", Operation: "complete"})

	if len(seen) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(seen))
	}
	if seen[0].Operation != "complete" {
		t.Fatalf("expected operation complete, got %q", seen[0].Operation)
	}
}
