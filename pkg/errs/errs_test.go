package errs

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

var errSentinel = errors.New("sentinel")

func TestNewStack(t *testing.T) {
	if NewStack(nil) != nil {
		t.Fatal("NewStack(nil) must be nil")
	}

	err := NewStack(errSentinel)
	if !errors.Is(err, errSentinel) {
		t.Errorf("errors.Is(NewStack(err), err) = false")
	}
	if err.Error() != errSentinel.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), errSentinel.Error())
	}
	if trace := Trace(err); !strings.Contains(trace, "TestNewStack") {
		t.Errorf("Trace() = %q, want it to mention the caller", trace)
	}
}

func TestNewStackOnce(t *testing.T) {
	first := NewStack(errSentinel)
	wrapped := fmt.Errorf("outer: %w", first)

	if got := NewStack(wrapped); got != wrapped {
		t.Errorf("NewStack re-wrapped an error that already has a trace")
	}
	if Trace(errSentinel) != "" {
		t.Errorf("Trace() of a plain error must be empty")
	}
}
