package wlerrors

import (
	"errors"
	"testing"
)

func TestLatchFirstWins(t *testing.T) {
	var l Latch
	first := &ProtocolError{ObjectID: 10, Code: 1, Description: "defunct_surfaces"}
	second := &ProtocolError{ObjectID: 10, Code: 2, Description: "ignored"}

	if fired := l.Raise(first); !fired {
		t.Fatalf("expected first Raise to fire")
	}
	if fired := l.Raise(second); fired {
		t.Fatalf("expected second Raise to be swallowed")
	}
	if l.Err() != first {
		t.Fatalf("expected latched error to be the first one raised")
	}
}

func TestHandlerErrorUnwrapsToCause(t *testing.T) {
	cause := &ProtocolError{ObjectID: 1, Code: CodeInvalidMethod, Description: "bad opcode"}
	wrapped := &HandlerError{Interface: "xdg_wm_base", Request: "destroy", Cause: cause}

	var pe *ProtocolError
	if !errors.As(wrapped, &pe) {
		t.Fatalf("expected errors.As to find the wrapped ProtocolError")
	}
	if pe.Code != CodeInvalidMethod {
		t.Fatalf("unexpected code: %d", pe.Code)
	}
}

func TestLatchNotLatchedInitially(t *testing.T) {
	var l Latch
	if l.Latched() {
		t.Fatalf("expected fresh latch to be unlatched")
	}
}
