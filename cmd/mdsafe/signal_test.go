package main

// Notes:
// - notifyContext: we test cancellation through stop() and the parent.
//   Real signal delivery is platform-specific and not exercised.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"testing"
)

func TestNotifyContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cancel func(stop, cancelParent context.CancelFunc)
		done   bool
	}{
		{"live until cancelled", func(_, _ context.CancelFunc) {}, false},
		{"stop cancels", func(stop, _ context.CancelFunc) { stop() }, true},
		{"parent cancels", func(_, cancelParent context.CancelFunc) { cancelParent() }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parent, cancelParent := context.WithCancel(context.Background())
			defer cancelParent()
			ctx, stop := notifyContext(parent)
			defer stop()

			tt.cancel(stop, cancelParent)

			if got := ctx.Err() != nil; got != tt.done {
				t.Errorf("cancelled = %v, want %v", got, tt.done)
			}
		})
	}
}
