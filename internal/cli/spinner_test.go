package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerInteractive(t *testing.T) {
	var buf bytes.Buffer
	stop := startSpinner(context.Background(), &buf, true, "Checking highways...")
	stop()

	out := buf.String()
	if !strings.Contains(out, "Checking highways...") {
		t.Errorf("spinner output missing message: %q", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("spinner should end by clearing the line: %q", out)
	}
}

func TestSpinnerNonInteractiveWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	stop := startSpinner(context.Background(), &buf, false, "Checking highways...")
	stop()

	if buf.Len() != 0 {
		t.Errorf("non-interactive spinner wrote %q", buf.String())
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	stop := startSpinner(context.Background(), &buf, true, "Rendering network...")
	stop()
	n := buf.Len()
	stop()
	stop()
	if buf.Len() != n {
		t.Error("repeated stop should not write again")
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var buf bytes.Buffer
	stop := startSpinner(ctx, &buf, true, "Checking highways...")

	cancel()
	done := make(chan struct{})
	go func() {
		stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stop did not return after context cancellation")
	}
}

func TestCheckMachineOutputHasNoSpinner(t *testing.T) {
	for _, flag := range []string{"--json", "--quiet"} {
		t.Run(flag, func(t *testing.T) {
			isolate(t)
			_, stderr, err := runCommand(t, New(&bytes.Buffer{}, LogInfo), "5 1 2 5", "check", "--no-cache", flag)
			if err != nil {
				t.Fatalf("check: %v", err)
			}
			if strings.Contains(stderr, "Checking highways") {
				t.Errorf("%s run drew a spinner: %q", flag, stderr)
			}
		})
	}
}
