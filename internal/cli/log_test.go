package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/highway/pkg/observability"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("checked network") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("descend") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("descend") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))

			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Checked 6 cities")

	if !regexp.MustCompile(`Checked 6 cities \(\d+(\.\d+)?m?s\)`).MatchString(buf.String()) {
		t.Errorf("progress line = %q", buf.String())
	}
}

func TestCheckLogsProgress(t *testing.T) {
	isolate(t)
	var logs bytes.Buffer
	c := New(&logs, LogInfo)

	if _, _, err := runCommand(t, c, "6 3 1 4 2 5 3 6", "check", "-q", "--no-cache"); err != nil {
		t.Fatalf("check: %v", err)
	}
	out := logs.String()
	if !strings.Contains(out, "Checked 6 cities") {
		t.Errorf("missing progress line:\n%s", out)
	}
	if !strings.Contains(out, "unbuildable") {
		t.Errorf("missing runner summary:\n%s", out)
	}
}

func TestVerboseRegistersLogHooks(t *testing.T) {
	isolate(t)
	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	c.SetLogLevel(LogDebug)
	t.Cleanup(observability.Reset)

	if _, _, err := runCommand(t, c, "5 1 2 5", "check", "-q", "--no-cache"); err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(logs.String(), "check start") {
		t.Errorf("debug run should log pipeline hooks:\n%s", logs.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Fatal("loggerFromContext should fall back to the default logger")
	}

	custom := newLogger(&bytes.Buffer{}, log.InfoLevel)
	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}
