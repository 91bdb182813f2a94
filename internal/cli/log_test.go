package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/relgraph/pkg/interaction"
	"github.com/matzehuels/relgraph/pkg/observability"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level     log.Level
		wantDebug bool
		wantInfo  bool
	}{
		{LogInfo, false, true},
		{LogDebug, true, true},
		{log.WarnLevel, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)

			logger.Debug("layout start")
			if got := strings.Contains(buf.String(), "layout start"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			logger.Info("loaded graph")
			if got := strings.Contains(buf.String(), "loaded graph"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
		})
	}
}

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, LogInfo).Info("ready")

	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(buf.String()) {
		t.Errorf("output = %q, want HH:MM:SS.cc prefix", buf.String())
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.Logger.Debug("hidden")
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("output = %q, want only the message after SetLogLevel", buf.String())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, LogInfo)).done("Rendered 2 frame(s)")

	if !regexp.MustCompile(`Rendered 2 frame\(s\) \(\d+(\.\d+)?m?s\)`).MatchString(buf.String()) {
		t.Errorf("output = %q, want message with elapsed time", buf.String())
	}
}

func TestLoggerContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, LogInfo)

	if got := loggerFromContext(withLogger(context.Background(), logger)); got != logger {
		t.Error("loggerFromContext should return the attached logger")
	}
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("loggerFromContext without a logger should return log.Default()")
	}
}

func TestInstallHooks(t *testing.T) {
	var buf bytes.Buffer
	installHooks(newLogger(&buf, LogDebug))
	t.Cleanup(observability.Reset)

	interaction.NewCoordinator(nil).Select("ada")

	for _, want := range []string{"interaction", "event=select", "camera", "target=ada"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log output = %q, want %q", buf.String(), want)
		}
	}
}

func TestShortKey(t *testing.T) {
	if got := shortKey("frame:abc"); got != "frame:abc" {
		t.Errorf("shortKey() = %v, want unchanged", got)
	}
	long := "frame:0123456789abcdef0123456789abcdef"
	if got := shortKey(long); len(got) != 24 {
		t.Errorf("len(shortKey()) = %d, want 24", len(got))
	}
}
