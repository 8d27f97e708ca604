package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLogger_CachesPerComponent(t *testing.T) {
	a := NewLogger("alpha")
	b := NewLogger("alpha")
	if a != b {
		t.Fatalf("NewLogger returned different entries for the same component")
	}
	if got := a.Data["component"]; got != "alpha" {
		t.Fatalf("component field = %v, want alpha", got)
	}
	if NewLogger("beta") == a {
		t.Fatalf("NewLogger returned the same entry for different components")
	}
}

func TestSetup_WritesToFileAtLevel(t *testing.T) {
	t.Cleanup(Close)

	early := NewLogger("early")

	path := filepath.Join(t.TempDir(), "nested", "carousel.log")
	if err := Setup(path, "debug"); err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	if Level() != logrus.DebugLevel {
		t.Fatalf("Level = %v, want debug", Level())
	}

	// Entries created before Setup follow the new output.
	early.Debug("hello from early")
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "hello from early") {
		t.Fatalf("log file = %q, want it to contain the message", data)
	}
	if !strings.Contains(string(data), "component=early") {
		t.Fatalf("log file = %q, want component field", data)
	}
}

func TestSetup_BadLevelFallsBackToInfo(t *testing.T) {
	t.Cleanup(Close)

	if err := Setup("", "loud"); err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	if Level() != logrus.InfoLevel {
		t.Fatalf("Level = %v, want info", Level())
	}
}
