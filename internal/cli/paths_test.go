package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".config", appName)
	if dir != expected {
		t.Errorf("configDir() = %q, want %q", dir, expected)
	}
}

func TestConfigDirXDG(t *testing.T) {
	customConfig := "/tmp/custom-config"
	t.Setenv("XDG_CONFIG_HOME", customConfig)

	dir, err := configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}

	expected := filepath.Join(customConfig, appName)
	if dir != expected {
		t.Errorf("configDir() with XDG_CONFIG_HOME = %q, want %q", dir, expected)
	}
}

func TestConfigCandidatesOrder(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	got := configCandidates()
	if len(got) < 3 {
		t.Fatalf("configCandidates() = %v, want at least the working directory files", got)
	}
	if got[0] != "multilayer.toml" {
		t.Errorf("first candidate = %q, want multilayer.toml", got[0])
	}
	last := got[len(got)-1]
	if !strings.HasPrefix(last, filepath.Join("/tmp/xdg", appName)) {
		t.Errorf("last candidate = %q, want it under the XDG config dir", last)
	}
}
