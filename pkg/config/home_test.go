package config

import (
	"path/filepath"
	"testing"
)

func TestGetHome_EnvVariable(t *testing.T) {
	ResetHome()
	t.Cleanup(ResetHome)
	t.Setenv(envHome, "/opt/simtap")

	if got := GetHome(); got != "/opt/simtap" {
		t.Errorf("GetHome() = %q, want /opt/simtap", got)
	}
}

func TestGetHome_Cached(t *testing.T) {
	ResetHome()
	t.Cleanup(ResetHome)
	t.Setenv(envHome, "/opt/simtap")

	first := GetHome()
	t.Setenv(envHome, "/opt/other")
	second := GetHome()

	if first != second {
		t.Errorf("GetHome() should be cached: %q then %q", first, second)
	}
}

func TestGetLogFile(t *testing.T) {
	ResetHome()
	t.Cleanup(ResetHome)
	t.Setenv(envHome, "/opt/simtap")

	want := filepath.Join("/opt/simtap", "simtap.log")
	if got := GetLogFile(); got != want {
		t.Errorf("GetLogFile() = %q, want %q", got, want)
	}
}
