package simulator

import (
	"errors"
	"testing"

	"github.com/devicelab-dev/simtap/pkg/core"
)

const simctlFixture = `{
	"devices": {
		"com.apple.CoreSimulator.SimRuntime.iOS-17-2": [
			{"name": "iPhone 15 Pro", "udid": "AAAA-1111", "state": "Booted", "isAvailable": true},
			{"name": "iPhone 15", "udid": "BBBB-2222", "state": "Shutdown", "isAvailable": true},
			{"name": "Broken", "udid": "CCCC-3333", "state": "Shutdown", "isAvailable": false}
		],
		"com.apple.CoreSimulator.SimRuntime.iOS-16-4": [
			{"name": "iPhone 14", "udid": "DDDD-4444", "state": "Shutdown", "isAvailable": true}
		]
	}
}`

func stubSimctl(t *testing.T, output string, err error) {
	t.Helper()
	orig := simctlRun
	simctlRun = func(args ...string) ([]byte, error) {
		return []byte(output), err
	}
	t.Cleanup(func() { simctlRun = orig })
}

func TestParseDeviceList(t *testing.T) {
	devices, err := parseDeviceList([]byte(simctlFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Unavailable devices are dropped; output is sorted runtime, then name.
	if len(devices) != 3 {
		t.Fatalf("got %d devices, want 3", len(devices))
	}
	if devices[0].Name != "iPhone 14" || devices[0].OSVersion != "16.4" {
		t.Errorf("devices[0] = %+v", devices[0])
	}
	if devices[1].Name != "iPhone 15" || devices[2].Name != "iPhone 15 Pro" {
		t.Errorf("name order: %q, %q", devices[1].Name, devices[2].Name)
	}
	if !devices[2].Booted() {
		t.Error("iPhone 15 Pro should be booted")
	}
}

func TestParseDeviceList_BadJSON(t *testing.T) {
	if _, err := parseDeviceList([]byte("not json")); err == nil {
		t.Error("expected parse error")
	}
}

func TestFind(t *testing.T) {
	stubSimctl(t, simctlFixture, nil)

	dev, err := Find("BBBB-2222")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dev.Name != "iPhone 15" {
		t.Errorf("Name = %q", dev.Name)
	}
}

func TestFind_NotFound(t *testing.T) {
	stubSimctl(t, simctlFixture, nil)

	_, err := Find("ZZZZ-9999")
	var exErr *core.ExecutionError
	if !errors.As(err, &exErr) {
		t.Fatalf("error = %T, want *core.ExecutionError", err)
	}
	if exErr.Code != "device_not_found" {
		t.Errorf("Code = %q", exErr.Code)
	}
}

func TestFindBooted_Single(t *testing.T) {
	stubSimctl(t, simctlFixture, nil)

	dev, err := FindBooted()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dev.UDID != "AAAA-1111" {
		t.Errorf("UDID = %q", dev.UDID)
	}
}

func TestFindBooted_None(t *testing.T) {
	stubSimctl(t, `{"devices":{}}`, nil)

	_, err := FindBooted()
	var exErr *core.ExecutionError
	if !errors.As(err, &exErr) {
		t.Fatalf("error = %T, want *core.ExecutionError", err)
	}
	if exErr.Code != "no_booted_device" {
		t.Errorf("Code = %q", exErr.Code)
	}
}

func TestFindBooted_Multiple(t *testing.T) {
	stubSimctl(t, `{
		"devices": {
			"com.apple.CoreSimulator.SimRuntime.iOS-17-2": [
				{"name": "A", "udid": "1", "state": "Booted", "isAvailable": true},
				{"name": "B", "udid": "2", "state": "Booted", "isAvailable": true}
			]
		}
	}`, nil)

	_, err := FindBooted()
	if err == nil {
		t.Fatal("expected error with two booted simulators")
	}
	var exErr *core.ExecutionError
	if !errors.As(err, &exErr) || exErr.Code != "no_booted_device" {
		t.Errorf("error = %v", err)
	}
}

func TestExtractOSVersion(t *testing.T) {
	tests := []struct {
		runtime string
		want    string
	}{
		{"com.apple.CoreSimulator.SimRuntime.iOS-17-2", "17.2"},
		{"com.apple.CoreSimulator.SimRuntime.iOS-16-4", "16.4"},
		{"com.apple.CoreSimulator.SimRuntime.watchOS-10-0", "10.0"},
		{"com.apple.CoreSimulator.SimRuntime.tvOS-17-0", "17.0"},
		{"something-unknown", ""},
	}

	for _, tt := range tests {
		if got := extractOSVersion(tt.runtime); got != tt.want {
			t.Errorf("extractOSVersion(%q) = %q, want %q", tt.runtime, got, tt.want)
		}
	}
}
