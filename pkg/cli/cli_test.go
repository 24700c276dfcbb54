package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/devicelab-dev/simtap/pkg/config"
	"github.com/devicelab-dev/simtap/pkg/device"
)

// testApp builds the real app with a stubbed device layer and an isolated
// home directory, and returns the buffer commands write to.
func testApp(t *testing.T, dev device.Device) (*bytes.Buffer, func(args ...string) error) {
	t.Helper()

	config.ResetHome()
	t.Cleanup(config.ResetHome)
	t.Setenv("SIMTAP_HOME", t.TempDir())

	origFind, origNew := findBootedUDID, newDevice
	t.Cleanup(func() { findBootedUDID, newDevice = origFind, origNew })
	findBootedUDID = func() (string, error) { return "FAKE-UDID", nil }
	newDevice = func(udid, idbPath string) device.Device { return dev }

	var out bytes.Buffer
	app := NewApp()
	app.Writer = &out

	return &out, func(args ...string) error {
		return app.Run(append([]string{"simtap"}, args...))
	}
}

func TestNewApp_Commands(t *testing.T) {
	app := NewApp()

	want := []string{"tap", "describe-ui", "list-devices", "boot", "shutdown", "screenshot"}
	for _, name := range want {
		if app.Command(name) == nil {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestTapCommand_EndToEnd(t *testing.T) {
	dev := &fakeDevice{
		snapshot: []byte(`[{"type":"AXButton","frame":{"x":10,"y":10,"width":20,"height":20},"AXLabel":"OK"}]`),
	}
	out, run := testApp(t, dev)

	if err := run("tap", "--label", "OK"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(dev.dispatched) != 1 {
		t.Fatalf("dispatched %d sequences, want 1", len(dev.dispatched))
	}
	if !strings.Contains(out.String(), "Tapped (20, 20)") {
		t.Errorf("output = %q", out.String())
	}
}

func TestTapCommand_ValidationError(t *testing.T) {
	dev := &fakeDevice{}
	_, run := testApp(t, dev)

	err := run("tap")
	if err == nil {
		t.Fatal("expected error without a target")
	}
	if !strings.Contains(err.Error(), "specify a target") {
		t.Errorf("error = %v", err)
	}
	if len(dev.dispatched) != 0 {
		t.Error("nothing may be dispatched on validation failure")
	}
}

func TestTapCommand_AmbiguousIsFatal(t *testing.T) {
	dev := &fakeDevice{
		snapshot: []byte(`[{"AXLabel":"OK","frame":{"x":0,"y":0,"width":10,"height":10}},
			{"AXLabel":"OK","frame":{"x":20,"y":20,"width":10,"height":10}}]`),
	}
	_, run := testApp(t, dev)

	err := run("tap", "--label", "OK")
	if err == nil {
		t.Fatal("expected ambiguous match error")
	}
	if !strings.Contains(err.Error(), "2 elements match") {
		t.Errorf("error = %v", err)
	}
	if len(dev.dispatched) != 0 {
		t.Error("nothing may be dispatched on an ambiguous match")
	}
}

func TestDescribeUICommand(t *testing.T) {
	dev := &fakeDevice{
		snapshot: []byte(`{"type":"AXWindow","children":[{"AXLabel":"Hello"}]}`),
	}
	out, run := testApp(t, dev)

	if err := run("describe-ui", "--compact"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, `"AXLabel":"Hello"`) {
		t.Errorf("output = %q", got)
	}
	// Object payload is re-emitted as a one-root forest.
	if !strings.HasPrefix(strings.TrimSpace(got), "[") {
		t.Errorf("output should be a JSON array, got %q", got)
	}
}

func TestDescribeUICommand_Malformed(t *testing.T) {
	dev := &fakeDevice{snapshot: []byte(`"nope"`)}
	_, run := testApp(t, dev)

	if err := run("describe-ui"); err == nil {
		t.Fatal("expected malformed tree error")
	}
}
