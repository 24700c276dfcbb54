// Package simulator enumerates and boots iOS simulators through xcrun
// simctl. simtap only needs enough lifecycle control to pick a booted
// target and to boot one on request.
package simulator

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/devicelab-dev/simtap/pkg/core"
	"github.com/devicelab-dev/simtap/pkg/logger"
)

// simctlRun executes one simctl invocation. Swapped out in tests.
var simctlRun = func(args ...string) ([]byte, error) {
	if _, err := FindSimctlBinary(); err != nil {
		return nil, err
	}
	out, err := exec.Command("xcrun", append([]string{"simctl"}, args...)...).CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("simctl %s: %s", args[0], strings.TrimSpace(string(out)))
	}
	return out, nil
}

// FindSimctlBinary verifies that xcrun/simctl is available.
func FindSimctlBinary() (string, error) {
	path, err := exec.LookPath("xcrun")
	if err != nil {
		return "", fmt.Errorf("xcrun not found; install Xcode Command Line Tools: xcode-select --install")
	}
	return path, nil
}

// simctlDevicesOutput represents the JSON output from simctl list devices.
type simctlDevicesOutput struct {
	Devices map[string][]simctlDevice `json:"devices"`
}

type simctlDevice struct {
	Name        string `json:"name"`
	UDID        string `json:"udid"`
	State       string `json:"state"`
	IsAvailable bool   `json:"isAvailable"`
}

// parseDeviceList converts simctl JSON output into Device values, dropping
// unavailable entries. Output order is stable: runtime, then name.
func parseDeviceList(data []byte) ([]Device, error) {
	var out simctlDevicesOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse simctl output: %w", err)
	}

	var devices []Device
	for runtime, devs := range out.Devices {
		osVersion := extractOSVersion(runtime)
		for _, dev := range devs {
			if !dev.IsAvailable {
				continue
			}
			devices = append(devices, Device{
				Name:        dev.Name,
				UDID:        dev.UDID,
				Runtime:     runtime,
				OSVersion:   osVersion,
				State:       dev.State,
				IsAvailable: dev.IsAvailable,
			})
		}
	}

	sort.Slice(devices, func(i, j int) bool {
		if devices[i].Runtime != devices[j].Runtime {
			return devices[i].Runtime < devices[j].Runtime
		}
		return devices[i].Name < devices[j].Name
	})
	return devices, nil
}

// List returns all available iOS simulators.
func List() ([]Device, error) {
	out, err := simctlRun("list", "devices", "available", "-j")
	if err != nil {
		return nil, err
	}

	devices, err := parseDeviceList(out)
	if err != nil {
		return nil, err
	}
	logger.Debug("Found %d available simulators", len(devices))
	return devices, nil
}

// Find returns the simulator with the given UDID.
func Find(udid string) (Device, error) {
	devices, err := List()
	if err != nil {
		return Device{}, err
	}
	for _, dev := range devices {
		if dev.UDID == udid {
			return dev, nil
		}
	}
	return Device{}, core.ErrDeviceNotFound.WithDetails(map[string]interface{}{"udid": udid})
}

// FindBooted returns the single booted simulator. Zero booted simulators is
// an error; more than one is too, since the caller gave no UDID to pick by.
func FindBooted() (Device, error) {
	devices, err := List()
	if err != nil {
		return Device{}, err
	}

	var booted []Device
	for _, dev := range devices {
		if dev.Booted() {
			booted = append(booted, dev)
		}
	}

	switch len(booted) {
	case 0:
		return Device{}, core.ErrNoBootedDevice
	case 1:
		return booted[0], nil
	default:
		return Device{}, core.ErrNoBootedDevice.WithMessage(
			fmt.Sprintf("%d simulators are booted; specify one with --udid", len(booted)))
	}
}

// WaitForBoot waits for a simulator to reach "Booted" state.
func WaitForBoot(udid string, timeout time.Duration) error {
	logger.Info("Waiting for simulator boot: %s", udid)
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for time.Now().Before(deadline) {
		dev, err := Find(udid)
		if err == nil && dev.Booted() {
			logger.Info("Simulator booted: %s", udid)
			return nil
		}
		<-ticker.C
	}

	return core.ErrBootTimeout.WithDetails(map[string]interface{}{"udid": udid, "timeout": timeout.String()})
}

// Boot boots an iOS simulator and waits for it to be ready.
func Boot(udid string, timeout time.Duration) error {
	logger.Info("Booting simulator: %s", udid)

	if out, err := simctlRun("boot", udid); err != nil {
		// Booting an already-booted simulator is not an error
		if strings.Contains(string(out), "current state: Booted") {
			logger.Info("Simulator already booted: %s", udid)
			return nil
		}
		return err
	}

	return WaitForBoot(udid, timeout)
}

// Shutdown gracefully shuts down a simulator.
func Shutdown(udid string) error {
	logger.Info("Shutting down simulator: %s", udid)

	if out, err := simctlRun("shutdown", udid); err != nil {
		if strings.Contains(string(out), "current state: Shutdown") {
			logger.Info("Simulator already shutdown: %s", udid)
			return nil
		}
		return err
	}
	return nil
}

// extractOSVersion extracts version from runtime string.
// e.g., "com.apple.CoreSimulator.SimRuntime.iOS-17-2" -> "17.2"
func extractOSVersion(runtime string) string {
	for _, prefix := range []string{"iOS-", "watchOS-", "tvOS-", "xrOS-"} {
		if idx := strings.LastIndex(runtime, prefix); idx != -1 {
			version := runtime[idx+len(prefix):]
			return strings.ReplaceAll(version, "-", ".")
		}
	}
	return ""
}
