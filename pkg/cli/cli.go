// Package cli provides the command-line interface for simtap.
package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/simtap/pkg/config"
	"github.com/devicelab-dev/simtap/pkg/logger"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "udid",
		Aliases: []string{"u"},
		Usage:   "Simulator UDID to target (defaults to the single booted simulator)",
		EnvVars: []string{"SIMTAP_UDID"},
	},
	&cli.StringFlag{
		Name:    "config",
		Usage:   "Path to a .simtap.yaml config file",
		EnvVars: []string{"SIMTAP_CONFIG"},
	},
	&cli.StringFlag{
		Name:    "log-file",
		Usage:   "Log file path",
		EnvVars: []string{"SIMTAP_LOG_FILE"},
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Usage:   "Mirror log output to stderr",
		EnvVars: []string{"SIMTAP_VERBOSE"},
	},
}

// Execute runs the CLI.
func Execute() {
	app := NewApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// NewApp builds the cli application. Split from Execute for tests.
func NewApp() *cli.App {
	return &cli.App{
		Name:    "simtap",
		Usage:   "Tap UI elements on an iOS simulator via its accessibility tree",
		Version: Version,
		Description: `simtap resolves a UI element (by accessibility identifier or label)
or an explicit coordinate into a pointer gesture and performs it on a
booted iOS simulator.

Examples:
  simtap tap --label "Sign In"
  simtap tap --id login-button --pre-delay 0.5 --post-delay 0.3
  simtap tap -x 100 -y 200
  simtap describe-ui | jq .
  simtap list-devices`,
		Flags: GlobalFlags,
		Commands: []*cli.Command{
			tapCommand,
			describeUICommand,
			listDevicesCommand,
			bootCommand,
			shutdownCommand,
			screenshotCommand,
		},
	}
}

// setup loads config and initializes logging for a command invocation. It
// returns the merged config and a cleanup func.
func setup(c *cli.Context) (*config.Config, func(), error) {
	var cfg *config.Config
	var err error
	if path := c.String("config"); path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return nil, nil, fmt.Errorf("load config %s: %w", path, err)
		}
	} else {
		cfg, err = config.LoadFromDir(config.GetHome())
		if err != nil {
			return nil, nil, fmt.Errorf("load config: %w", err)
		}
	}

	logPath := c.String("log-file")
	if logPath == "" {
		logPath = cfg.LogFile
	}
	if logPath == "" {
		logPath = config.GetLogFile()
	}
	if err := logger.Init(logPath); err != nil {
		return nil, nil, err
	}
	logger.SetVerbose(c.Bool("verbose"))

	return cfg, logger.Close, nil
}
