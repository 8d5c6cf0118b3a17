// Command quotebot replies to a subreddit's daily discussion post with a
// random quote every few hours.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var globalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "profile",
		Usage:   "config profile, loaded from <config-dir>/<profile>.yaml",
		Value:   "local",
		EnvVars: []string{"APP_ENVIRONMENT"},
	},
	&cli.StringFlag{
		Name:  "config-dir",
		Usage: "directory holding base.yaml and the profile files",
		Value: "configs",
	},
	&cli.BoolFlag{
		Name:    "dry-run",
		Usage:   "choose and log quotes without replying",
		EnvVars: []string{"QUOTEBOT_DRY_RUN"},
	},
}

func newApp() *cli.App {
	info := resolveBuildInfo()

	return &cli.App{
		Name:    "quotebot",
		Usage:   "post a random quote to the daily discussion thread",
		Version: info.Version,
		Flags:   globalFlags,
		Before:  loadDotEnv,
		Action:  runBot,
		Commands: []*cli.Command{
			cmdRun,
			cmdLocate,
			cmdCheckConfig,
		},
	}
}

// loadDotEnv copies a .env file into the environment when one exists.
// Variables already set win.
func loadDotEnv(*cli.Context) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	return nil
}
