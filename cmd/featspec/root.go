package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cgast/featspec/internal/config"
	"github.com/cgast/featspec/pkg/browser"
	"github.com/cgast/featspec/pkg/events"
	"github.com/cgast/featspec/pkg/runner"
)

var rootCmd = &cobra.Command{
	Use:   "featspec <spec.yaml> [spec.yaml...]",
	Short: "Run declarative browser feature specs",
	Long: `featspec runs YAML feature specs against a real browser and reports
pass/fail per scenario. Active specs gate the exit code; draft specs
are allowed to fail. Configuration is environment-only (FEATSPEC_*).`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.FromEnv()
		if err != nil {
			return err
		}

		bus := events.NewBus()
		engine := browser.NewChromeEngine(browser.ChromeOptions{
			Headless: cfg.Headless,
			BaseURL:  cfg.BaseURL,
		})

		r := runner.New(engine, cfg, bus, cmd.OutOrStdout())
		sum := r.Run(cmd.Context(), args)
		sum.Print(cmd.OutOrStdout())

		if cfg.Trace {
			dumpTrace(bus)
		}

		switch {
		case sum.Active.Failed > 0 && sum.LoadFailures > 0:
			return fmt.Errorf("%d active scenario(s) failed, %d spec file(s) failed to load", sum.Active.Failed, sum.LoadFailures)
		case sum.Active.Failed > 0:
			return fmt.Errorf("%d active scenario(s) failed", sum.Active.Failed)
		case sum.LoadFailures > 0:
			return fmt.Errorf("%d spec file(s) failed to load", sum.LoadFailures)
		}
		return nil
	},
}

// dumpTrace writes the run's event history as JSON lines to stderr.
func dumpTrace(bus *events.Bus) {
	enc := json.NewEncoder(os.Stderr)
	for _, e := range bus.History(time.Time{}) {
		if err := enc.Encode(e); err != nil {
			fmt.Fprintf(os.Stderr, "trace: %v\n", err)
			return
		}
	}
}
