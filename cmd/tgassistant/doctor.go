package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alekspetrov/tgassistant/internal/banner"
	"github.com/alekspetrov/tgassistant/internal/health"
)

func newDoctorCmd() *cobra.Command {
	var (
		opts    configOptions
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check credentials and configuration",
		Long: `Run health checks on credentials and settings.

Shows which features are live, which fall back to mock data and how to fix
missing requirements.

Examples:
  tgassistant doctor           # Run all checks
  tgassistant doctor --verbose # Show fix suggestions`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			renderDoctor(cmd.OutOrStdout(), health.RunChecks(cfg), verbose)
			return nil
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show fix suggestions")

	return cmd
}

func renderDoctor(w io.Writer, report *health.HealthReport, verbose bool) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "tgassistant Health Check")
	fmt.Fprintln(w, "========================")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Requirements:")
	for _, c := range report.Checks {
		symbol := banner.StatusStyle(c.Status).Render(c.Status.Symbol())
		fmt.Fprintf(w, "  %s %-12s %s\n", symbol, c.Name, c.Message)
		if verbose && c.Fix != "" && c.Status != health.StatusOK {
			fmt.Fprintf(w, "                 → %s\n", c.Fix)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Features:")
	for _, f := range report.Features {
		symbol := banner.StatusStyle(f.Status).Render(f.Status.Symbol())
		note := ""
		if f.Note != "" {
			note = " (" + f.Note + ")"
		}
		fmt.Fprintf(w, "  %s %-10s%s\n", symbol, f.Name, note)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Mode: %s\n", report.Mode)
	if report.Ready() {
		fmt.Fprintln(w, "✅ Ready to start")
	} else {
		fmt.Fprintln(w, "❌ Not ready, fix the requirements above")
	}
	fmt.Fprintln(w)
}
