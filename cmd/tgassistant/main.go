package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alekspetrov/tgassistant/internal/config"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// The missing token has already been logged.
		if !errors.Is(err, config.ErrMissingBotToken) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	start := newStartCmd()

	rootCmd := &cobra.Command{
		Use:   "tgassistant",
		Short: "Telegram AI assistant",
		Long: `tgassistant answers Telegram text and voice messages with an OpenAI model.
Without a full set of credentials it replies with canned mock answers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          start.RunE,
	}
	rootCmd.Flags().AddFlagSet(start.Flags())

	rootCmd.AddCommand(
		start,
		newDoctorCmd(),
		newIntegrationsCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show tgassistant version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tgassistant v%s\n", version)
		},
	}
}
