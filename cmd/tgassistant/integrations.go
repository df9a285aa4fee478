package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alekspetrov/tgassistant/internal/integrations"
)

func newIntegrationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "integrations",
		Short: "Show the data returned by the mock calendar, mail and task integrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderIntegrations(cmd.Context(), cmd.OutOrStdout(), integrations.Mocks())
		},
	}
}

func renderIntegrations(ctx context.Context, w io.Writer, set integrations.Set) error {
	if set.Calendar != nil {
		events, err := set.Calendar.UpcomingEvents(ctx)
		if err != nil {
			return fmt.Errorf("calendar: %w", err)
		}
		fmt.Fprintln(w, "Calendar:")
		for _, e := range events {
			fmt.Fprintf(w, "  %s  %s\n", e.Start.Format("2006-01-02 15:04"), e.Summary)
		}
	}

	if set.Mailbox != nil {
		emails, err := set.Mailbox.RecentEmails(ctx)
		if err != nil {
			return fmt.Errorf("mailbox: %w", err)
		}
		fmt.Fprintln(w, "Mail:")
		for _, m := range emails {
			fmt.Fprintf(w, "  %s: %s (%s)\n", m.Sender, m.Subject, m.Snippet)
		}
	}

	if set.Tasks != nil {
		tasks, err := set.Tasks.OpenTasks(ctx)
		if err != nil {
			return fmt.Errorf("tasks: %w", err)
		}
		fmt.Fprintln(w, "Tasks:")
		for _, t := range tasks {
			fmt.Fprintf(w, "  %s  due %s\n", t.Title, t.Due.Format("2006-01-02"))
		}
	}

	return nil
}
