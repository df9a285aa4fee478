package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alekspetrov/tgassistant/internal/health"
	"github.com/alekspetrov/tgassistant/internal/integrations"
)

// TestStartCommandFlags verifies all expected flags exist on the start command
func TestStartCommandFlags(t *testing.T) {
	cmd := newStartCmd()

	expectedFlags := []struct {
		name      string
		shorthand string
	}{
		{"config", "c"},
		{"env-file", ""},
		{"log-level", ""},
	}

	for _, ef := range expectedFlags {
		flag := cmd.Flags().Lookup(ef.name)
		if flag == nil {
			t.Errorf("missing flag: --%s", ef.name)
			continue
		}
		if flag.Shorthand != ef.shorthand {
			t.Errorf("flag --%s: expected shorthand -%s, got -%s", ef.name, ef.shorthand, flag.Shorthand)
		}
	}
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()

	if root.RunE == nil {
		t.Error("root command should run start")
	}
	if root.Flags().Lookup("env-file") == nil {
		t.Error("root command should accept start flags")
	}

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"start", "doctor", "integrations", "version"} {
		if !names[want] {
			t.Errorf("missing subcommand %q", want)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if got, want := out.String(), "tgassistant v"+version+"\n"; got != want {
		t.Errorf("version output = %q, want %q", got, want)
	}
}

func TestRenderIntegrations(t *testing.T) {
	var out bytes.Buffer
	if err := renderIntegrations(context.Background(), &out, integrations.Mocks()); err != nil {
		t.Fatalf("renderIntegrations failed: %v", err)
	}

	s := out.String()
	for _, want := range []string{
		"2025-10-25 10:00  Team meeting",
		"alice@example.com",
		"Finish report  due 2025-10-26",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}
}

func TestRenderIntegrations_PartialSet(t *testing.T) {
	var out bytes.Buffer
	if err := renderIntegrations(context.Background(), &out, integrations.Set{Tasks: integrations.MockTaskList{}}); err != nil {
		t.Fatalf("renderIntegrations failed: %v", err)
	}

	if strings.Contains(out.String(), "Calendar:") {
		t.Error("calendar section printed without a calendar")
	}
	if !strings.Contains(out.String(), "Tasks:") {
		t.Error("tasks section missing")
	}
}

func TestRenderIntegrations_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := renderIntegrations(ctx, &bytes.Buffer{}, integrations.Mocks())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRenderDoctor(t *testing.T) {
	report := &health.HealthReport{
		Mode: "mock",
		Checks: []health.Check{
			{Name: "bot token", Status: health.StatusError, Message: "not set", Fix: "export TELEGRAM_BOT_TOKEN=<token>"},
		},
		Features: []health.FeatureStatus{
			{Name: "OpenAI", Status: health.StatusWarning, Note: "mock replies"},
		},
	}

	var out bytes.Buffer
	renderDoctor(&out, report, true)

	s := out.String()
	for _, want := range []string{"bot token", "export TELEGRAM_BOT_TOKEN=<token>", "(mock replies)", "Not ready"} {
		if !strings.Contains(s, want) {
			t.Errorf("doctor output missing %q:\n%s", want, s)
		}
	}
}
