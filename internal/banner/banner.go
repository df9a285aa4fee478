package banner

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alekspetrov/tgassistant/internal/health"
)

// Tagline is the project tagline
const Tagline = "Telegram AI Assistant"

const rule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// StatusStyle returns the style used for a health status.
func StatusStyle(s health.Status) lipgloss.Style {
	switch s {
	case health.StatusOK:
		return okStyle
	case health.StatusWarning:
		return warnStyle
	case health.StatusError:
		return errStyle
	default:
		return dimStyle
	}
}

// Startup prints the startup banner with the feature summary
func Startup(w io.Writer, version, botName string, report *health.HealthReport) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s v%s", strings.ToUpper(Tagline), version)))
	fmt.Fprintln(w, rule)

	var enabled, degraded []string
	for _, f := range report.Features {
		switch f.Status {
		case health.StatusOK:
			enabled = append(enabled, f.Name)
		case health.StatusWarning:
			degraded = append(degraded, f.Name+"*")
		}
	}
	if len(enabled) > 0 {
		fmt.Fprintln(w, okStyle.Render("✓ "+strings.Join(enabled, ", ")))
	}
	if len(degraded) > 0 {
		fmt.Fprintln(w, warnStyle.Render("○ "+strings.Join(degraded, ", ")))
	}
	for _, f := range report.Features {
		if f.Status == health.StatusWarning && f.Note != "" {
			fmt.Fprintf(w, "  * %s: %s\n", f.Name, f.Note)
		}
	}

	fmt.Fprintln(w)
	if botName != "" {
		fmt.Fprintf(w, "Bot:  @%s\n", botName)
	}
	mode := okStyle.Render(report.Mode)
	if report.Mode == "mock" {
		mode = warnStyle.Render(report.Mode)
	}
	fmt.Fprintf(w, "Mode: %s\n", mode)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Listening... (Ctrl+C to stop)")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
}
