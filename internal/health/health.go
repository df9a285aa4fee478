package health

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alekspetrov/tgassistant/internal/config"
)

// Status represents feature or dependency status
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusError
	StatusDisabled
)

// Check represents a health check result
type Check struct {
	Name    string
	Status  Status
	Message string
	Fix     string
}

// FeatureStatus represents a feature with its availability
type FeatureStatus struct {
	Name    string
	Enabled bool
	Status  Status
	Note    string
}

// HealthReport contains all health check results
type HealthReport struct {
	Mode     string // "mock" or "live"
	Checks   []Check
	Features []FeatureStatus
}

// Ready reports whether the bot can start.
func (r *HealthReport) Ready() bool {
	for _, c := range r.Checks {
		if c.Status == StatusError {
			return false
		}
	}
	return true
}

// RunChecks performs all health checks based on config
func RunChecks(cfg *config.Config) *HealthReport {
	mode := "live"
	if cfg.Mock() {
		mode = "mock"
	}
	return &HealthReport{
		Mode:     mode,
		Checks:   checkRequirements(cfg),
		Features: checkFeatures(cfg.Credentials),
	}
}

func checkRequirements(cfg *config.Config) []Check {
	checks := []Check{}

	if cfg.Credentials.TelegramBotToken != "" {
		checks = append(checks, Check{Name: "bot token", Status: StatusOK, Message: "set"})
	} else {
		checks = append(checks, Check{
			Name:    "bot token",
			Status:  StatusError,
			Message: "not set",
			Fix:     "export " + config.EnvTelegramBotToken + "=<token from @BotFather>",
		})
	}

	if cfg.Settings != nil && cfg.Settings.Scratch != nil {
		checks = append(checks, checkWritableDir("scratch dir", cfg.Settings.Scratch.Dir))
	}

	return checks
}

// checkWritableDir inspects dir without touching the filesystem. A missing
// directory is fine as long as its closest existing ancestor is writable.
func checkWritableDir(name, dir string) Check {
	const fix = "set scratch.dir to a writable path"

	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if msg := dirProblem(info); msg != "" {
			return Check{Name: name, Status: StatusError, Message: msg, Fix: fix}
		}
		return Check{Name: name, Status: StatusOK, Message: dir}
	case !errors.Is(err, fs.ErrNotExist):
		return Check{Name: name, Status: StatusError, Message: err.Error(), Fix: fix}
	}

	for parent := filepath.Dir(dir); ; parent = filepath.Dir(parent) {
		info, err := os.Stat(parent)
		if err == nil {
			if msg := dirProblem(info); msg != "" {
				return Check{Name: name, Status: StatusError, Message: parent + ": " + msg, Fix: fix}
			}
			return Check{Name: name, Status: StatusOK, Message: dir + " (created on start)"}
		}
		if !errors.Is(err, fs.ErrNotExist) || parent == filepath.Dir(parent) {
			return Check{Name: name, Status: StatusError, Message: err.Error(), Fix: fix}
		}
	}
}

func dirProblem(info fs.FileInfo) string {
	if !info.IsDir() {
		return "not a directory"
	}
	if info.Mode().Perm()&0o200 == 0 {
		return "not writable"
	}
	return ""
}

// checkFeatures checks feature availability
func checkFeatures(creds config.Credentials) []FeatureStatus {
	features := []FeatureStatus{
		{
			Name:    "Telegram",
			Enabled: creds.TelegramBotToken != "",
			Status:  boolToStatus(creds.TelegramBotToken != "", StatusError),
		},
	}

	ai := FeatureStatus{Name: "OpenAI", Enabled: !creds.Mock(), Status: StatusOK}
	if creds.Mock() {
		ai.Status = StatusWarning
		ai.Note = fmt.Sprintf("mock replies (%d credential(s) missing)", len(creds.Missing()))
	}
	features = append(features, ai)

	features = append(features, FeatureStatus{
		Name:    "Voice",
		Enabled: true,
		Status:  StatusWarning,
		Note:    "placeholder transcript",
	})

	for _, it := range []struct {
		name string
		key  string
	}{
		{"Calendar", creds.GoogleCalendarAPIKey},
		{"Gmail", creds.GmailAPIKey},
		{"Baserow", creds.BaserowAPIKey},
	} {
		features = append(features, FeatureStatus{
			Name:    it.name,
			Enabled: it.key != "",
			Status:  boolToStatus(it.key != "", StatusDisabled),
			Note:    "mock data only",
		})
	}

	return features
}

// boolToStatus converts bool to Status
func boolToStatus(ok bool, otherwise Status) Status {
	if ok {
		return StatusOK
	}
	return otherwise
}

// Symbol returns the symbol for a status
func (s Status) Symbol() string {
	switch s {
	case StatusOK:
		return "✓"
	case StatusWarning:
		return "○"
	case StatusError:
		return "✗"
	case StatusDisabled:
		return "·"
	default:
		return "?"
	}
}

// String returns the status name
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWarning:
		return "warning"
	case StatusError:
		return "error"
	case StatusDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}
