package main

import (
	"github.com/spf13/cobra"

	"github.com/alekspetrov/tgassistant/internal/config"
	"github.com/alekspetrov/tgassistant/internal/logging"
)

// configOptions are the flags shared by commands that read configuration.
type configOptions struct {
	configPath string
	envFile    string
	logLevel   string
}

func (o *configOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.configPath, "config", "c", config.DefaultConfigPath(), "Settings file (YAML)")
	cmd.Flags().StringVar(&o.envFile, "env-file", "", "Env file with credentials (default .env when present)")
	cmd.Flags().StringVar(&o.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
}

// load reads the env file and settings and initializes logging.
func (o *configOptions) load() (*config.Config, error) {
	var envFiles []string
	if o.envFile != "" {
		envFiles = append(envFiles, o.envFile)
	}
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return nil, err
	}

	cfg, err := config.Load(o.configPath, nil)
	if err != nil {
		return nil, err
	}

	logCfg := cfg.Settings.Logging
	if logCfg == nil {
		logCfg = logging.DefaultConfig()
		cfg.Settings.Logging = logCfg
	}
	if o.logLevel != "" {
		logCfg.Level = o.logLevel
	}
	if err := logging.Init(logCfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
