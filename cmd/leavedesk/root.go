// leavedesk is a conversational leave-management assistant: a Gemini-backed
// chatbot over an HR directory with policy retrieval, served interactively
// or over HTTP.
package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"leavedesk/internal/config"
	"leavedesk/internal/logging"
)

var (
	configPath string
	debugMode  bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "leavedesk",
		Short:         "Conversational leave management assistant",
		Long:          "leavedesk answers leave balance, application, cancellation, history, and policy questions over a chat interface backed by Gemini.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "leavedesk.yaml", "path to config file")
	root.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")

	root.AddCommand(newServeCmd())
	root.AddCommand(newChatCmd())

	return root
}

// loadConfig loads .env, the config file, and initializes logging.
func loadConfig() (*config.Config, error) {
	// A missing .env is fine; variables may come from the environment.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if debugMode {
		cfg.Logging.DebugMode = true
	}

	if err := logging.Initialize(logging.Options{
		Dir:        cfg.Logging.Dir,
		DebugMode:  cfg.Logging.DebugMode,
		Level:      cfg.Logging.Level,
		Categories: cfg.Logging.Categories,
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	logging.Boot("%s v%s starting (model=%s)", cfg.Name, cfg.Version, cfg.LLM.Model)
	return cfg, nil
}
