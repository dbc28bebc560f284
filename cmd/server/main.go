package main

import (
	"log/slog"
	"os"

	"ecotrivia/backend/internal/config"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

const releaseVersion = "1.0.0"

// @title           EcoTrivia API
// @version         1.0
// @description     Multiplayer environmental trivia: sessions, rooms and live game state.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cobra.CheckErr(newRootCmd().Execute())
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ecotrivia",
		Short:         "Multiplayer environmental trivia backend.",
		Version:       releaseVersion,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(newServeCmd(), newRoomsCmd(), newSweepCmd())
	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetVersionTemplate("ecotrivia v{{.Version}}\n")
	return cmd
}

// loadConfig resolves the configuration and installs the default logger.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	level, _ := cfg.Level()
	slog.SetDefault(slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	})))
	return cfg, nil
}
