package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/patrolio/sessionsweep/internal/cliconfig"
	"github.com/patrolio/sessionsweep/pkg/log"
	"github.com/patrolio/sessionsweep/pkg/sweep"
)

const longHelp = `
Trigger the patrol service's inactive-session sweep.

sessionsweep sends one GET to /inactive_sessions/15 with the API key from
BACKEND_API_KEY in the X-API-KEY header, prints the response body, and exits
non-zero if the request fails or the service answers with a non-2xx status.
It does not retry or schedule itself; run it from cron.

Environment:
  BACKEND_API_KEY            API key (required)
  BACKEND_API_KEY_FILE       file holding the key, used when BACKEND_API_KEY is empty
  SESSIONSWEEP_HTTP_TIMEOUT  request timeout, e.g. 30s
  SESSIONSWEEP_LOG_LEVEL     debug, info, warn, error
  SESSIONSWEEP_QUIET         discard the response body
`

var exampleUsage = strings.TrimSpace(`
  BACKEND_API_KEY=<api-key> sessionsweep
  */15 * * * * sessionsweep --env-file /etc/sessionsweep.env --quiet
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func newRootCmd(stdout io.Writer, logger zerolog.Logger) *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath, envFile string

	root := &cobra.Command{
		Use:           "sessionsweep",
		Short:         "Trigger the patrol service's inactive-session sweep",
		Long:          strings.TrimSpace(longHelp),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			} else if !cliconfig.FileExists(cfgFile) {
				return fmt.Errorf("config file %s does not exist", cfgFile)
			}
			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if envFile != "" {
				if err := cliconfig.LoadDotEnv(envFile); err != nil {
					return err
				}
			}
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			level, _ := zerolog.ParseLevel(cfg.LogLevel)
			logger = logger.Level(level)
			logger.Debug().Interface("config", cfg.Redacted()).Msg("configuration")

			out := stdout
			if cfg.Quiet {
				out = io.Discard
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			_, err := sweep.Run(ctx,
				sweep.Config{
					ServiceURL:  cfg.ServiceURL,
					APIKey:      cfg.APIKey,
					HTTPTimeout: cfg.HTTPTimeout,
				},
				sweep.WithLogger(log.NewZerologLogger(logger)),
				sweep.WithOutput(out),
			)
			return err
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.sessionsweep/config.toml)")
	root.Flags().StringVar(&envFile, "env-file", "", "dotenv file to load before reading the environment")
	root.Flags().DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	root.Flags().BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "discard the response body")

	root.Flags().StringVar(&cfg.ServiceURL, "service-url", cfg.ServiceURL, "service base URL (override only for internal testing)")
	if err := root.Flags().MarkHidden("service-url"); err != nil {
		logger.Info().Err(err).Msg("failed to hide service-url flag")
	}

	return root
}

func main() {
	logger := cliconfig.Logger()
	if err := newRootCmd(os.Stdout, logger).ExecuteContext(context.Background()); err != nil {
		logger.Error().Err(err).Msg("sessionsweep")
		os.Exit(1)
	}
}
