package serve

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"audio-api/cmd/audio-api/cmd/version"
	"audio-api/internal/app"
	"audio-api/internal/app/common"
	"audio-api/internal/config"
)

// ConfigFile is the YAML configuration path set by the root --config flag.
var ConfigFile string

var (
	port     int
	provider string
)

func init() {
	Cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides PORT)")
	Cmd.Flags().StringVar(&provider, "provider", "", "transcription provider: whisper_cpp, whisper_server or openai")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server on 0.0.0.0:$PORT (default 8000).

The transcription model is loaded once at startup; a missing model or
binary stops the process before it accepts requests.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if port != 0 {
			cfg.Server.Port = port
		}
		if provider != "" {
			cfg.Transcriber.Provider = provider
		}
		if port != 0 || provider != "" {
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}
		}

		logger, err := common.NewLogger(!cfg.IsProduction(), cfg.Log.Level)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		application, err := app.InitializeApplication(cfg, app.Version(version.Version), logger)
		if err != nil {
			logger.Error("failed to initialize application", zap.Error(err))
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return application.Run(ctx)
	},
}
