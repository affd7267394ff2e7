package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/fbref-teamfit/internal/app"
	"github.com/riskibarqy/fbref-teamfit/internal/config"
	"github.com/riskibarqy/fbref-teamfit/internal/observability"
	"github.com/riskibarqy/fbref-teamfit/internal/platform/logging"
)

const shutdownTimeout = 10 * time.Second

var rootCmd = &cobra.Command{
	Use:               "teamfit",
	Short:             "teamfit ingests FBref player season stats into the team-fit store.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

type session struct {
	cfg             config.Config
	logger          *logging.Logger
	shutdownTracing func(context.Context) error
}

// active is set by setup for the command being executed.
var active *session

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "command", cmd.Name())
	logging.SetDefault(logger)

	shutdown, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return fmt.Errorf("init uptrace: %w", err)
	}

	active = &session{cfg: cfg, logger: logger, shutdownTracing: shutdown}
	return nil
}

func (s *session) close() {
	if s == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.shutdownTracing(ctx); err != nil {
		s.logger.Warn("uptrace shutdown failed", "error", err)
	}
	_ = s.logger.Sync()
}

// openRuntime builds the services of the active session. The caller closes
// the runtime with closeRuntime.
func openRuntime(opts app.Options) (*app.Runtime, error) {
	if active == nil {
		return nil, fmt.Errorf("command session is not initialized")
	}
	return app.New(active.cfg, active.logger, opts)
}

func closeRuntime(rt *app.Runtime) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := rt.Close(ctx); err != nil {
		active.logger.Warn("close runtime failed", "error", err)
	}
}

func ExecuteContext(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	active.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
