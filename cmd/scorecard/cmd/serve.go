package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/avenirlabs/scorecard-ai/internal/api"
	"github.com/avenirlabs/scorecard-ai/internal/assessment"
	"github.com/avenirlabs/scorecard-ai/internal/events"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the assessment API server",
	Long: `Start the HTTP server exposing the assessment API, the report
endpoints and the printable report view at /view/report.

Examples:
  # Start with defaults (:8080)
  scorecard serve

  # Bind a specific address
  scorecard serve --addr 127.0.0.1:3000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "",
		"listen address (default from config, \":8080\")")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(_ *cobra.Command, _ []string) error {
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	manager, err := newManager(cfg, logger)
	if err != nil {
		return err
	}

	store, err := newReportStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	sessions := newSessionStore(cfg)
	defer sessions.Close()

	bus := events.New(256)
	defer bus.Close()

	controller := assessment.NewController(manager, sessions, store,
		assessment.WithLogger(logger),
		assessment.WithBus(bus),
		assessment.WithMaxQuestions(cfg.Assessment.MaxQuestions),
		assessment.WithHardCap(cfg.Assessment.HardCap),
	)

	server := api.NewServer(controller, sessions, store, bus,
		api.WithLogger(logger),
		api.WithCORSOrigins(cfg.Server.CORSOrigins),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Probe the chain up front; the server still starts when every provider
	// is down, because the report view can serve stored documents.
	if err := manager.Initialize(ctx); err != nil {
		logger.Warn("no provider available at startup", "error", err)
	} else {
		logger.Info("provider chain ready", "current", manager.Current(), "order", manager.Names())
	}

	// Reload notification for the config file. Provider changes need a
	// restart; log so operators know the file was picked up.
	viper.OnConfigChange(func(e fsnotify.Event) {
		logger.Info("config file changed, restart to apply provider changes", "file", e.Name)
	})
	if viper.ConfigFileUsed() != "" {
		viper.WatchConfig()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(ctx, addr)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")
	return nil
}
