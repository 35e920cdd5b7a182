// Package main implements the Vital Stream backend entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vitalstream/vsb/internal/api"
	"github.com/vitalstream/vsb/internal/audit"
	"github.com/vitalstream/vsb/internal/biometrics"
	"github.com/vitalstream/vsb/internal/config"
	"github.com/vitalstream/vsb/internal/diag"
	"github.com/vitalstream/vsb/internal/logging"
	"github.com/vitalstream/vsb/internal/stream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	lg, err := logging.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = lg.Sync() }()

	lg.Infow("starting vital stream backend", "version", api.Version, "addr", cfg.Addr)

	var auditor *audit.Logger
	if cfg.AuditDir != "" {
		auditor, err = audit.NewLogger(cfg.AuditDir)
		if err != nil {
			lg.Fatalw("failed to initialize audit logger", "err", err.Error())
		}
		lg.Infow("audit logger initialized", "file", auditor.FilePath())
	}

	generator := biometrics.NewGenerator(nil)
	streamHandler := stream.NewHandler(generator, cfg.StreamInterval, lg, auditor)
	probe := diag.NewProbe(cfg.DatabaseURL, cfg.DatabaseName, cfg.DatabaseTimeout, lg)
	server := api.NewServer(cfg, streamHandler, probe, lg)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(cfg.Addr); err != nil {
			serverErr <- err
		}
	}()

	lg.Infow("server started",
		"telemetry", "ws://localhost"+cfg.Addr+"/ws/telemetry",
		"health", "http://localhost"+cfg.Addr+"/healthz",
	)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdown:
		lg.Infow("received signal, shutting down", "signal", sig.String())
	case err := <-serverErr:
		lg.Errorw("server error", "err", err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// End streaming sessions first; they hold hijacked connections the
	// HTTP shutdown does not wait for.
	streamHandler.Shutdown()
	lg.Info("streaming sessions stopped")

	if err := server.Stop(ctx); err != nil {
		lg.Errorw("error stopping http server", "err", err.Error())
	} else {
		lg.Info("http server stopped")
	}

	if auditor != nil {
		if err := auditor.Close(); err != nil {
			lg.Errorw("error closing audit logger", "err", err.Error())
		}
	}

	lg.Info("shutdown complete")
}
