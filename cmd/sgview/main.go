// Package main is the entry point for sgview, the scene graph viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/scenery/internal/config"
	"github.com/Faultbox/scenery/internal/demo"
	"github.com/Faultbox/scenery/internal/inspect"
	"github.com/Faultbox/scenery/internal/logger"
	"github.com/Faultbox/scenery/internal/viewer"
	sg "github.com/Faultbox/scenery/pkg/scenegraph"
	"github.com/Faultbox/scenery/pkg/scenegraph/export"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	logOpts := logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Console: true,
	}
	if cfg.Logging.LogFile != "" {
		logOpts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.Setup(logOpts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== sgview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	scene := demo.Build(demo.Options{
		Grid:     cfg.Scene.Grid,
		Optimize: cfg.Scene.Optimize,
	})

	if cfg.Export.Format != "" {
		if err := runExport(cfg, scene); err != nil {
			logger.Error("export failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	if err := runViewer(cfg, scene); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("viewer closed normally")
}

// runExport writes the scene once in the configured format. A one-shot
// export settles the graph first so delayed signals are written as landed.
func runExport(cfg *config.Config, scene *demo.Scene) error {
	format, err := export.ParseFormat(cfg.Export.Format)
	if err != nil {
		return err
	}
	opts := export.Options{Finish: cfg.Export.Finish, Settle: true}

	if cfg.Export.Out == "" || cfg.Export.Out == "-" {
		err = export.Write(os.Stdout, scene.Root, format, opts)
	} else {
		err = exportFile(cfg.Export.Out, scene.Root, format, opts)
	}
	if err != nil {
		return err
	}
	logger.Info("scene exported",
		zap.String("format", string(format)),
		zap.String("out", cfg.Export.Out),
	)
	return nil
}

// exportFile writes root to path. A failed close is reported since it can
// lose buffered output.
func exportFile(path string, root sg.Node, format export.Format, opts export.Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := export.Write(f, root, format, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// runViewer opens the window and, when configured, serves the inspector
// until the viewer exits or the process is signalled.
func runViewer(cfg *config.Config, scene *demo.Scene) error {
	var (
		snap    *inspect.Snapshotter
		metrics *inspect.Metrics
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	if cfg.Inspect.Addr != "" {
		snap = inspect.NewSnapshotter(export.Options{Name: "sgview"})
		metrics = inspect.NewMetrics()
		srv := inspect.NewServer(cfg.Inspect.Addr, snap, metrics)
		go func() {
			err := srv.ListenAndServe(ctx, cfg.Inspect.Shutdown)
			if err != nil {
				logger.Error("inspector stopped", zap.Error(err))
			}
			done <- err
		}()
	} else {
		close(done)
	}

	v, err := viewer.New(cfg, scene, snap, metrics)
	if err != nil {
		return fmt.Errorf("failed to create viewer: %w", err)
	}
	defer v.Close()

	if err := v.Run(ctx); err != nil {
		return err
	}

	stop()
	if err, ok := <-done; ok && err != nil {
		return fmt.Errorf("inspector: %w", err)
	}
	return nil
}
