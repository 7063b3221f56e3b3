package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/martin-lopez25/appbrechas/internal/api"
	"github.com/martin-lopez25/appbrechas/internal/server"
	"github.com/martin-lopez25/appbrechas/internal/util"
)

var (
	servePort      int
	serveNoBrowser bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Inicia el tablero web",
	Long:  "Carga los datos una sola vez y sirve el tablero por CLUES y la API HTTP.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "puerto (config.toml y APPBRECHAS_PORT tienen prioridad)")
	serveCmd.Flags().BoolVar(&serveNoBrowser, "no-browser", false, "no abrir el navegador")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := a.cfg
	// 命令行端口仅在未显式配置时生效
	if servePort > 0 && !a.info.PortSpecified {
		cfg.Server.Port = servePort
	}

	handler := api.NewHandler(a.table, a.store, a.logger, api.Options{
		TopN:       cfg.Report.TopN,
		DateLayout: cfg.Report.DateLayout,
		Sources:    a.sources,
		LoadedAt:   a.loadedAt,
		LoadID:     a.loadID,
	})
	srv := server.NewServer(handler, a.logger, cfg.Server.DevMode)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := util.LocalURL(cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(addr)
	}()

	if !cfg.Server.DevMode && !serveNoBrowser {
		if err := util.OpenBrowserWithFallback(url); err != nil {
			a.logger.Info("could not open browser, visit manually", zap.String("url", url))
		}
	} else {
		a.logger.Info("dashboard available", zap.String("url", url))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	a.logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
