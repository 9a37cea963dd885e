package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"webnotas/cmd/internal/config"
	"webnotas/cmd/internal/dashboard"
	"webnotas/cmd/internal/http/handler"
	"webnotas/cmd/internal/http/templates"
	"webnotas/cmd/internal/infrastructure/aws/storage"
	"webnotas/cmd/internal/infrastructure/webnotas"
	"webnotas/cmd/internal/metrics"
	"webnotas/cmd/internal/routes"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:   "webnotas-dashboard",
		Usage:  "Browser dashboard for the WEBNOTAS fiscal document service",
		Action: serveAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the dashboard and poll the job list",
				Action: serveAction,
			},
			{
				Name:  "snapshot",
				Usage: "Print the companies and jobs once and exit",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "company",
						Usage: "also print the documents of this company id",
					},
				},
				Action: snapshotAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(ctx context.Context) (config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return cfg, err
	}
	log.SetLevel(cfg.Lvl())
	return cfg, nil
}

func serveAction(ctx context.Context, _ *cli.Command) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	m := metrics.New()
	board := dashboard.New(webnotas.NewClient(cfg.UpstreamURL), dashboard.Options{
		PollInterval:  cfg.PollInterval,
		SequenceGuard: cfg.SequenceGuard,
		Metrics:       m,
	})
	defer board.Close()

	var xmlStore storage.XMLStore
	if cfg.XMLEnabled() {
		xmlStore, err = storage.NewXMLStore(ctx, cfg.S3Region, cfg.S3Bucket, cfg.XMLKeyPrefix)
		if err != nil {
			return fmt.Errorf("init xml storage: %w", err)
		}
	}

	renderer, err := templates.New()
	if err != nil {
		return err
	}

	// The page stays usable without the upstream; the poller keeps trying.
	if err := board.Bootstrap(ctx); err != nil {
		log.Warnf("initial dashboard load failed: %v", err)
	}

	route := handler.NewDashboardRoute(board, xmlStore, cfg.PollInterval)
	e := routes.NewServer(renderer, route, m)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("serving dashboard on %s (upstream %s)", cfg.HTTPAddr, cfg.UpstreamURL)
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return shutdown(e)
	})
	return g.Wait()
}

func shutdown(e *echo.Echo) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("shutting down dashboard")
	return e.Shutdown(ctx)
}

func snapshotAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	board := dashboard.New(webnotas.NewClient(cfg.UpstreamURL), dashboard.Options{
		SequenceGuard: cfg.SequenceGuard,
	})
	return snapshot(ctx, os.Stdout, board, cmd.String("company"))
}
