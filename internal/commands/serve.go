package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/resultado/dre/internal/httpapi"
	"github.com/resultado/dre/internal/report"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(global *globalOptions) *cobra.Command {
	var addr string
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve statements and comparisons over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := loadApp(ctx, cmd, global)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("watch") {
				a.cfg.Server.Watch = watch
			}
			return runServe(ctx, a)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the ledger when its files change")

	return cmd
}

func runServe(ctx context.Context, a *app) error {
	metrics := httpapi.NewMetrics()
	metrics.ObserveReload(len(a.store.Lines(nil)), nil)

	mode, err := report.ParseMode(a.cfg.Report.CompareMode)
	if err != nil {
		return err
	}

	api := httpapi.New(httpapi.Config{
		Logger:          a.logger,
		Engine:          a.engine,
		Source:          a.store,
		Metrics:         metrics,
		DefaultEntities: a.cfg.Entity.DefaultIDs,
		DefaultMode:     mode,
		RequestTimeout:  a.cfg.Server.RequestTimeout,
		ExportRateLimit: a.cfg.Server.ExportRateLimit,
	})

	server := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           api.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting http server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		a.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if a.cfg.Server.Watch {
		g.Go(func() error {
			return a.store.Watch(ctx, func(err error) {
				metrics.ObserveReload(len(a.store.Lines(nil)), err)
			})
		})
	}
	return g.Wait()
}
