package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/cli/config"
	httpctrl "github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/controller/http"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/service/worker"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/usecase"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/async"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 10 * time.Second

func cmdServe(version string) *cli.Command {
	var (
		alertInterval time.Duration
		dashboardTTL  time.Duration

		serverCfg       config.Server
		authCfg         config.Auth
		repoCfg         config.Repository
		cacheCfg        config.Cache
		searchCfg       config.Search
		storageCfg      config.Storage
		slackCfg        config.Slack
		integrationsCfg config.Integrations
		sentryCfg       config.Sentry
		catalogCfg      config.Catalog
	)

	flags := []cli.Flag{
		&cli.DurationFlag{
			Name:        "alert-interval",
			Usage:       "How often open regulatory changes are evaluated for compliance alerts",
			Value:       worker.DefaultAlertInterval,
			Sources:     cli.EnvVars("GRC_ALERT_INTERVAL"),
			Destination: &alertInterval,
		},
		&cli.DurationFlag{
			Name:        "dashboard-ttl",
			Usage:       "How long the aggregated dashboard is served from cache",
			Value:       usecase.DefaultDashboardTTL,
			Sources:     cli.EnvVars("GRC_DASHBOARD_TTL"),
			Destination: &dashboardTTL,
		},
	}

	// Add shared config flags
	flags = append(flags, serverCfg.Flags()...)
	flags = append(flags, authCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, cacheCfg.Flags()...)
	flags = append(flags, searchCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, integrationsCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()
			logger.Info("Serve configuration",
				"server", serverCfg,
				"auth", authCfg,
				"repository", repoCfg,
				"cache", cacheCfg,
				"search", searchCfg,
				"storage", storageCfg,
				"slack", slackCfg,
				"integrations", integrationsCfg,
				"sentry", sentryCfg,
				"catalog", catalogCfg,
			)

			flushSentry, err := sentryCfg.Configure(serverCfg.Environment(), version)
			if err != nil {
				return err
			}
			defer flushSentry()

			catalog, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load catalog")
			}

			repo, closeRepo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer closeRepo()

			activity, closeActivity, err := repoCfg.ActivityLog(ctx)
			if err != nil {
				return err
			}
			defer closeActivity()

			cache, closeCache, err := cacheCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer closeCache()

			index, err := searchCfg.Configure(ctx)
			if err != nil {
				return err
			}

			blob, closeBlob, err := storageCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer closeBlob()

			authUC, err := authCfg.Configure(ctx, repo, activity)
			if err != nil {
				return goerr.Wrap(err, "failed to configure authentication")
			}

			slackSvc, err := slackCfg.Service()
			if err != nil {
				return err
			}
			notifiers, err := integrationsCfg.Notifiers()
			if err != nil {
				return err
			}
			notifiers = append([]interfaces.Notifier{slackCfg.Notifier(slackSvc)}, notifiers...)
			for _, n := range notifiers {
				logger.Info("Integration", "name", n.Name(), "configured", n.Configured())
			}

			uc := usecase.New(repo,
				usecase.WithAuth(authUC),
				usecase.WithActivityLog(activity),
				usecase.WithCache(cache),
				usecase.WithSearchIndex(index),
				usecase.WithBlobStore(blob),
				usecase.WithNotifiers(notifiers...),
				usecase.WithCatalog(catalog),
				usecase.WithDashboardTTL(dashboardTTL),
			)

			// A fresh in-memory index must be rebuilt from persisted records
			async.Dispatch(ctx, "search-reindex", func(ctx context.Context) error {
				n, err := uc.Search.Reindex(ctx)
				if err != nil {
					return err
				}
				logging.From(ctx).Info("Search index rebuilt", "documents", n)
				return nil
			})

			alertWorker := worker.NewComplianceAlertWorker(uc.Regulatory, alertInterval)
			if err := alertWorker.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start compliance alert worker")
			}

			httpOpts := serverCfg.Options()
			httpOpts = append(httpOpts,
				httpctrl.WithVersion(version),
				httpctrl.WithIdempotencyCache(cache),
			)
			if dir := storageCfg.PublicDir(); dir != "" {
				httpOpts = append(httpOpts, httpctrl.WithUploadDir(dir))
				logger.Warn("Serving uploaded documents without authentication", "dir", dir)
			}
			if slackCfg.IsInteractionConfigured() {
				handler := httpctrl.NewSlackInteractionHandler(uc.Regulatory, slackSvc)
				httpOpts = append(httpOpts, httpctrl.WithSlackInteraction(handler, slackCfg.SigningSecret()))
				logger.Info("Slack interaction handler enabled")
			}

			httpHandler, err := httpctrl.New(uc, httpOpts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              serverCfg.Addr(),
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Starting HTTP server", "addr", server.Addr, "dev_mode", authCfg.IsDevMode())
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				alertWorker.Stop()
				return err
			case sig := <-sigCh:
				logger.Info("Received shutdown signal", "signal", sig)
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down")
			}

			alertWorker.Stop()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}
			if err := async.Wait(shutdownCtx); err != nil {
				logger.Warn("Background tasks did not finish before shutdown", "error", err)
			}

			logger.Info("Server shutdown completed")
			return nil
		},
	}
}
