package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	apphttp "github.com/jhoicas/bakery-erp/internal/interfaces/http"
)

func newServeCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levantar el servidor BFF local (/api, /docs, /metrics)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

// serve escucha hasta que ctx se cancela y luego apaga el servidor ordenadamente.
func (a *App) serve(ctx context.Context) error {
	cfg := apphttp.AppConfig{
		Name:        a.cfg.App.Name,
		SwaggerFile: a.cfg.HTTP.SwaggerFile,
	}
	if a.cfg.Metrics.Enabled && a.registry != nil {
		cfg.Gatherer = a.registry
	}
	app := apphttp.NewApp(cfg, apphttp.RouterDeps{
		AuthUC:        a.auth,
		WarehouseUC:   a.warehouses,
		PreferencesUC: a.prefs,
		ModuleService: a.modules,
		DashboardUC:   a.dashboard,
		Store:         a.store,
		ReportUC:      a.reports,
		Log:           a.log,
	})

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", a.cfg.HTTP.Addr()).Msg("servidor BFF escuchando")
		errCh <- app.Listen(a.cfg.HTTP.Addr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		a.log.Error().Err(err).Msg("apagado del servidor")
		return err
	}
	a.log.Info().Msg("servidor detenido")
	return nil
}
