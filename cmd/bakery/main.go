package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/afero"

	"github.com/jhoicas/bakery-erp/internal/domain"
	"github.com/jhoicas/bakery-erp/internal/infrastructure/api"
	"github.com/jhoicas/bakery-erp/internal/infrastructure/metrics"
	"github.com/jhoicas/bakery-erp/internal/infrastructure/storage"
	"github.com/jhoicas/bakery-erp/internal/interfaces/cli"
	"github.com/jhoicas/bakery-erp/pkg/config"
	"github.com/jhoicas/bakery-erp/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración: "+err.Error())
		os.Exit(2)
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	}).Zerolog()
	log.Debug().
		Str("env", cfg.App.Env).
		Str("api", cfg.API.BaseURL).
		Str("state", cfg.State.File()).
		Msg("iniciando aplicación")

	state := storage.NewFileStateStore(afero.NewOsFs(), cfg.State.File(), log)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector, err := metrics.New(registry)
	if err != nil {
		log.Fatal().Err(err).Msg("registrar métricas")
	}

	client, err := api.NewClient(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, state, api.WithObserver(collector), api.WithLogger(log))
	if err != nil {
		log.Fatal().Err(err).Msg("cliente del backend")
	}

	app := cli.New(cli.Deps{
		Config:       cfg,
		Log:          log,
		State:        state,
		AuthAPI:      api.NewAuthAPI(client),
		WarehouseAPI: api.NewWarehouseAPI(client),
		InventoryAPI: api.NewInventoryAPI(client),
		Recorder:     collector,
		Registry:     registry,
	})

	if err := cli.NewRootCommand(app).ExecuteContext(context.Background()); err != nil {
		log.Debug().Err(err).Msg("comando fallido")
		fmt.Fprintln(os.Stderr, "Error: "+domain.Message(err))
		os.Exit(1)
	}
}
