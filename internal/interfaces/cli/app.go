// Package cli implementa el comando bakery: sesión, bodegas, dashboard, inventario,
// preferencias, espejo de reportes y el servidor BFF.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/jhoicas/bakery-erp/internal/application/auth"
	"github.com/jhoicas/bakery-erp/internal/application/dashboard"
	"github.com/jhoicas/bakery-erp/internal/application/inventory"
	"github.com/jhoicas/bakery-erp/internal/application/ports"
	"github.com/jhoicas/bakery-erp/internal/application/report"
	"github.com/jhoicas/bakery-erp/internal/application/usecase"
	"github.com/jhoicas/bakery-erp/internal/domain"
	"github.com/jhoicas/bakery-erp/internal/domain/access"
	"github.com/jhoicas/bakery-erp/internal/domain/entity"
	"github.com/jhoicas/bakery-erp/internal/domain/repository"
	"github.com/jhoicas/bakery-erp/internal/infrastructure/pdf"
	"github.com/jhoicas/bakery-erp/internal/infrastructure/postgres"
	"github.com/jhoicas/bakery-erp/internal/infrastructure/xlsx"
	"github.com/jhoicas/bakery-erp/pkg/config"
)

// PasswordPrompt pide una contraseña sin eco.
type PasswordPrompt func(label string) (string, error)

// Deps dependencias del CLI. Los tres puertos del backend pueden ser el mismo valor.
type Deps struct {
	Config       *config.Config
	Log          zerolog.Logger
	State        repository.SessionStateStore
	AuthAPI      ports.AuthAPI
	WarehouseAPI ports.WarehouseAPI
	InventoryAPI ports.InventoryAPI
	Recorder     inventory.Recorder   // nil = sin métricas de caché
	Registry     *prometheus.Registry // nil = sin /metrics en serve
	FS           afero.Fs             // archivos de exportación; nil = disco
	Out          io.Writer            // nil = stdout
	Prompt       PasswordPrompt       // nil = terminal
}

// App casos de uso cableados que comparten los comandos.
type App struct {
	cfg      *config.Config
	log      zerolog.Logger
	fs       afero.Fs
	out      io.Writer
	prompt   PasswordPrompt
	registry *prometheus.Registry

	auth       *auth.UseCase
	warehouses *usecase.WarehouseUseCase
	prefs      *usecase.PreferencesUseCase
	modules    *usecase.ModuleService
	store      *inventory.Store
	dashboard  *dashboard.UseCase
	reports    *report.UseCase
}

// New cablea los casos de uso sobre los puertos recibidos.
func New(d Deps) *App {
	a := &App{
		cfg:      d.Config,
		log:      d.Log,
		fs:       d.FS,
		out:      d.Out,
		prompt:   d.Prompt,
		registry: d.Registry,
	}
	if a.fs == nil {
		a.fs = afero.NewOsFs()
	}
	if a.out == nil {
		a.out = os.Stdout
	}
	if a.prompt == nil {
		a.prompt = TerminalPrompt(os.Stdin, os.Stderr)
	}

	opts := []inventory.StoreOption{inventory.WithLogger(d.Log)}
	if d.Recorder != nil {
		opts = append(opts, inventory.WithRecorder(d.Recorder))
	}
	a.store = inventory.NewStore(inventory.NewService(d.InventoryAPI, nil), d.Config.Cache.TTL, opts...)
	a.auth = auth.NewUseCase(d.AuthAPI, d.State, d.Log)
	a.warehouses = usecase.NewWarehouseUseCase(d.WarehouseAPI, d.State, a.store, d.Log)
	a.prefs = usecase.NewPreferencesUseCase(d.State)
	a.modules = usecase.NewModuleService()
	a.dashboard = dashboard.NewUseCase(a.auth, a.warehouses, a.store)
	a.reports = report.NewUseCase(a.store, xlsx.NewExporter(), pdf.NewStockReportGenerator(), nil, d.Log)
	return a
}

// requireSession devuelve el usuario de la sesión o domain.ErrNotLoggedIn.
func (a *App) requireSession() (*entity.User, error) {
	return a.auth.CurrentUser()
}

// requireInventory exige sesión, acceso al módulo Inventory y una bodega activa.
func (a *App) requireInventory(ctx context.Context) (*entity.User, *entity.Warehouse, error) {
	user, err := a.requireSession()
	if err != nil {
		return nil, nil, err
	}
	ok, err := a.modules.HasModule(user.Role, string(access.ModuleInventory))
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, fmt.Errorf("%w: el rol %s no tiene acceso a Inventory", domain.ErrForbidden, user.Role)
	}
	warehouse, err := a.warehouses.EnsureActive(ctx)
	if err != nil {
		return nil, nil, err
	}
	return user, warehouse, nil
}

// openMirror abre el pool del espejo de reportes.
func (a *App) openMirror(ctx context.Context) (*pgxpool.Pool, error) {
	if !a.cfg.DB.Configured() {
		return nil, fmt.Errorf("%w: defina DATABASE_URL o DB_HOST para usar el espejo", domain.ErrInvalidInput)
	}
	return postgres.NewPool(ctx, a.cfg.DB)
}
