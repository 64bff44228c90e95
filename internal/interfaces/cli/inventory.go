package cli

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/application/inventory"
	"github.com/jhoicas/bakery-erp/internal/application/report"
	"github.com/jhoicas/bakery-erp/internal/domain"
	"github.com/jhoicas/bakery-erp/internal/domain/entity"
	domaininv "github.com/jhoicas/bakery-erp/internal/domain/inventory"
)

const (
	searchFlag    = "search"
	forceFlag     = "force"
	batchFlag     = "batch"
	typeFlag      = "type"
	quantityFlag  = "quantity"
	referenceFlag = "reference"
	notesFlag     = "notes"
	tabFlag       = "tab"
	outFlag       = "out"
)

func newInventoryCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"inv"},
		Short:   "Movimientos, saldos y lotes de la bodega activa",
	}
	cmd.AddCommand(
		newInventoryListCommand(a, inventory.TabMovements, "Movimientos de stock"),
		newInventoryListCommand(a, inventory.TabBalances, "Saldos por producto"),
		newInventoryListCommand(a, inventory.TabBatches, "Lotes con estado de vencimiento"),
		newInventoryAddCommand(a),
		newInventoryExportCommand(a),
		newInventoryReportCommand(a),
	)
	return cmd
}

func newInventoryListCommand(a *App, tab inventory.Tab, short string) *cobra.Command {
	flags := map[string]cobraflags.Flag{
		searchFlag: &cobraflags.StringFlag{
			Name:  searchFlag,
			Value: "",
			Usage: "Filtrar filas (sin distinguir mayúsculas)",
		},
	}
	var force bool
	cmd := &cobra.Command{
		Use:   string(tab),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, warehouse, err := a.requireInventory(cmd.Context())
			if err != nil {
				return err
			}
			search := flags[searchFlag].GetString()
			now := time.Now()

			var t dto.Table
			switch tab {
			case inventory.TabMovements:
				items, err := a.store.FetchMovements(cmd.Context(), warehouse.ID, force)
				if err != nil {
					return err
				}
				t = report.MovementsTable(domaininv.FilterMovements(items, search))
			case inventory.TabBalances:
				items, err := a.store.FetchBalances(cmd.Context(), warehouse.ID, force)
				if err != nil {
					return err
				}
				t = report.BalancesTable(domaininv.FilterBalances(items, search))
			case inventory.TabBatches:
				items, err := a.store.FetchBatches(cmd.Context(), warehouse.ID, force)
				if err != nil {
					return err
				}
				t = report.BatchesTable(report.BatchViews(domaininv.FilterBatches(items, search), now))
			}

			fmt.Fprintf(a.out, "%s · %s · %d filas\n", t.Title, warehouse.Name, len(t.Rows))
			if len(t.Rows) == 0 {
				fmt.Fprintln(a.out, "Sin resultados.")
			} else if err := printTable(a.out, t); err != nil {
				return err
			}
			fmt.Fprintln(a.out, cacheLine(a.store.Metadata(tab), now))
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	cmd.Flags().BoolVar(&force, forceFlag, false, "Ignorar la caché y volver a consultar el backend")
	return cmd
}

func newInventoryAddCommand(a *App) *cobra.Command {
	flags := map[string]cobraflags.Flag{
		batchFlag: &cobraflags.StringFlag{
			Name:  batchFlag,
			Value: "",
			Usage: "Id del lote (obligatorio)",
		},
		typeFlag: &cobraflags.StringFlag{
			Name:  typeFlag,
			Value: string(entity.MovementTypeIN),
			Usage: "Tipo de movimiento: IN, OUT o ADJUSTMENT",
		},
		quantityFlag: &cobraflags.StringFlag{
			Name:  quantityFlag,
			Value: "",
			Usage: "Cantidad decimal; negativa solo para ADJUSTMENT",
		},
		referenceFlag: &cobraflags.StringFlag{
			Name:  referenceFlag,
			Value: "",
			Usage: "Número de referencia (factura, orden)",
		},
		notesFlag: &cobraflags.StringFlag{
			Name:  notesFlag,
			Value: "",
			Usage: "Notas libres",
		},
	}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Registrar un movimiento de stock en la bodega activa",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, warehouse, err := a.requireInventory(cmd.Context())
			if err != nil {
				return err
			}
			qty, err := decimal.NewFromString(flags[quantityFlag].GetString())
			if err != nil {
				return fmt.Errorf("%w: cantidad inválida %q", domain.ErrInvalidInput, flags[quantityFlag].GetString())
			}
			created, err := a.store.AddMovement(cmd.Context(), dto.CreateMovementRequest{
				Warehouse:       warehouse.ID,
				Batch:           flags[batchFlag].GetString(),
				MovementType:    entity.MovementType(flags[typeFlag].GetString()),
				Quantity:        qty,
				ReferenceNumber: flags[referenceFlag].GetString(),
				Notes:           flags[notesFlag].GetString(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Movimiento %s registrado: %s %s (lote %s)\n",
				created.ID, created.MovementType, created.Quantity.String(), created.Batch)
			if msg := a.store.Snapshot().Error; msg != "" {
				fmt.Fprintf(a.out, "Aviso: no se pudo recargar el inventario: %s\n", msg)
			}
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func newInventoryExportCommand(a *App) *cobra.Command {
	flags := map[string]cobraflags.Flag{
		tabFlag: &cobraflags.StringFlag{
			Name:  tabFlag,
			Value: string(inventory.TabMovements),
			Usage: "Pestaña a exportar: movements, balances o batches",
		},
		searchFlag: &cobraflags.StringFlag{
			Name:  searchFlag,
			Value: "",
			Usage: "Exportar solo las filas que coinciden",
		},
		outFlag: &cobraflags.StringFlag{
			Name:  outFlag,
			Value: "",
			Usage: "Archivo .xlsx de salida (por defecto inventario-<tab>.xlsx)",
		},
	}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exportar una pestaña de inventario a XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tab, err := inventory.ParseTab(flags[tabFlag].GetString())
			if err != nil {
				return err
			}
			_, warehouse, err := a.requireInventory(cmd.Context())
			if err != nil {
				return err
			}
			path := flags[outFlag].GetString()
			if path == "" {
				path = fmt.Sprintf("inventario-%s.xlsx", tab)
			}
			var buf bytes.Buffer
			if err := a.reports.ExportTab(cmd.Context(), tab, warehouse, flags[searchFlag].GetString(), &buf); err != nil {
				return err
			}
			if err := afero.WriteFile(a.fs, path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", path, err)
			}
			fmt.Fprintf(a.out, "Exportado: %s\n", path)
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func newInventoryReportCommand(a *App) *cobra.Command {
	flags := map[string]cobraflags.Flag{
		outFlag: &cobraflags.StringFlag{
			Name:  outFlag,
			Value: "existencias.pdf",
			Usage: "Archivo .pdf de salida",
		},
	}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generar el PDF de saldos y vencimientos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, warehouse, err := a.requireInventory(cmd.Context())
			if err != nil {
				return err
			}
			pdf, err := a.reports.StockReportPDF(cmd.Context(), warehouse, user)
			if err != nil {
				return err
			}
			path := flags[outFlag].GetString()
			if err := afero.WriteFile(a.fs, path, pdf, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", path, err)
			}
			fmt.Fprintf(a.out, "Reporte generado: %s\n", path)
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}
