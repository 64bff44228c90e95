package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/bakery-erp/internal/application/report"
	"github.com/jhoicas/bakery-erp/internal/infrastructure/pdf"
	"github.com/jhoicas/bakery-erp/internal/infrastructure/postgres"
	"github.com/jhoicas/bakery-erp/internal/infrastructure/xlsx"
)

func newMirrorCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mirror",
		Short: "Espejo de reportes en PostgreSQL",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "migrate",
			Short: "Aplicar las migraciones del espejo",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				pool, err := a.openMirror(cmd.Context())
				if err != nil {
					return err
				}
				defer pool.Close()
				if err := postgres.Migrate(cmd.Context(), pool); err != nil {
					return err
				}
				fmt.Fprintln(a.out, "Migraciones aplicadas.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "sync",
			Short: "Copiar movimientos, saldos y lotes de la bodega activa al espejo",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, warehouse, err := a.requireInventory(cmd.Context())
				if err != nil {
					return err
				}
				pool, err := a.openMirror(cmd.Context())
				if err != nil {
					return err
				}
				defer pool.Close()

				mirror := postgres.NewSnapshotRepository(postgres.NewTxRunner(pool))
				uc := report.NewUseCase(a.store, xlsx.NewExporter(), pdf.NewStockReportGenerator(), mirror, a.log)
				snap, err := uc.SyncMirror(cmd.Context(), warehouse.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Espejo sincronizado (%s): %d movimientos, %d saldos, %d lotes\n",
					warehouse.Name, len(snap.Movements), len(snap.Balances), len(snap.Batches))
				return nil
			},
		},
	)
	return cmd
}
