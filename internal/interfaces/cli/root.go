package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand construye el comando raíz bakery con todos los subcomandos.
func NewRootCommand(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "bakery",
		Short: "Cliente del ERP de panadería",
		Long: `Cliente del ERP de panadería: sesión, selección de bodega, dashboard por rol,
inventario con caché (movimientos, saldos, lotes), exportaciones y servidor BFF local.

Ejemplos:
  bakery login --code abc-123
  bakery warehouses use 2
  bakery inventory batches --search harina
  bakery inventory add --batch 14 --type IN --quantity 25
  bakery serve`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.out)

	root.AddCommand(
		newLoginCommand(a),
		newLogoutCommand(a),
		newWhoamiCommand(a),
		newWarehousesCommand(a),
		newDashboardCommand(a),
		newInventoryCommand(a),
		newPrefsCommand(a),
		newMirrorCommand(a),
		newServeCommand(a),
	)
	return root
}
