package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newDashboardCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Resumen por rol con alertas de inventario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.dashboard.Summary(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Bienvenido, %s (%s)\n", s.User.Name, s.User.Role)
			if s.Warehouse != nil {
				fmt.Fprintf(a.out, "Bodega: %s\n", s.Warehouse.Name)
			}
			mods := make([]string, 0, len(s.Modules))
			for _, m := range s.Modules {
				mods = append(mods, string(m))
			}
			fmt.Fprintf(a.out, "Módulos: %s\n", strings.Join(mods, ", "))
			nav := make([]string, 0, len(s.Navigation))
			for _, item := range s.Navigation {
				nav = append(nav, item.Label)
			}
			fmt.Fprintf(a.out, "Menú: %s\n", strings.Join(nav, " | "))

			if al := s.Alerts; al != nil {
				fmt.Fprintln(a.out, "Alertas de inventario:")
				fmt.Fprintf(a.out, "  Stock bajo o agotado: %d\n", al.LowStock)
				fmt.Fprintf(a.out, "  Lotes por vencer:     %d\n", al.NearExpiry)
				fmt.Fprintf(a.out, "  Lotes vencidos:       %d\n", al.Expired)
				fmt.Fprintf(a.out, "  Movimientos hoy:      %d\n", al.MovementsToday)
				if al.Error != "" {
					fmt.Fprintf(a.out, "  Error: %s\n", al.Error)
				}
			}
			return nil
		},
	}
}
