package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
)

func newWarehousesCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "warehouses",
		Aliases: []string{"wh"},
		Short:   "Listar y seleccionar bodegas",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Listar bodegas disponibles (* = activa)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if _, err := a.requireSession(); err != nil {
					return err
				}
				out, err := a.warehouses.ListWithActive(cmd.Context())
				if err != nil {
					return err
				}
				t := dto.Table{Headers: []string{"", "ID", "NOMBRE", "CÓDIGO", "UBICACIÓN"}}
				for _, w := range out.Items {
					mark := ""
					if w.ID == out.ActiveID {
						mark = "*"
					}
					t.Rows = append(t.Rows, []any{mark, w.ID, w.Name, w.Code, w.Location})
				}
				return printTable(a.out, t)
			},
		},
		&cobra.Command{
			Use:   "use <id>",
			Short: "Seleccionar la bodega activa (invalida la caché de inventario)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := a.requireSession(); err != nil {
					return err
				}
				w, err := a.warehouses.Select(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Bodega activa: %s\n", w.Name)
				return nil
			},
		},
	)
	return cmd
}
