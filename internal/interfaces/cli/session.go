package cli

import (
	"fmt"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
)

const (
	codeFlag     = "code"
	passwordFlag = "password"
)

func newLoginCommand(a *App) *cobra.Command {
	flags := map[string]cobraflags.Flag{
		codeFlag: &cobraflags.StringFlag{
			Name:  codeFlag,
			Value: "",
			Usage: "Código de empleado (formato xxx-xxx)",
		},
		passwordFlag: &cobraflags.StringFlag{
			Name:  passwordFlag,
			Value: "",
			Usage: "Contraseña; si se omite se pide por la terminal",
		},
	}
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Iniciar sesión en el ERP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			code := flags[codeFlag].GetString()
			password := flags[passwordFlag].GetString()
			if password == "" {
				var err error
				if password, err = a.prompt("Contraseña: "); err != nil {
					return err
				}
			}
			user, err := a.auth.Login(cmd.Context(), code, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Sesión iniciada: %s (%s)\n", user.Name, user.Role)

			warehouse, err := a.warehouses.EnsureActive(cmd.Context())
			if err != nil {
				a.log.Warn().Err(err).Msg("cli: login sin bodega activa")
				fmt.Fprintln(a.out, "Sin bodega activa: use 'bakery warehouses use <id>'.")
				return nil
			}
			fmt.Fprintf(a.out, "Bodega activa: %s\n", warehouse.Name)
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func newLogoutCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cerrar sesión y borrar el estado local",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.auth.Logout(); err != nil {
				return err
			}
			a.store.SetWarehouse("")
			fmt.Fprintln(a.out, "Sesión cerrada.")
			return nil
		},
	}
}

func newWhoamiCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Mostrar la sesión actual",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			status, err := a.auth.Status()
			if err != nil {
				return err
			}
			if !status.LoggedIn {
				fmt.Fprintln(a.out, "No hay sesión iniciada.")
				return nil
			}
			u := status.User
			fmt.Fprintf(a.out, "Usuario: %s (%s)\n", u.Name, u.EmpCode)
			fmt.Fprintf(a.out, "Rol:     %s\n", u.Role)
			if status.Warehouse != nil {
				fmt.Fprintf(a.out, "Bodega:  %s\n", status.Warehouse.Name)
			} else {
				fmt.Fprintln(a.out, "Bodega:  -")
			}
			if status.TokenExpiresAt != nil {
				state := "vigente"
				if status.TokenExpired {
					state = "vencido"
				}
				fmt.Fprintf(a.out, "Token:   %s (expira %s)\n", state, status.TokenExpiresAt.Local().Format(time.DateTime))
			}
			return nil
		},
	}
}
