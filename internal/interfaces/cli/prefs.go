package cli

import (
	"fmt"
	"strconv"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/domain"
	"github.com/jhoicas/bakery-erp/internal/domain/entity"
)

const (
	themeFlag   = "theme"
	sidebarFlag = "sidebar-collapsed"
)

func newPrefsCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Preferencias de presentación (tema, menú lateral)",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Mostrar las preferencias",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				prefs, err := a.prefs.Get()
				if err != nil {
					return err
				}
				printPrefs(a, prefs)
				return nil
			},
		},
		newPrefsSetCommand(a),
		&cobra.Command{
			Use:   "toggle-theme",
			Short: "Alternar entre tema claro y oscuro",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				prefs, err := a.prefs.ToggleTheme()
				if err != nil {
					return err
				}
				printPrefs(a, prefs)
				return nil
			},
		},
	)
	return cmd
}

func newPrefsSetCommand(a *App) *cobra.Command {
	flags := map[string]cobraflags.Flag{
		themeFlag: &cobraflags.StringFlag{
			Name:  themeFlag,
			Value: "",
			Usage: "Tema: light o dark",
		},
		sidebarFlag: &cobraflags.StringFlag{
			Name:  sidebarFlag,
			Value: "",
			Usage: "Menú lateral colapsado: true o false",
		},
	}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Cambiar preferencias (solo los campos indicados)",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			in := dto.PreferencesDTO{Theme: entity.Theme(flags[themeFlag].GetString())}
			if raw := flags[sidebarFlag].GetString(); raw != "" {
				v, err := strconv.ParseBool(raw)
				if err != nil {
					return fmt.Errorf("%w: %s debe ser true o false", domain.ErrInvalidInput, sidebarFlag)
				}
				in.SidebarCollapsed = &v
			}
			prefs, err := a.prefs.Update(in)
			if err != nil {
				return err
			}
			printPrefs(a, prefs)
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func printPrefs(a *App, p entity.Preferences) {
	fmt.Fprintf(a.out, "Tema:          %s\n", p.Theme)
	fmt.Fprintf(a.out, "Menú colapsado: %t\n", p.SidebarCollapsed)
}
