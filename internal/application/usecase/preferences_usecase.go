package usecase

import (
	"fmt"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/domain"
	"github.com/jhoicas/bakery-erp/internal/domain/entity"
	"github.com/jhoicas/bakery-erp/internal/domain/repository"
)

// PreferencesUseCase tema y estado del sidebar persistidos en el cliente.
type PreferencesUseCase struct {
	state repository.SessionStateStore
}

// NewPreferencesUseCase construye el caso de uso.
func NewPreferencesUseCase(state repository.SessionStateStore) *PreferencesUseCase {
	return &PreferencesUseCase{state: state}
}

// Get devuelve las preferencias actuales (tema claro por defecto).
func (uc *PreferencesUseCase) Get() (entity.Preferences, error) {
	prefs, err := uc.state.LoadPreferences()
	if err != nil {
		return prefs, fmt.Errorf("leer preferencias: %w", err)
	}
	return prefs, nil
}

// Update aplica los campos presentes en el DTO y persiste el resultado.
func (uc *PreferencesUseCase) Update(in dto.PreferencesDTO) (entity.Preferences, error) {
	prefs, err := uc.Get()
	if err != nil {
		return prefs, err
	}
	switch in.Theme {
	case "":
	case entity.ThemeLight, entity.ThemeDark:
		prefs.Theme = in.Theme
	default:
		return prefs, fmt.Errorf("%w: tema %q", domain.ErrInvalidInput, in.Theme)
	}
	if in.SidebarCollapsed != nil {
		prefs.SidebarCollapsed = *in.SidebarCollapsed
	}
	if err := uc.state.SavePreferences(prefs); err != nil {
		return prefs, fmt.Errorf("guardar preferencias: %w", err)
	}
	return prefs, nil
}

// ToggleTheme alterna entre claro y oscuro.
func (uc *PreferencesUseCase) ToggleTheme() (entity.Preferences, error) {
	prefs, err := uc.Get()
	if err != nil {
		return prefs, err
	}
	next := entity.ThemeDark
	if prefs.Theme == entity.ThemeDark {
		next = entity.ThemeLight
	}
	return uc.Update(dto.PreferencesDTO{Theme: next})
}
