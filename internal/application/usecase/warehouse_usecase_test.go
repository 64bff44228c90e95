package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/application/usecase"
	"github.com/jhoicas/bakery-erp/internal/domain"
	"github.com/jhoicas/bakery-erp/internal/domain/entity"
	"github.com/jhoicas/bakery-erp/internal/infrastructure/storage"
)

type fakeWarehouseAPI struct {
	items []dto.WarehouseRecord
	calls int
}

func (f *fakeWarehouseAPI) ListWarehouses(context.Context) ([]dto.WarehouseRecord, error) {
	f.calls++
	return f.items, nil
}

type fakeSelector struct {
	selected string
	sets     int
}

func (f *fakeSelector) SetWarehouse(id string)      { f.selected = id; f.sets++ }
func (f *fakeSelector) SelectedWarehouseID() string { return f.selected }

func newState() *storage.FileStateStore {
	return storage.NewFileStateStore(afero.NewMemMapFs(), "/s/state.json", zerolog.Nop())
}

func twoWarehouses() *fakeWarehouseAPI {
	return &fakeWarehouseAPI{items: []dto.WarehouseRecord{
		{ID: "10", Name: "Central", Code: "CEN"},
		{ID: "11", Name: "Panadería Norte"},
	}}
}

func TestWarehouseUseCase_EnsureActiveSeleccionaLaPrimera(t *testing.T) {
	api := twoWarehouses()
	state := newState()
	sel := &fakeSelector{}
	uc := usecase.NewWarehouseUseCase(api, state, sel, zerolog.Nop())

	w, err := uc.EnsureActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "10", w.ID)
	assert.Equal(t, "10", sel.selected)

	persisted, err := state.LoadWarehouse()
	require.NoError(t, err)
	assert.Equal(t, "Central", persisted.Name)

	// segunda vez: ya hay bodega, no consulta ni invalida
	_, err = uc.EnsureActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, api.calls)
	assert.Equal(t, 1, sel.sets)
}

func TestWarehouseUseCase_EnsureActiveSinBodegas(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(&fakeWarehouseAPI{}, newState(), nil, zerolog.Nop())
	_, err := uc.EnsureActive(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoWarehouse)
}

func TestWarehouseUseCase_Select(t *testing.T) {
	sel := &fakeSelector{}
	uc := usecase.NewWarehouseUseCase(twoWarehouses(), newState(), sel, zerolog.Nop())

	w, err := uc.Select(context.Background(), "11")
	require.NoError(t, err)
	assert.Equal(t, "Panadería Norte", w.Name)
	assert.Equal(t, "11", sel.selected)

	_, err = uc.Select(context.Background(), "99")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.ListWithActive(context.Background())
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, "11", list.ActiveID)
}

func TestPreferencesUseCase(t *testing.T) {
	uc := usecase.NewPreferencesUseCase(newState())

	prefs, err := uc.Get()
	require.NoError(t, err)
	assert.Equal(t, entity.ThemeLight, prefs.Theme)

	prefs, err = uc.ToggleTheme()
	require.NoError(t, err)
	assert.Equal(t, entity.ThemeDark, prefs.Theme)

	collapsed := true
	prefs, err = uc.Update(dto.PreferencesDTO{SidebarCollapsed: &collapsed})
	require.NoError(t, err)
	assert.Equal(t, entity.Preferences{Theme: entity.ThemeDark, SidebarCollapsed: true}, prefs)

	_, err = uc.Update(dto.PreferencesDTO{Theme: "sepia"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestModuleService(t *testing.T) {
	s := usecase.NewModuleService()

	ok, err := s.HasModule(entity.RoleSales, "reporting")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.HasModule(entity.RoleSales, "Inventory")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.HasModule(entity.RoleAdmin, "billing")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
