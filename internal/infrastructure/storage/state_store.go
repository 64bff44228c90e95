// Package storage persiste el estado del cliente en un archivo JSON clave/valor.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/jhoicas/bakery-erp/internal/domain/entity"
	"github.com/jhoicas/bakery-erp/internal/domain/repository"
)

// Claves estandarizadas del estado persistido.
const (
	KeyAccessToken      = "access_token"
	KeyRefreshToken     = "refresh_token"
	KeyUser             = "erp_user"
	KeyActiveWarehouse  = "active_warehouse"
	KeyThemeMode        = "theme_mode"
	KeySidebarCollapsed = "sidebar_collapsed"
)

var _ repository.SessionStateStore = (*FileStateStore)(nil)

// FileStateStore almacén clave/valor de strings sobre un único archivo JSON.
// Los valores estructurados se guardan como JSON serializado dentro del string.
// Un archivo corrupto se trata como vacío; un valor corrupto se elimina al leerlo.
type FileStateStore struct {
	fs   afero.Fs
	path string
	log  zerolog.Logger
	mu   sync.Mutex
}

// NewFileStateStore construye el almacén sobre fs en la ruta indicada.
func NewFileStateStore(fs afero.Fs, path string, log zerolog.Logger) *FileStateStore {
	return &FileStateStore{fs: fs, path: path, log: log}
}

// Get devuelve el valor de la clave y si existe.
func (s *FileStateStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

// Set guarda el valor de la clave.
func (s *FileStateStore) Set(key, value string) error {
	return s.update(func(data map[string]string) {
		data[key] = value
	})
}

// Remove elimina las claves indicadas.
func (s *FileStateStore) Remove(keys ...string) error {
	return s.update(func(data map[string]string) {
		for _, k := range keys {
			delete(data, k)
		}
	})
}

// AccessToken implementa api.TokenSource.
func (s *FileStateStore) AccessToken() (string, error) {
	v, _, err := s.Get(KeyAccessToken)
	return v, err
}

// SaveTokens guarda el par de tokens.
func (s *FileStateStore) SaveTokens(tokens entity.Tokens) error {
	return s.update(func(data map[string]string) {
		data[KeyAccessToken] = tokens.Access
		data[KeyRefreshToken] = tokens.Refresh
	})
}

// LoadUser lee el perfil persistido (nil si no hay o estaba corrupto).
func (s *FileStateStore) LoadUser() (*entity.User, error) {
	var u entity.User
	ok, err := s.loadJSON(KeyUser, &u)
	if err != nil || !ok {
		return nil, err
	}
	if u.ID == "" && u.Name == "" {
		return nil, s.dropCorrupt(KeyUser, errors.New("perfil vacío"))
	}
	return &u, nil
}

// SaveUser guarda el perfil (nil lo elimina).
func (s *FileStateStore) SaveUser(user *entity.User) error {
	return s.saveJSON(KeyUser, user)
}

// LoadWarehouse lee la bodega activa (nil si no hay o estaba corrupta).
func (s *FileStateStore) LoadWarehouse() (*entity.Warehouse, error) {
	var w entity.Warehouse
	ok, err := s.loadJSON(KeyActiveWarehouse, &w)
	if err != nil || !ok {
		return nil, err
	}
	if w.ID == "" {
		return nil, s.dropCorrupt(KeyActiveWarehouse, errors.New("bodega sin id"))
	}
	return &w, nil
}

// SaveWarehouse guarda la bodega activa (nil la elimina).
func (s *FileStateStore) SaveWarehouse(warehouse *entity.Warehouse) error {
	return s.saveJSON(KeyActiveWarehouse, warehouse)
}

// LoadPreferences lee tema y estado del sidebar. Valores ausentes o inválidos toman el defecto.
func (s *FileStateStore) LoadPreferences() (entity.Preferences, error) {
	prefs := entity.Preferences{Theme: entity.ThemeLight}

	theme, ok, err := s.Get(KeyThemeMode)
	if err != nil {
		return prefs, err
	}
	switch entity.Theme(theme) {
	case entity.ThemeLight, entity.ThemeDark:
		prefs.Theme = entity.Theme(theme)
	default:
		if ok {
			if err := s.dropCorrupt(KeyThemeMode, fmt.Errorf("tema %q", theme)); err != nil {
				return prefs, err
			}
		}
	}

	raw, ok, err := s.Get(KeySidebarCollapsed)
	if err != nil || !ok {
		return prefs, err
	}
	collapsed, perr := strconv.ParseBool(raw)
	if perr != nil {
		return prefs, s.dropCorrupt(KeySidebarCollapsed, perr)
	}
	prefs.SidebarCollapsed = collapsed
	return prefs, nil
}

// SavePreferences guarda tema y estado del sidebar.
func (s *FileStateStore) SavePreferences(prefs entity.Preferences) error {
	return s.update(func(data map[string]string) {
		data[KeyThemeMode] = string(prefs.Theme)
		data[KeySidebarCollapsed] = strconv.FormatBool(prefs.SidebarCollapsed)
	})
}

// Clear elimina todas las claves (logout), preferencias incluidas.
func (s *FileStateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(map[string]string{})
}

func (s *FileStateStore) loadJSON(key string, out any) (bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, s.dropCorrupt(key, err)
	}
	return true, nil
}

func (s *FileStateStore) saveJSON(key string, v any) error {
	if isNil(v) {
		return s.Remove(key)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: serializar %s: %w", key, err)
	}
	return s.Set(key, string(b))
}

func isNil(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case *entity.User:
		return x == nil
	case *entity.Warehouse:
		return x == nil
	}
	return false
}

func (s *FileStateStore) dropCorrupt(key string, cause error) error {
	s.log.Warn().Err(cause).Str("key", key).Msg("storage: valor corrupto, se elimina")
	return s.Remove(key)
}

func (s *FileStateStore) update(fn func(map[string]string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.read()
	if err != nil {
		return err
	}
	fn(data)
	return s.write(data)
}

// read devuelve el contenido del archivo; ausente o corrupto = vacío.
func (s *FileStateStore) read() (map[string]string, error) {
	b, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("storage: leer %s: %w", s.path, err)
	}
	data := map[string]string{}
	if len(b) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(b, &data); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("storage: archivo de estado corrupto, se ignora")
		return map[string]string{}, nil
	}
	return data, nil
}

// write escribe a un temporal y renombra para no dejar el archivo a medias.
func (s *FileStateStore) write(data map[string]string) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("storage: crear directorio: %w", err)
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: serializar estado: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, b, 0o600); err != nil {
		return fmt.Errorf("storage: escribir %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("storage: reemplazar %s: %w", s.path, err)
	}
	return nil
}
