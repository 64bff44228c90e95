package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	API     APIConfig
	Cache   CacheConfig
	State   StateConfig
	HTTP    HTTPConfig
	Metrics MetricsConfig
	DB      DBConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// APIConfig backend del ERP.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CacheConfig caché de inventario en memoria.
type CacheConfig struct {
	TTL time.Duration
}

// StateConfig estado persistido del cliente (tokens, usuario, bodega, preferencias).
type StateConfig struct {
	Dir string
}

// File ruta del archivo de estado.
func (c StateConfig) File() string {
	return filepath.Join(c.Dir, "state.json")
}

// HTTPConfig configuración del servidor BFF.
type HTTPConfig struct {
	Host        string
	Port        int
	SwaggerFile string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MetricsConfig exposición de métricas Prometheus.
type MetricsConfig struct {
	Enabled bool
}

// DBConfig configuración de PostgreSQL (espejo de reportes, opcional).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// Configured true si hay datos suficientes para conectarse.
func (c DBConfig) Configured() bool {
	return c.DatabaseURL != "" || c.Host != ""
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// Load lee la configuración. Prioridad: variables de entorno, .env del directorio actual,
// config.yaml (., ./config), valores por defecto.
func Load() (*Config, error) {
	// .env no pisa variables ya exportadas
	if err := gotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: leer .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: leer config.yaml: %w", err)
		}
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "bakery-erp"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL: getString(v, "API_BASE_URL", "https://bakeryerpbackend.onrender.com"),
			Timeout: time.Duration(getInt(v, "API_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Cache: CacheConfig{
			TTL: time.Duration(getInt(v, "CACHE_TTL_SECONDS", 300)) * time.Second,
		},
		State: StateConfig{
			Dir: getString(v, "STATE_DIR", defaultStateDir()),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "127.0.0.1"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		Metrics: MetricsConfig{
			Enabled: getBool(v, "METRICS_ENABLED", true),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", ""),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "bakery_mirror"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
	}
	if cfg.API.Timeout <= 0 {
		return nil, fmt.Errorf("config: API_TIMEOUT_SECONDS debe ser positivo")
	}
	if cfg.Cache.TTL <= 0 {
		return nil, fmt.Errorf("config: CACHE_TTL_SECONDS debe ser positivo")
	}
	return cfg, nil
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "bakery-erp")
	}
	return ".bakery-erp"
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
