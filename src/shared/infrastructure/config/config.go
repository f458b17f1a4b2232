package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DatabaseConfig son los datos de conexión a PostgreSQL
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// DSN arma el string de conexión para lib/pq
func (d DatabaseConfig) DSN() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.Name + "?sslmode=disable"
}

// Config es la configuración del servicio. Se lee de un YAML opcional y
// las variables de entorno tienen prioridad sobre el archivo.
type Config struct {
	Port              string            `yaml:"port"`
	Database          DatabaseConfig    `yaml:"database"`
	RedisAddr         string            `yaml:"redis_addr"` // Vacío = sin cache de productos
	PrometheusEnabled bool              `yaml:"prometheus_enabled"`
	TracingStdout     bool              `yaml:"tracing_stdout"`
	CartSessionTTL    time.Duration     `yaml:"cart_session_ttl"`
	ProductCacheTTL   time.Duration     `yaml:"product_cache_ttl"`
	Settings          map[string]string `yaml:"settings"` // Valores iniciales de la tienda
}

// Default devuelve la configuración por defecto
func Default() *Config {
	return &Config{
		Port: "8080",
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "postgres",
			Password: "postgres",
			Name:     "pos_db",
		},
		CartSessionTTL:  2 * time.Hour,
		ProductCacheTTL: 30 * time.Second,
	}
}

// Load aplica sobre los valores por defecto el archivo YAML (si path no es vacío)
// y luego las variables de entorno
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)

	var err error
	if c.PrometheusEnabled, err = getEnvBool("PROMETHEUS_ENABLED", c.PrometheusEnabled); err != nil {
		return err
	}
	if c.TracingStdout, err = getEnvBool("TRACING_STDOUT", c.TracingStdout); err != nil {
		return err
	}
	if c.CartSessionTTL, err = getEnvDuration("CART_SESSION_TTL", c.CartSessionTTL); err != nil {
		return err
	}
	if c.ProductCacheTTL, err = getEnvDuration("PRODUCT_CACHE_TTL", c.ProductCacheTTL); err != nil {
		return err
	}
	return nil
}

// getEnv obtiene una variable de entorno o devuelve un valor por defecto
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}
