package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/alejandrodnm/quadra/internal/domain"
)

// Config es la configuración completa de la calculadora.
type Config struct {
	Fees       domain.FeeSchedule   `yaml:"fees"`
	Strategies []domain.StrategyMix `yaml:"strategies"`
	Goal       domain.GoalParams    `yaml:"goal"`
	Limits     LimitsConfig         `yaml:"limits"`
	Calculator CalculatorConfig     `yaml:"calculator"`
	HTTP       HTTPConfig           `yaml:"http"`
	Log        LogConfig            `yaml:"log"`
}

// LimitsConfig son los mínimos que exige el formulario de entrada.
type LimitsConfig struct {
	MinAmount float64 `yaml:"min_amount"` // USD
	MinMonths int     `yaml:"min_months"`
}

// CalculatorConfig controla el servicio de cálculo.
type CalculatorConfig struct {
	GoalWorkers int `yaml:"goal_workers"` // 0 = una goroutine por estrategia
}

// HTTPConfig controla la API JSON.
type HTTPConfig struct {
	Addr            string  `yaml:"addr"`
	RateLimitRPS    float64 `yaml:"rate_limit_rps"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	ReadTimeoutSec  int     `yaml:"read_timeout_seconds"`
	WriteTimeoutSec int     `yaml:"write_timeout_seconds"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Si el YAML no existe se usan los valores por defecto.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	// yaml.v3 solo pisa las keys presentes: las comisiones y parámetros del
	// goal seeker omitidos conservan el valor por defecto, y un 0 explícito se respeta.
	cfg := seeded()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

// Default devuelve la configuración sin archivo ni variables de entorno.
func Default() *Config {
	cfg := seeded()
	setDefaults(&cfg)
	return &cfg
}

// seeded precarga los valores donde 0 es un valor válido.
func seeded() Config {
	return Config{
		Fees: domain.DefaultFeeSchedule(),
		Goal: domain.DefaultGoalParams(),
	}
}

// Validate comprueba comisiones, estrategias y parámetros del goal seeker.
func (c *Config) Validate() error {
	if err := c.Fees.Validate(); err != nil {
		return err
	}
	if err := domain.Catalogue(c.Strategies).Validate(); err != nil {
		return err
	}
	return c.Goal.Validate()
}

// Catalogue devuelve las estrategias configuradas en orden de prioridad.
func (c *Config) Catalogue() domain.Catalogue {
	return domain.Catalogue(c.Strategies)
}

// ReadTimeout devuelve el timeout de lectura HTTP como time.Duration.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.HTTP.ReadTimeoutSec) * time.Second
}

// WriteTimeout devuelve el timeout de escritura HTTP como time.Duration.
func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.HTTP.WriteTimeoutSec) * time.Second
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("QUADRA_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}

	rates := []struct {
		env string
		dst *float64
	}{
		{"QUADRA_PLATFORM_MGMT_FEE", &cfg.Fees.PlatformManagement},
		{"QUADRA_PLATFORM_PERF_FEE", &cfg.Fees.PlatformPerformance},
		{"QUADRA_CONTRACTOR_MGMT_FEE", &cfg.Fees.ContractorManagement},
		{"QUADRA_CONTRACTOR_PERF_FEE", &cfg.Fees.ContractorPerformance},
	}
	for _, r := range rates {
		v := os.Getenv(r.env)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("env %s=%q: %w", r.env, v, err)
		}
		*r.dst = f
	}
	return nil
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
// Comisiones y goal no se rellenan aquí: 0% es una tasa válida (ver seeded).
func setDefaults(cfg *Config) {
	if len(cfg.Strategies) == 0 {
		cfg.Strategies = domain.DefaultStrategies()
	}
	if cfg.Limits.MinAmount <= 0 {
		cfg.Limits.MinAmount = 1000
	}
	if cfg.Limits.MinMonths <= 0 {
		cfg.Limits.MinMonths = 6
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = "127.0.0.1:8080"
	}
	if cfg.HTTP.RateLimitRPS <= 0 {
		cfg.HTTP.RateLimitRPS = 20
	}
	if cfg.HTTP.RateLimitBurst <= 0 {
		cfg.HTTP.RateLimitBurst = 40
	}
	if cfg.HTTP.ReadTimeoutSec <= 0 {
		cfg.HTTP.ReadTimeoutSec = 10
	}
	if cfg.HTTP.WriteTimeoutSec <= 0 {
		cfg.HTTP.WriteTimeoutSec = 10
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
