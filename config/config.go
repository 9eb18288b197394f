package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del trader. Se construye una vez
// en main y se pasa explícitamente; ningún componente lee estado global.
type Config struct {
	Trader  TraderConfig  `yaml:"trader"`
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Health  HealthConfig  `yaml:"health"`
	Log     LogConfig     `yaml:"log"`

	// PrivateKey es la clave de firma para trading real. Solo viene de
	// la variable de entorno POLYMARKET_PRIVATE_KEY, nunca del YAML.
	PrivateKey string `yaml:"-"`
}

// TraderConfig controla el ciclo de decisión.
type TraderConfig struct {
	Assets              []string `yaml:"assets"`
	LookbackMinutes     int      `yaml:"lookback_minutes"`
	MinMomentumPct      float64  `yaml:"min_momentum_pct"`
	VolumeConfidence    bool     `yaml:"volume_confidence"`
	MinVolumeRatio      float64  `yaml:"min_volume_ratio"`
	MaxPosition         float64  `yaml:"max_position"`
	MinPosition         float64  `yaml:"min_position"`
	MaxTotalSpend       float64  `yaml:"max_total_spend"`
	MinTimeRemainingSec int      `yaml:"min_time_remaining_seconds"`
	IntervalSeconds     int      `yaml:"interval_seconds"`
	FeeRate             float64  `yaml:"fee_rate"`
	Live                bool     `yaml:"live"`
	TopMarkets          int      `yaml:"top_markets"`
}

// APIConfig contiene los base URLs de las APIs externas.
type APIConfig struct {
	CLOBBase    string `yaml:"clob_base"`
	GammaBase   string `yaml:"gamma_base"`
	BinanceBase string `yaml:"binance_base"`
}

// StorageConfig controla dónde se persisten los datos.
type StorageConfig struct {
	DataDir string `yaml:"data_dir"` // ledger y run state en JSON
	DSN     string `yaml:"dsn"`      // histórico de trades SQLite, o ":memory:"
}

// HealthConfig controla el endpoint de liveness.
type HealthConfig struct {
	Port int `yaml:"port"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el .env si existe.
// Si el archivo YAML no existe se usan los defaults. Las variables de
// entorno sobreescriben los valores del YAML.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	case os.IsNotExist(err):
		// sin archivo: defaults + env
	default:
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// RunInterval devuelve el intervalo entre ciclos como time.Duration.
func (c *Config) RunInterval() time.Duration {
	return time.Duration(c.Trader.IntervalSeconds) * time.Second
}

// MinTimeRemaining devuelve el floor de tiempo restante como time.Duration.
func (c *Config) MinTimeRemaining() time.Duration {
	return time.Duration(c.Trader.MinTimeRemainingSec) * time.Second
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están
// presentes. Las keys son las mismas que usaba el deployment original.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ASSETS"); v != "" {
		var assets []string
		for _, a := range strings.Split(strings.ToUpper(v), ",") {
			if a = strings.TrimSpace(a); a != "" {
				assets = append(assets, a)
			}
		}
		cfg.Trader.Assets = assets
	}
	if v, err := strconv.ParseFloat(os.Getenv("MAX_POSITION"), 64); err == nil {
		cfg.Trader.MaxPosition = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("MAX_TOTAL_SPEND"), 64); err == nil {
		cfg.Trader.MaxTotalSpend = v
	}
	if v := os.Getenv("LIVE"); strings.EqualFold(v, "true") {
		cfg.Trader.Live = true
	}
	if v, err := strconv.Atoi(os.Getenv("RUN_INTERVAL")); err == nil && v > 0 {
		cfg.Trader.IntervalSeconds = v
	}
	if v := os.Getenv("BINANCE_API_URL"); v != "" {
		cfg.API.BinanceBase = v
	}
	if v, err := strconv.Atoi(os.Getenv("PORT")); err == nil && v > 0 {
		cfg.Health.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	cfg.PrivateKey = os.Getenv("POLYMARKET_PRIVATE_KEY")
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if len(cfg.Trader.Assets) == 0 {
		cfg.Trader.Assets = []string{"BTC"}
	}
	if cfg.Trader.LookbackMinutes <= 0 {
		cfg.Trader.LookbackMinutes = 5
	}
	if cfg.Trader.MinMomentumPct <= 0 {
		cfg.Trader.MinMomentumPct = 0.5
	}
	if cfg.Trader.MinVolumeRatio <= 0 {
		cfg.Trader.MinVolumeRatio = 0.5
	}
	if cfg.Trader.MaxPosition <= 0 {
		cfg.Trader.MaxPosition = 3.0
	}
	if cfg.Trader.MinPosition <= 0 {
		cfg.Trader.MinPosition = 1.0
	}
	if cfg.Trader.MaxTotalSpend <= 0 {
		cfg.Trader.MaxTotalSpend = 20.0
	}
	if cfg.Trader.MinTimeRemainingSec <= 0 {
		cfg.Trader.MinTimeRemainingSec = 60
	}
	if cfg.Trader.IntervalSeconds <= 0 {
		cfg.Trader.IntervalSeconds = 60
	}
	if cfg.Trader.FeeRate <= 0 {
		cfg.Trader.FeeRate = 0.10
	}
	if cfg.Trader.TopMarkets <= 0 {
		cfg.Trader.TopMarkets = 3
	}
	if cfg.API.CLOBBase == "" {
		cfg.API.CLOBBase = "https://clob.polymarket.com"
	}
	if cfg.API.GammaBase == "" {
		cfg.API.GammaBase = "https://gamma-api.polymarket.com"
	}
	if cfg.API.BinanceBase == "" {
		cfg.API.BinanceBase = "https://data-api.binance.vision"
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = "data"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "data/fastloop.db"
	}
	if cfg.Health.Port <= 0 {
		cfg.Health.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
