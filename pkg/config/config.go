package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Engine   EngineConfig
	Entities EntitiesConfig
	Redis    RedisConfig
}

// Load reads configuration from the environment, preferring values from a
// local .env file when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Engine.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"RECONLENS_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"RECONLENS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RECONLENS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// EngineConfig carries the classification policy knobs. The defaults are the
// documented production thresholds; they are policy, not law, and every one of
// them can be overridden per deployment.
type EngineConfig struct {
	AmountEpsilon      float64 `envconfig:"RECONLENS_ENGINE_AMOUNT_EPSILON" default:"0.01"`
	ScoreJitter        int     `envconfig:"RECONLENS_ENGINE_SCORE_JITTER" default:"10"`
	BaseReconciled     int     `envconfig:"RECONLENS_ENGINE_BASE_RECONCILED" default:"90"`
	BasePartial        int     `envconfig:"RECONLENS_ENGINE_BASE_PARTIAL" default:"70"`
	BaseUnreconciled   int     `envconfig:"RECONLENS_ENGINE_BASE_UNRECONCILED" default:"50"`
	DemotionPercent    float64 `envconfig:"RECONLENS_ENGINE_DEMOTION_PERCENT" default:"0.20"`
	DemotionFloor      int     `envconfig:"RECONLENS_ENGINE_DEMOTION_FLOOR" default:"60"`
	HistoryWindowDays  int     `envconfig:"RECONLENS_ENGINE_HISTORY_WINDOW_DAYS" default:"90"`
	HistoryMaxPayments int     `envconfig:"RECONLENS_ENGINE_HISTORY_MAX_PAYMENTS" default:"500"`
	BatchWorkers       int     `envconfig:"RECONLENS_ENGINE_BATCH_WORKERS" default:"8"`

	// Reference notes treated the same as an empty note: no invoice can be
	// associated with the payment.
	UnknownReferenceSentinels []string `envconfig:"RECONLENS_ENGINE_UNKNOWN_REFERENCE_SENTINELS" default:"UNKNOWN"`
}

// Validate rejects policy values the classifier cannot honor.
func (e EngineConfig) Validate() error {
	if e.AmountEpsilon < 0 {
		return fmt.Errorf("engine amount epsilon must not be negative, got %v", e.AmountEpsilon)
	}
	if e.ScoreJitter < 0 || e.ScoreJitter > 50 {
		return fmt.Errorf("engine score jitter must be in [0,50], got %d", e.ScoreJitter)
	}
	for name, base := range map[string]int{
		"base reconciled":   e.BaseReconciled,
		"base partial":      e.BasePartial,
		"base unreconciled": e.BaseUnreconciled,
	} {
		if base < 0 || base > 100 {
			return fmt.Errorf("engine %s score must be in [0,100], got %d", name, base)
		}
	}
	if e.BaseReconciled <= e.BasePartial || e.BasePartial <= e.BaseUnreconciled {
		return fmt.Errorf("engine base scores must strictly decrease across statuses")
	}
	if e.DemotionPercent < 0 || e.DemotionPercent >= 1 {
		return fmt.Errorf("engine demotion percent must be in [0,1), got %v", e.DemotionPercent)
	}
	if e.DemotionFloor < 0 || e.DemotionFloor > 100 {
		return fmt.Errorf("engine demotion floor must be in [0,100], got %d", e.DemotionFloor)
	}
	if e.HistoryWindowDays < 0 {
		return fmt.Errorf("engine history window days must not be negative, got %d", e.HistoryWindowDays)
	}
	if e.HistoryMaxPayments < 0 {
		return fmt.Errorf("engine history max payments must not be negative, got %d", e.HistoryMaxPayments)
	}
	if e.BatchWorkers < 1 {
		return fmt.Errorf("engine batch workers must be at least 1, got %d", e.BatchWorkers)
	}
	return nil
}

type EntitiesConfig struct {
	SeedPath string `envconfig:"RECONLENS_ENTITY_SEED_PATH"`
}

type RedisConfig struct {
	URL          string `envconfig:"RECONLENS_REDIS_URL"`
	Address      string `envconfig:"RECONLENS_REDIS_ADDR"`
	Password     string `envconfig:"RECONLENS_REDIS_PASSWORD"`
	DB           int    `envconfig:"RECONLENS_REDIS_DB" default:"0"`
	PoolSize     int    `envconfig:"RECONLENS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int    `envconfig:"RECONLENS_REDIS_MIN_IDLE_CONNS" default:"2"`
}
