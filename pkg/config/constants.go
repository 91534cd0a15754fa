package config

const (
	EnvPrefix = "reconlens"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv     = "RECONLENS_APP_ENV"
	EnvLogLevel   = "RECONLENS_LOG_LEVEL"
	EnvSeedPath   = "RECONLENS_ENTITY_SEED_PATH"
	EnvRedisURL   = "RECONLENS_REDIS_URL"
	EnvEpsilon    = "RECONLENS_ENGINE_AMOUNT_EPSILON"
	EnvJitter     = "RECONLENS_ENGINE_SCORE_JITTER"
	EnvDemotion   = "RECONLENS_ENGINE_DEMOTION_PERCENT"
	EnvWindowDays = "RECONLENS_ENGINE_HISTORY_WINDOW_DAYS"
)
