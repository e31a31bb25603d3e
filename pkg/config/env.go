package config

// EnvPrefix is handed to envconfig; every field carries an explicit name so it is informational.
const EnvPrefix = "POS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "POS_APP_ENV"
	EnvPort     = "POS_APP_PORT"
	EnvLogLevel = "POS_LOG_LEVEL"

	EnvDBDSN  = "POS_DB_DSN"
	EnvDBHost = "POS_DB_HOST"
	EnvDBUser = "POS_DB_USER"
	EnvDBName = "POS_DB_NAME"

	EnvRedisURL = "POS_REDIS_URL"

	EnvJWTSecret = "POS_JWT_SECRET"

	EnvSalesHistoryBaseURL = "POS_SALES_HISTORY_BASE_URL"
	EnvSalesHistoryTimeout = "POS_SALES_HISTORY_TIMEOUT"

	EnvCheckoutMaxIDAttempts = "POS_CHECKOUT_MAX_ID_ATTEMPTS"
)

var discreteDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
