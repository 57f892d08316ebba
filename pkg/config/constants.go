package config

const (
	// EnvPrefix is handed to envconfig; every field carries an explicit full name.
	EnvPrefix = "BULKMART"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv      = "BULKMART_APP_ENV"
	EnvPort        = "BULKMART_APP_PORT"
	EnvDBDSN       = "BULKMART_DB_DSN"
	EnvDBHost      = "BULKMART_DB_HOST"
	EnvDBUser      = "BULKMART_DB_USER"
	EnvDBName      = "BULKMART_DB_NAME"
	EnvRedisURL    = "BULKMART_REDIS_URL"
	EnvJWTSecret   = "BULKMART_JWT_SECRET"
	EnvJWTIssuer   = "BULKMART_JWT_ISSUER"
	EnvCartTTL     = "BULKMART_CART_SESSION_TTL"
	EnvRateLimit   = "BULKMART_RATE_LIMIT_LIMIT"
	EnvAutoMigrate = "BULKMART_AUTO_MIGRATE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
