package config

const EnvPrefix = "zelena"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv     = "ZELENA_APP_ENV"
	EnvPort       = "ZELENA_APP_PORT"
	EnvDBDSN      = "ZELENA_DB_DSN"
	EnvDBHost     = "ZELENA_DB_HOST"
	EnvDBUser     = "ZELENA_DB_USER"
	EnvDBName     = "ZELENA_DB_NAME"
	EnvRedisURL   = "ZELENA_REDIS_URL"
	EnvJWTSecret  = "ZELENA_JWT_SECRET"
	EnvJWTIssuer  = "ZELENA_JWT_ISSUER"
	EnvJWTExpMins = "ZELENA_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
