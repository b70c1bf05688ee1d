package config

// EnvPrefix namespaces every environment variable read by envconfig.
const EnvPrefix = "ROUTESALES"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "ROUTESALES_DB_DSN"
	EnvDBHost = "ROUTESALES_DB_HOST"
	EnvDBUser = "ROUTESALES_DB_USER"
	EnvDBName = "ROUTESALES_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
