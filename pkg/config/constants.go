package config

const (
	EnvPrefix = "gelaboca"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv            = "GELABOCA_APP_ENV"
	EnvPort              = "GELABOCA_APP_PORT"
	EnvDBDSN             = "GELABOCA_DB_DSN"
	EnvRedisURL          = "GELABOCA_REDIS_URL"
	EnvOpenAIAPIKey      = "GELABOCA_OPENAI_API_KEY"
	EnvPineconeAPIKey    = "GELABOCA_PINECONE_API_KEY"
	EnvPineconeIndexHost = "GELABOCA_PINECONE_INDEX_HOST"
)
