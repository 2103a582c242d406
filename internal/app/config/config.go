package config

import (
	"preauth-service/internal/pkg/constvars"
	"preauth-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "preauth"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Minio: Minio{
			Port:       utils.GetEnvString("MINIO_PORT", "9000"),
			Host:       utils.GetEnvString("MINIO_HOST", "localhost"),
			Username:   utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password:   utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "preauth-documents"),
			UseSSL:     utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "UTC"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUESTS", 10),
			ShutdownTimeout:            utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 60),
			DocumentMaxUploadSizeInMB:  int64(utils.GetEnvInt("APP_DOCUMENT_MAX_UPLOAD_SIZE_IN_MB", 10)),
			CaseLockExpiryInSeconds:    utils.GetEnvInt("APP_CASE_LOCK_EXPIRY_IN_SECONDS", 120),
			PolicyCacheExpiryInMinutes: utils.GetEnvInt("APP_POLICY_CACHE_EXPIRY_IN_MINUTES", 15),
		},
		JWT: JWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 1),
		},
		Retriever: Retriever{
			BaseUrl:          utils.GetEnvString("RETRIEVER_BASE_URL", "http://localhost:7070"),
			InsurerKBID:      utils.GetEnvString("RETRIEVER_INSURER_KB_ID", ""),
			ProviderKBID:     utils.GetEnvString("RETRIEVER_PROVIDER_KB_ID", ""),
			MaxResults:       utils.GetEnvInt("RETRIEVER_MAX_RESULTS", 5),
			TimeoutInSeconds: utils.GetEnvInt("RETRIEVER_TIMEOUT_IN_SECONDS", 15),
		},
		Reasoning: Reasoning{
			BaseUrl:              utils.GetEnvString("REASONING_BASE_URL", "http://localhost:7071"),
			ModelID:              utils.GetEnvString("REASONING_MODEL_ID", ""),
			SystemInstruction:    utils.GetEnvString("REASONING_SYSTEM_INSTRUCTION", constvars.DefaultSystemInstruction),
			MaxContextChars:      utils.GetEnvInt("REASONING_MAX_CONTEXT_CHARS", 24000),
			MaxRetries:           utils.GetEnvInt("REASONING_MAX_RETRIES", 2),
			TimeoutInSeconds:     utils.GetEnvInt("REASONING_TIMEOUT_IN_SECONDS", 60),
			InvocationsPerSecond: utils.GetEnvFloat("REASONING_INVOCATIONS_PER_SECOND", 2),
		},
		Notification: Notification{
			ClientQueueSize: utils.GetEnvInt("NOTIFICATION_CLIENT_QUEUE_SIZE", 256),
			CaseEventQueue:  utils.GetEnvString("NOTIFICATION_CASE_EVENT_QUEUE", "preauth_case_events"),
		},
	}
}
