package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	// Storage selects the persistence adapter: "postgres" (default) or "memory".
	Storage   string
	JWTSecret string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioPublicURL string

	KafkaHost              string
	KafkaOrderChangedTopic string

	OrderStatsSchedule string
	LogLevel           string
}

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)
