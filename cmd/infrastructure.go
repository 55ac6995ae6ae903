package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fablab/internal/adapters/out/kafka"
	"fablab/internal/adapters/out/memory"
	"fablab/internal/adapters/out/objectstore"
	"fablab/internal/adapters/out/postgres"
	"fablab/internal/adapters/out/postgres/readmodel"

	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDatabase connects gorm to PostgreSQL. Unique violations surface as
// gorm.ErrDuplicatedKey.
func OpenDatabase(configs Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// BuildInfrastructure picks the outbound adapters. The returned cleanup
// releases connections and must be called on shutdown.
func BuildInfrastructure(ctx context.Context, configs Config, log *slog.Logger) (Infrastructure, func(), error) {
	var (
		infra   Infrastructure
		closers []func() error
		cleanup = func() {
			for i := len(closers) - 1; i >= 0; i-- {
				if err := closers[i](); err != nil {
					log.WarnContext(ctx, "cleanup failed", "error", err)
				}
			}
		}
	)

	switch configs.Storage {
	case StorageMemory:
		store := memory.NewStore()
		reader := memory.NewReader(store)
		infra.UoWFactory = memory.NewUnitOfWorkFactory(store)
		infra.CatalogReader = reader
		infra.OrderReader = reader
		log.WarnContext(ctx, "using in-memory storage, data is lost on restart")
	case StoragePostgres, "":
		db, err := OpenDatabase(configs)
		if err != nil {
			return Infrastructure{}, cleanup, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return Infrastructure{}, cleanup, err
		}
		closers = append(closers, sqlDB.Close)

		infra.UoWFactory = postgres.NewGormUnitOfWorkFactory(db)
		infra.CatalogReader = readmodel.NewCatalogReader(db)
		infra.OrderReader = readmodel.NewOrderReader(db)
	default:
		return Infrastructure{}, cleanup, fmt.Errorf("unknown storage %q", configs.Storage)
	}

	if configs.MinioEndpoint != "" {
		assets, err := objectstore.NewMinioAssetStore(ctx, objectstore.Config{
			Endpoint:  configs.MinioEndpoint,
			AccessKey: configs.MinioAccessKey,
			SecretKey: configs.MinioSecretKey,
			Bucket:    configs.MinioBucket,
			UseSSL:    configs.MinioUseSSL,
			PublicURL: configs.MinioPublicURL,
		})
		if err != nil {
			cleanup()
			return Infrastructure{}, func() {}, err
		}
		infra.Assets = assets
	} else {
		infra.Assets = objectstore.NewMemoryAssetStore()
		log.WarnContext(ctx, "MINIO_ENDPOINT is not set, images are kept in memory")
	}

	if configs.KafkaHost != "" {
		if configs.KafkaOrderChangedTopic == "" {
			cleanup()
			return Infrastructure{}, func() {}, errors.New("KAFKA_ORDER_CHANGED_TOPIC is required when KAFKA_HOST is set")
		}
		publisher, err := kafka.NewOrderEventPublisher(strings.Split(configs.KafkaHost, ","), configs.KafkaOrderChangedTopic, log)
		if err != nil {
			cleanup()
			return Infrastructure{}, func() {}, err
		}
		closers = append(closers, publisher.Close)
		infra.Publisher = publisher
	} else {
		infra.Publisher = kafka.NopPublisher{}
	}

	return infra, cleanup, nil
}

// MigrateDatabase creates or updates the schema.
func MigrateDatabase(configs Config) error {
	db, err := OpenDatabase(configs)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return postgres.Migrate(db)
}
