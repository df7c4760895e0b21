package app

import (
	"context"

	"github.com/Gunvolt24/storefront/config"
	cachemem "github.com/Gunvolt24/storefront/internal/cache/memory"
	"github.com/Gunvolt24/storefront/internal/catalog"
	"github.com/Gunvolt24/storefront/internal/kafka"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/internal/repo/file"
	"github.com/Gunvolt24/storefront/internal/repo/memory"
	"github.com/Gunvolt24/storefront/internal/repo/postgres"
	redisrepo "github.com/Gunvolt24/storefront/internal/repo/redis"
	"github.com/Gunvolt24/storefront/internal/usecase"
	"github.com/Gunvolt24/storefront/pkg/validate"
)

// OpenCartStorage — слот корзины по драйверу из конфигурации и функция его закрытия.
func OpenCartStorage(ctx context.Context, cfg *config.Config, log ports.Logger) (ports.CartStorage, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		log.Warnf(ctx, "cart storage: memory, cart is lost on restart")
		return memory.NewCartSlot(), func() {}, nil

	case config.DriverRedis:
		client, err := redisrepo.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		slot := redisrepo.NewCartSlot(client, cfg.Redis.KeyPrefix, cfg.Storage.SlotKey)
		log.Infof(ctx, "cart storage: redis addr=%s key=%s", cfg.Redis.Addr, slot.Key())
		return slot, func() {
			if err := client.Close(); err != nil {
				log.Warnf(ctx, "redis close: %v", err)
			}
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Postgres.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, nil, err
			}
		}
		log.Infof(ctx, "cart storage: postgres slot=%s", cfg.Storage.SlotKey)
		return postgres.NewCartSlot(pool, cfg.Storage.SlotKey), pool.Close, nil

	default:
		slot := file.NewCartSlot(cfg.Storage.FilePath)
		log.Infof(ctx, "cart storage: file path=%s", slot.Path())
		return slot, func() {}, nil
	}
}

// NewCatalog — клиент каталога, кэш карточек и сервис поверх них.
func NewCatalog(cfg *config.Config, log ports.Logger) *usecase.CatalogService {
	validator := validate.NewProductValidator()
	client := catalog.NewClient(catalog.Options{
		BaseURL: cfg.Catalog.BaseURL,
		Timeout: cfg.Catalog.Timeout,
		RPS:     cfg.Catalog.RPS,
		Burst:   cfg.Catalog.Burst,
	}, validator, log)
	productCache := cachemem.NewProductCache(cfg.Cache.Capacity, cfg.Cache.TTL)
	return usecase.NewCatalogService(client, productCache, validator, log)
}

// NewCartEventPublisher — публикатор событий корзины в топик CartEventsTopic.
func NewCartEventPublisher(cfg *config.Config, log ports.Logger) *kafka.CartEventPublisher {
	return kafka.NewCartEventPublisher(&kafka.ProducerConfig{
		Brokers:      cfg.Kafka.Brokers,
		Topic:        cfg.Kafka.CartEventsTopic,
		BatchTimeout: cfg.Kafka.BatchTimeout,
		WriteTimeout: cfg.Kafka.WriteTimeout,
		QueueSize:    cfg.Kafka.QueueSize,
		MaxAttempts:  cfg.Kafka.MaxAttempts,
		RetryInitial: cfg.Kafka.RetryInitial,
		RetryMax:     cfg.Kafka.RetryMax,
	}, cfg.Storage.SlotKey, log)
}
