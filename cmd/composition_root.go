package cmd

import (
	"errors"
	"fmt"

	"deliverytracking/internal/adapters/out/courierapi"
	"deliverytracking/internal/adapters/out/estimation"
	"deliverytracking/internal/adapters/out/kafka"
	"deliverytracking/internal/adapters/out/postgres"
	"deliverytracking/internal/core/application/usecases/commands"
	"deliverytracking/internal/core/application/usecases/queries"
	"deliverytracking/internal/core/ports"
	"deliverytracking/internal/pkg/circuit"
	"deliverytracking/internal/pkg/httpclient"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	registry       *prometheus.Registry
	httpMetrics    *httpclient.Metrics
	breakerMetrics *circuit.Metrics

	payoutService     ports.CourierPayoutCalculationService
	estimationService ports.DeliveryTimeEstimationService
	publisher         *kafka.Publisher
	redisClient       *redis.Client
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	c := &CompositionRoot{
		config:         config,
		gormDB:         gormDB,
		uowFactory:     postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:       registry,
		httpMetrics:    httpclient.NewMetrics(registry),
		breakerMetrics: circuit.NewMetrics(registry),
	}

	c.payoutService = courierapi.NewPayoutClient(courierapi.Config{
		BaseURL:          config.CourierAPI.URL,
		Timeout:          config.CourierAPI.Timeout,
		FailureThreshold: config.CourierAPI.FailureThreshold,
		Cooldown:         config.CourierAPI.Cooldown,
	}, c.httpMetrics, c.breakerMetrics)

	estimationService, err := c.newEstimationService()
	if err != nil {
		return nil, err
	}
	c.estimationService = estimationService

	c.publisher = kafka.NewPublisher(config.Kafka.Brokers, config.Kafka.DeliveryEventsTopic)

	return c, nil
}

func (c *CompositionRoot) newEstimationService() (ports.DeliveryTimeEstimationService, error) {
	cfg := c.config.Estimation

	var svc ports.DeliveryTimeEstimationService
	switch cfg.Mode {
	case EstimationModeHTTP:
		svc = estimation.NewHTTPService(estimation.Config{
			BaseURL:          cfg.URL,
			Timeout:          cfg.Timeout,
			FailureThreshold: cfg.FailureThreshold,
			Cooldown:         cfg.Cooldown,
		}, c.httpMetrics, c.breakerMetrics)
	default:
		svc = estimation.NewFakeService()
	}

	if cfg.RedisURL == "" {
		return svc, nil
	}

	client, err := estimation.NewRedisClient(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	c.redisClient = client

	return estimation.NewCachedService(svc, client, cfg.CacheTTL), nil
}

func (c *CompositionRoot) Registry() *prometheus.Registry {
	return c.registry
}

func (c *CompositionRoot) CreateDeliveryPreparationService() commands.DeliveryPreparationService {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeliveryPreparationService(f, c.estimationService, c.payoutService)
}

func (c *CompositionRoot) CreateDeliveryCheckpointService() commands.DeliveryCheckpointService {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeliveryCheckpointService(f)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOutboxCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListDeliveriesQueryHandler() queries.ListDeliveriesQueryHandler {
	return queries.NewListDeliveriesQueryHandler(c.gormDB)
}

// Close releases the broker and cache connections.
func (c *CompositionRoot) Close() error {
	var problems []error
	if err := c.publisher.Close(); err != nil {
		problems = append(problems, fmt.Errorf("close kafka publisher: %w", err))
	}
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			problems = append(problems, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(problems...)
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
