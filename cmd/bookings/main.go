package main

import (
	"context"

	"reservations/internal/bookings/events"
	"reservations/internal/bookings/handler"
	"reservations/internal/bookings/metrics"
	"reservations/internal/bookings/repository"
	"reservations/internal/bookings/service"
	"reservations/internal/bookings/validator"
	"reservations/internal/health"
	"reservations/pkg/app"
	"reservations/pkg/config"
	"reservations/pkg/kafka"
	kafka_config "reservations/pkg/kafka/config"
	kafka_middleware "reservations/pkg/kafka/middleware"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Bookings service")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	cfg.SetRedis()
	repo := initRepository(cfg)
	publisher := initPublisher(cfg, registry)

	bookingService := service.NewBookingService(
		repo,
		validator.NewBookingValidator(cfg.Log, validator.Limits{
			Strict:    cfg.StrictValidation,
			MaxGuests: cfg.MaxGuests,
		}),
		publisher,
		metrics.New(registry),
		cfg,
	)

	checks := map[string]health.Checker{"store": repo}
	if cfg.Client.Redis != nil {
		rdb := cfg.Client.Redis
		checks["redis"] = health.CheckerFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		health.NewHealthHandler(checks, registry, cfg.Log),
		handler.NewBookingHandler(bookingService, cfg.Log),
	)
	serverApp.OnShutdown(publisher.Close)
	serverApp.Run()
}

func initRepository(cfg *config.Config) repository.BookingRepository {
	if cfg.StorageBackend != config.StorageMongo {
		cfg.Log.Info("Booking store initialized", "backend", config.StorageMemory)
		return repository.NewMemoryBookingRepository()
	}

	cfg.SetMongo()
	repo, err := repository.NewMongoBookingRepository(context.Background(), cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize booking repository", "error", err)
	}

	cfg.Log.Info("Booking store initialized", "backend", config.StorageMongo, "database", cfg.MongoDatabaseName)
	return repo
}

func initPublisher(cfg *config.Config, registry prometheus.Registerer) events.Publisher {
	if !cfg.KafkaEnabled {
		return events.NoopPublisher{}
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.KafkaBookingsTopic, cfg.KafkaBookingsDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(kafka_middleware.MetricsProducerMiddleware(kafka_middleware.NewMetrics(registry)))
	}

	cfg.Log.Info("Booking events enabled", "topic", cfg.KafkaBookingsTopic, "publish_timeout", cfg.KafkaPublishTimeout)
	return events.NewAsyncPublisher(events.NewKafkaPublisher(producer), cfg.KafkaPublishTimeout, cfg.Log)
}
