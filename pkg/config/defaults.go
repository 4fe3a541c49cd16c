package config

import "time"

const (
	StorageMemory = "memory"
	StorageMongo  = "mongo"
)

const (
	DefaultPort      = "8000"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultStorageBackend = StorageMemory

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "reservations"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultRedisDB = 0

	DefaultKafkaEnabled          = false
	DefaultKafkaBookingsTopic    = "bookings.events"
	DefaultKafkaBookingsDLQTopic = "bookings.events.dlq"
	DefaultKafkaPublishTimeout   = 5 * time.Second

	DefaultCORSAllowedOrigins = "*"
	DefaultTrustedProxies     = ""

	DefaultRateLimitRequests = 100
	DefaultRateLimitWindow   = 1 * time.Minute
	DefaultRateLimitBurst    = 20

	DefaultRequestTimeout = 10 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultUniqueBookingIDs = false
	DefaultStrictValidation = false
	DefaultNormalizeNames   = false
	DefaultMaxGuests        = 50
)
