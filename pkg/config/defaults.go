package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "chedoparti"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100

	// Region defaults to what pkg/locale infers from TZ, AR when unknown.

	DefaultHourlyRate    = 2000
	DefaultPeakStartHour = 18
	DefaultPeakEndHour   = 22
	DefaultRoundingUnit  = 100

	DefaultCoachLeadTime  = 1 * time.Hour
	DefaultMemberLeadTime = 2 * time.Hour

	DefaultSlotLockTTL = 30 * time.Second
)

const (
	DefaultPeakMultiplier     = 1.0
	DefaultWeekendMultiplier  = 1.0
	DefaultMemberDiscountRate = 0.10
)
