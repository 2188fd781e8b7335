package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvAdminAPISecret = "ADMIN_API_SECRET"
	EnvSealerKey      = "SEALER_KEY"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvRegion = "REGION"

	EnvDefaultHourlyRate  = "PRICING_DEFAULT_HOURLY_RATE"
	EnvPeakStartHour      = "PRICING_PEAK_START_HOUR"
	EnvPeakEndHour        = "PRICING_PEAK_END_HOUR"
	EnvPeakMultiplier     = "PRICING_PEAK_MULTIPLIER"
	EnvWeekendMultiplier  = "PRICING_WEEKEND_MULTIPLIER"
	EnvMemberDiscountRate = "PRICING_MEMBER_DISCOUNT_RATE"
	EnvRoundingUnit       = "PRICING_ROUNDING_UNIT"
	EnvSportRates         = "PRICING_SPORT_RATES"

	EnvCoachLeadTime  = "RULES_COACH_LEAD_TIME"
	EnvMemberLeadTime = "RULES_MEMBER_LEAD_TIME"

	EnvSlotLockTTL = "SLOT_LOCK_TTL"
)
