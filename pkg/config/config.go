package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"chedoparti/pkg/client"
	"chedoparti/pkg/locale"
	"chedoparti/pkg/logger"
	"chedoparti/pkg/pricing"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	AdminAPISecret string
	SealerKey      string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Region string

	Pricing pricing.Config

	CoachLeadTime  time.Duration
	MemberLeadTime time.Duration

	SlotLockTTL time.Duration

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		AdminAPISecret: getEnvStr(EnvAdminAPISecret, ""),
		SealerKey:      getEnvStr(EnvSealerKey, ""),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Region: getEnvStr(EnvRegion, locale.DetectRegion(os.Getenv("TZ"))),

		CoachLeadTime:  getEnvDuration(EnvCoachLeadTime, DefaultCoachLeadTime),
		MemberLeadTime: getEnvDuration(EnvMemberLeadTime, DefaultMemberLeadTime),

		SlotLockTTL: getEnvDuration(EnvSlotLockTTL, DefaultSlotLockTTL),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}
	cfg.Pricing = loadPricing(cfg.Region, cfg.Log)

	err := cfg.Validate()
	if err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// loadPricing builds the rate table from the environment. Sport overrides
// arrive as a JSON object keyed by sport, for example
// {"padel":{"hourly_rate":2500,"peak_multiplier":1.3,"weekend_multiplier":1.2}}.
func loadPricing(region string, log *logger.Logger) pricing.Config {
	p := pricing.Config{
		DefaultHourlyRate:  int64(getEnvNum(EnvDefaultHourlyRate, DefaultHourlyRate)),
		PeakStartHour:      getEnvNum(EnvPeakStartHour, DefaultPeakStartHour),
		PeakEndHour:        getEnvNum(EnvPeakEndHour, DefaultPeakEndHour),
		PeakMultiplier:     getEnvFloat(EnvPeakMultiplier, DefaultPeakMultiplier),
		WeekendMultiplier:  getEnvFloat(EnvWeekendMultiplier, DefaultWeekendMultiplier),
		MemberDiscountRate: getEnvFloat(EnvMemberDiscountRate, DefaultMemberDiscountRate),
		RoundingUnit:       int64(getEnvNum(EnvRoundingUnit, DefaultRoundingUnit)),
		Region:             region,
	}

	if raw := os.Getenv(EnvSportRates); raw != "" {
		sports := map[string]pricing.SportPricing{}
		if err := json.Unmarshal([]byte(raw), &sports); err != nil {
			log.Warn("Ignoring malformed sport rate overrides", "error", err.Error())
		} else {
			p.Sports = sports
		}
	}
	return p
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}

	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if cfg.Pricing.DefaultHourlyRate <= 0 {
		errors = append(errors, fmt.Sprintf("DefaultHourlyRate must be positive, got: %d", cfg.Pricing.DefaultHourlyRate))
	}
	if cfg.Pricing.PeakStartHour < 0 || cfg.Pricing.PeakStartHour > 23 {
		errors = append(errors, fmt.Sprintf("PeakStartHour must be between 0 and 23, got: %d", cfg.Pricing.PeakStartHour))
	}
	if cfg.Pricing.PeakEndHour < cfg.Pricing.PeakStartHour || cfg.Pricing.PeakEndHour > 24 {
		errors = append(errors, fmt.Sprintf("PeakEndHour must be between PeakStartHour (%d) and 24, got: %d", cfg.Pricing.PeakStartHour, cfg.Pricing.PeakEndHour))
	}
	if cfg.Pricing.MemberDiscountRate < 0 || cfg.Pricing.MemberDiscountRate >= 1 {
		errors = append(errors, fmt.Sprintf("MemberDiscountRate must be in [0, 1), got: %g", cfg.Pricing.MemberDiscountRate))
	}
	if cfg.Pricing.RoundingUnit <= 0 {
		errors = append(errors, fmt.Sprintf("RoundingUnit must be positive, got: %d", cfg.Pricing.RoundingUnit))
	}

	if cfg.CoachLeadTime < 0 {
		errors = append(errors, fmt.Sprintf("CoachLeadTime cannot be negative, got: %s", cfg.CoachLeadTime))
	}
	if cfg.MemberLeadTime < 0 {
		errors = append(errors, fmt.Sprintf("MemberLeadTime cannot be negative, got: %s", cfg.MemberLeadTime))
	}
	if cfg.SlotLockTTL <= 0 {
		errors = append(errors, fmt.Sprintf("SlotLockTTL must be positive, got: %s", cfg.SlotLockTTL))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"admin_secret_set", cfg.AdminAPISecret != "",
		"sealer_key_set", cfg.SealerKey != "",
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"region", cfg.Region,
		"default_hourly_rate", cfg.Pricing.DefaultHourlyRate,
		"peak_start_hour", cfg.Pricing.PeakStartHour,
		"peak_end_hour", cfg.Pricing.PeakEndHour,
		"peak_multiplier", cfg.Pricing.PeakMultiplier,
		"weekend_multiplier", cfg.Pricing.WeekendMultiplier,
		"member_discount_rate", cfg.Pricing.MemberDiscountRate,
		"rounding_unit", cfg.Pricing.RoundingUnit,
		"sport_overrides", len(cfg.Pricing.Sports),
		"coach_lead_time", cfg.CoachLeadTime,
		"member_lead_time", cfg.MemberLeadTime,
		"slot_lock_ttl", cfg.SlotLockTTL,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
