package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Gateway   GatewayConfig
	Booking   BookingConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	RateLimit RateLimitConfig
	Crypto    CryptoConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Colombo"`

	MaxConns        int32         `envconfig:"DB_MAX_CONNS" default:"50"`
	MinConns        int32         `envconfig:"DB_MIN_CONNS" default:"2"`
	MaxConnLifetime time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `envconfig:"DB_MAX_CONN_IDLE_TIME" default:"10m"`
	// AutoMigrate applies pending migrations when the API starts.
	AutoMigrate bool `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Colombo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"19800"` // 5.5*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
	// Issuer is checked against the iss claim when set.
	Issuer string        `envconfig:"JWT_ISSUER"`
	Leeway time.Duration `envconfig:"JWT_LEEWAY" default:"30s"`
}

type GatewayConfig struct {
	MerchantID     string `envconfig:"PAYHERE_MERCHANT_ID" required:"true"`
	MerchantSecret string `envconfig:"PAYHERE_MERCHANT_SECRET" required:"true"`
	CheckoutURL    string `envconfig:"PAYHERE_CHECKOUT_URL" default:"https://sandbox.payhere.lk/pay/checkout"`
	ReturnURL      string `envconfig:"PAYHERE_RETURN_URL" required:"true"`
	CancelURL      string `envconfig:"PAYHERE_CANCEL_URL" required:"true"`
	NotifyURL      string `envconfig:"PAYHERE_NOTIFY_URL" required:"true"`
}

type BookingConfig struct {
	LeadTime          time.Duration `envconfig:"BOOKING_LEAD_TIME" default:"3h"`
	RescheduleWindow  time.Duration `envconfig:"BOOKING_RESCHEDULE_FREE_WINDOW" default:"120h"`
	RescheduleFee     int64         `envconfig:"BOOKING_RESCHEDULE_FEE_CENTS" default:"50000"`
	Currency          string        `envconfig:"BOOKING_CURRENCY" default:"LKR"`
	AdminUserID       string        `envconfig:"BOOKING_ADMIN_USER_ID" required:"true"`
	TimeZone          string        `envconfig:"BOOKING_TIMEZONE" default:"Asia/Colombo"`
	IntentTTL         time.Duration `envconfig:"BOOKING_INTENT_TTL" default:"2h"`
	IdempotencyKeyTTL time.Duration `envconfig:"BOOKING_IDEMPOTENCY_TTL" default:"24h"`
}

// Location falls back to UTC when the zone database lacks the configured zone.
func (c BookingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:""`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type KafkaConfig struct {
	Brokers      []string      `envconfig:"KAFKA_BROKERS" default:""`
	PollInterval time.Duration `envconfig:"NOTIFICATION_RELAY_INTERVAL" default:"2s"`
	BatchSize    int           `envconfig:"NOTIFICATION_RELAY_BATCH" default:"50"`
}

type RateLimitConfig struct {
	Limit    int           `envconfig:"RATE_LIMIT_REQUESTS" default:"30"`
	Window   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
	FailOpen bool          `envconfig:"RATE_LIMIT_FAIL_OPEN" default:"true"`
}

type CryptoConfig struct {
	// 32 bytes, hex encoded
	BankDetailsKey string `envconfig:"BANK_DETAILS_KEY" required:"true"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// LoadConfig reads an optional .env file first; variables already set in the
// environment take precedence.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Colombo",
			MaxConns: 10,
			MinConns: 1,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders: []string{"Content-Type"},
			MaxAge:       time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Colombo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 19800,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
			Issuer:   "therapy-identity-test",
			Leeway:   5 * time.Second,
		},
		Gateway: GatewayConfig{
			MerchantID:     "1211149",
			MerchantSecret: "test-merchant-secret",
			CheckoutURL:    "https://sandbox.payhere.lk/pay/checkout",
			ReturnURL:      "http://localhost:3000/payments/return",
			CancelURL:      "http://localhost:3000/payments/cancel",
			NotifyURL:      "http://localhost:8889/api/payments/notify",
		},
		Booking: BookingConfig{
			LeadTime:          3 * time.Hour,
			RescheduleWindow:  120 * time.Hour,
			RescheduleFee:     50000,
			Currency:          "LKR",
			AdminUserID:       "00000000-0000-0000-0000-0000000000ad",
			TimeZone:          "Asia/Colombo",
			IntentTTL:         2 * time.Hour,
			IdempotencyKeyTTL: 24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			Limit:    30,
			Window:   time.Minute,
			FailOpen: true,
		},
		Crypto: CryptoConfig{
			BankDetailsKey: "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f",
		},
	}
}
