package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server configuration
	Environment string
	PublicURL   string

	// Sales configuration
	Currency   string
	AdminEmail string
	SenderName string

	// Assets (ticket logo + inline email images)
	AssetsDir string

	// Redis configuration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// PubNub configuration (staff dashboard notifications)
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubSecretKey    string
	PubNubChannel      string

	// Payment gateway configuration
	GatewayProvider  string
	GatewayHMACKey   string
	GatewayTokenHash string
	GatewayPNSubKey  string
	GatewayPNUUID    string
	GatewayPNChannel string
	GatewayPNSecret  string
	GatewayPNCipher  string

	// Timeout configuration
	MailTimeout time.Duration
	ScanLockTTL time.Duration

	// Abuse protection
	ScanRateLimit  int
	ScanRateWindow time.Duration

	// Monitoring
	EnableMetrics bool
}

func LoadConfig() *Config {
	return &Config{
		// Server
		Environment: getEnv("ENVIRONMENT", "development"),
		PublicURL:   getEnv("PUBLIC_URL", "http://localhost:8090"),

		// Sales
		Currency:   getEnv("CURRENCY", "EUR"),
		AdminEmail: getEnv("ADMIN_EMAIL", "events@saranalaya.local"),
		SenderName: getEnv("SENDER_NAME", "Evenementen | Saranalaya"),

		// Assets
		AssetsDir: getEnv("ASSETS_DIR", "assets"),

		// Redis
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubSecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),
		PubNubChannel:      getEnv("PUBNUB_CHANNEL", "event-dashboard"),

		// Gateway
		GatewayProvider:  getEnv("GATEWAY_PROVIDER", "dummy"),
		GatewayHMACKey:   getEnv("GATEWAY_HMAC_KEY", ""),
		GatewayTokenHash: getEnv("GATEWAY_TOKEN_HASH", ""),
		GatewayPNSubKey:  getEnv("GATEWAY_PN_SUBKEY", ""),
		GatewayPNUUID:    getEnv("GATEWAY_PN_UUID", ""),
		GatewayPNChannel: getEnv("GATEWAY_PN_CHANNEL", ""),
		GatewayPNSecret:  getEnv("GATEWAY_PN_SECRET", ""),
		GatewayPNCipher:  getEnv("GATEWAY_PN_CIPHER", ""),

		// Timeouts
		MailTimeout: getEnvAsDuration("MAIL_TIMEOUT", "30s"),
		ScanLockTTL: getEnvAsDuration("SCAN_LOCK_TTL", "15s"),

		// Abuse protection
		ScanRateLimit:  getEnvAsInt("SCAN_RATE_LIMIT", 30),
		ScanRateWindow: getEnvAsDuration("SCAN_RATE_WINDOW", "1m"),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
