package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port             string
	StoreName        string
	Currency         string
	TaxRate          float64
	ShippingStandard float64
	ShippingExpress  float64

	// Cooldown windows for latched storefront actions.
	AddToCartCooldown     time.Duration
	BeginCheckoutCooldown time.Duration
	PaymentCooldown       time.Duration
	PaymentProcessing     time.Duration

	// Optional catalog database. Empty host disables it and the
	// built-in catalog is used instead.
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// Optional tag-management forwarding. Empty URL disables it.
	RabbitMQURL       string
	AnalyticsExchange string
	AnalyticsQueue    string
	DeadLetterQueue   string
}

func LoadConfig() *Config {
	return &Config{
		Port:             getEnv("PORT", "8080"),
		StoreName:        getEnv("STORE_NAME", "The Cocktail Store"),
		Currency:         getEnv("CURRENCY", "USD"),
		TaxRate:          getEnvFloat("TAX_RATE", 0.21),
		ShippingStandard: getEnvFloat("SHIPPING_STANDARD", 5.00),
		ShippingExpress:  getEnvFloat("SHIPPING_EXPRESS", 15.00),

		AddToCartCooldown:     getEnvDuration("ADD_TO_CART_COOLDOWN", 2*time.Second),
		BeginCheckoutCooldown: getEnvDuration("BEGIN_CHECKOUT_COOLDOWN", 100*time.Millisecond),
		PaymentCooldown:       getEnvDuration("PAYMENT_COOLDOWN", 2*time.Second),
		PaymentProcessing:     getEnvDuration("PAYMENT_PROCESSING_DELAY", 2*time.Second),

		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: getEnvFromFile("DB_PASSWORD_FILE", "DB_PASSWORD", ""),
		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBName:     getEnv("DB_NAME", "storefront"),

		RabbitMQURL:       getEnvFromFile("RABBITMQ_URL_FILE", "RABBITMQ_URL", ""),
		AnalyticsExchange: getEnv("ANALYTICS_EXCHANGE", "datalayer_exchange"),
		AnalyticsQueue:    getEnv("ANALYTICS_QUEUE", "datalayer_queue"),
		DeadLetterQueue:   getEnv("DEAD_LETTER_QUEUE", "datalayer_dead_letter"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvFromFile(fileKey, envKey, defaultValue string) string {
	if filePath := os.Getenv(fileKey); filePath != "" {
		if content, err := os.ReadFile(filePath); err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return getEnv(envKey, defaultValue)
}
