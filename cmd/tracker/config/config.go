package config

import "time"

// Config holds application configuration.
type Config struct {
	DatabaseURL       string        `env:"DATABASE_URL"`
	DefaultCurrency   string        `env:"DEFAULT_CURRENCY" envDefault:"$"`
	MaxParallel       int           `env:"MAX_PARALLEL_PRODUCTS" envDefault:"5"`
	CycleBudget       time.Duration `env:"CYCLE_BUDGET" envDefault:"5m"`
	CycleSchedule     string        `env:"CYCLE_SCHEDULE" envDefault:"@every 1h"`
	DiscountThreshold int           `env:"DISCOUNT_THRESHOLD" envDefault:"40"`

	Scrape   Scrape
	RabbitMQ RabbitMQ
}

// Scrape holds product page fetching configuration.
type Scrape struct {
	HTTPTimeout       time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	RequestsPerSecond float64       `env:"REQUESTS_PER_SECOND" envDefault:"1"`
	MaxRetries        int           `env:"MAX_RETRIES" envDefault:"2"`
	RespectRobots     bool          `env:"RESPECT_ROBOTS" envDefault:"true"`
	UserAgent         string        `env:"USER_AGENT" envDefault:"price-tracker/0.0.1"`
}

// RabbitMQ holds RabbitMQ configuration.
type RabbitMQ struct {
	URL                    string `env:"RABBITMQ_URL"`
	Exchange               string `env:"RABBITMQ_EXCHANGE" envDefault:"price-tracker-ex"`
	CommandQueue           string `env:"RABBITMQ_QUEUE" envDefault:"price-tracker.commands"`
	NotificationRoutingKey string `env:"RABBITMQ_NOTIFICATION_ROUTING_KEY" envDefault:"price-tracker.notifications"`
}
