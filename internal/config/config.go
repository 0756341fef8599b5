package config

import (
	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port       string `env:"APP_PORT" envDefault:"8080"`
	ServerURL  string `env:"SERVER_URL" envDefault:"http://localhost:8080"`
	AdminRoute string `env:"ADMIN_ROUTE" envDefault:"/admin"`

	MongoURI string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGO_DB" envDefault:"quill_db"`

	JWTSecret    string `env:"JWT_SECRET" envDefault:"default_secret_key"`
	AccessTTLMin int    `env:"ACCESS_TTL_MIN" envDefault:"15"`

	RedisAddr       string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RateLimitPerMin int    `env:"RATE_LIMIT_PER_MIN" envDefault:"5"`

	RabbitURL     string `env:"RABBIT_URL"`
	EventExchange string `env:"RABBIT_EXCHANGE" envDefault:"quill.events"`
	EmailQueue    string `env:"RABBIT_EMAIL_QUEUE" envDefault:"email_requests"`
	Concurrency   int    `env:"RABBIT_CONCURRENCY" envDefault:"4"`

	// EmailSync makes auth operations await email delivery and surface
	// transport errors. Off by default: dispatch is fire-and-forget and
	// failures are only logged.
	EmailSync bool `env:"EMAIL_SYNC" envDefault:"false"`

	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"en"`
	Dev           bool   `env:"APP_DEV" envDefault:"false"`

	SMTP SMTPConfig
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST" envDefault:"localhost"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM" envDefault:"quill@example.com"`
}

func Load() (Config, error) {
	return env.ParseAs[Config]()
}
