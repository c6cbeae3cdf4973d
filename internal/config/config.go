package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer

	Backend Backend `envPrefix:"CAKESTORY_"`
	Poll    Poll    `envPrefix:"POLL_"`

	CartDBPath string `env:"CART_DB_PATH" envDefault:"cart.db"`
}

// Backend points the client at the CakeStory REST API.
type Backend struct {
	BaseApiURL  string        `env:"BASE_API_URL"`
	AccessToken string        `env:"ACCESS_TOKEN"`
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Poll tunes the payment-status poller. MaxAttempts of 0 keeps polling
// until a terminal status arrives or the session is stopped.
type Poll struct {
	Interval    time.Duration `env:"INTERVAL" envDefault:"5s"`
	MaxAttempts int           `env:"MAX_ATTEMPTS" envDefault:"0"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
