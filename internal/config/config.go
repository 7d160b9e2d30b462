package config

type Config struct {
	Environment Environment
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`

	Auth   Auth   `envPrefix:"AUTH_"`
	Stripe Stripe `envPrefix:"STRIPE_"`
	AWS    AWS    `envPrefix:"AWS_"`
}

type Auth struct {
	JWTSecret   string `env:"JWT_SECRET"`
	TokenTTLHrs int    `env:"TOKEN_TTL_HOURS" envDefault:"720"`
}

type Stripe struct {
	BaseApiURL    string `env:"BASE_API_URL" envDefault:"https://api.stripe.com"`
	SecretKey     string `env:"SECRET_KEY"`
	WebhookSecret string `env:"WEBHOOK_SECRET"`
}

type AWS struct {
	Region          string `env:"REGION" envDefault:"ap-southeast-1"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	S3Bucket        string `env:"S3_BUCKET" envDefault:"najia"`
	SNSSenderID     string `env:"SNS_SENDER_ID" envDefault:"Najia"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
