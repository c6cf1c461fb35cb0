package config

type StripeConfig struct {
	Enabled       bool   `yaml:"enabled"`
	SecretKey     string `yaml:"secret_key"`
	WebhookSecret string `yaml:"webhook_secret"`
}

func loadStripeConfig() *StripeConfig {
	return &StripeConfig{
		Enabled:       getEnvAsBool("STRIPE_ENABLED", false),
		SecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
	}
}
