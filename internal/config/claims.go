package config

import "time"

type ClaimsConfig struct {
	TokenTTL         time.Duration `yaml:"token_ttl"`
	SweepInterval    time.Duration `yaml:"sweep_interval"`
	TicketRetryAfter time.Duration `yaml:"ticket_retry_after"`
	VerificationPath string        `yaml:"verification_path"`
}

func loadClaimsConfig() *ClaimsConfig {
	return &ClaimsConfig{
		TokenTTL:         getEnvAsDuration("CLAIM_TOKEN_TTL", 24*time.Hour),
		SweepInterval:    getEnvAsDuration("CLAIM_SWEEP_INTERVAL", 15*time.Minute),
		TicketRetryAfter: getEnvAsDuration("CLAIM_TICKET_RETRY_AFTER", 5*time.Minute),
		VerificationPath: getEnv("CLAIM_VERIFICATION_PATH", "/verify"),
	}
}
