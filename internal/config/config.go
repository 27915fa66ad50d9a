package config

import "github.com/kelseyhightower/envconfig"

// Config holds all runtime settings. Every value can be overridden through
// the environment with a BANK_ prefix; defaults match the reference
// deployment.
type Config struct {
	ListenAddr          string  `envconfig:"LISTEN_ADDR" default:":14002"`
	LogLevel            string  `envconfig:"LOG_LEVEL" default:"info"`
	DailyPaymentLimit   float64 `envconfig:"DAILY_PAYMENT_LIMIT" default:"50000"`
	LoanInterestRate    float64 `envconfig:"LOAN_INTEREST_RATE" default:"0.07"`
	LoanMaxAmount       float64 `envconfig:"LOAN_MAX_AMOUNT" default:"100"`
	SavingsInterestRate float64 `envconfig:"SAVINGS_INTEREST_RATE" default:"0.02"`
	HashIterations      int     `envconfig:"HASH_ITERATIONS" default:"1000"`
	SeedDemoData        bool    `envconfig:"SEED_DEMO_DATA" default:"true"`
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("bank", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
