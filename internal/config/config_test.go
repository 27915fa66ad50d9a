package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":14002", cfg.ListenAddr)
	assert.Equal(t, 50000.0, cfg.DailyPaymentLimit)
	assert.Equal(t, 0.07, cfg.LoanInterestRate)
	assert.Equal(t, 100.0, cfg.LoanMaxAmount)
	assert.Equal(t, 0.02, cfg.SavingsInterestRate)
	assert.Equal(t, 1000, cfg.HashIterations)
	assert.True(t, cfg.SeedDemoData)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("BANK_DAILY_PAYMENT_LIMIT", "250")
	t.Setenv("BANK_LISTEN_ADDR", ":9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 250.0, cfg.DailyPaymentLimit)
	assert.Equal(t, ":9000", cfg.ListenAddr)
}
