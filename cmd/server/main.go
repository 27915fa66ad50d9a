package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/coralbank/coralbank-backend/internal/adapter/tcp"
	"github.com/coralbank/coralbank-backend/internal/config"
	"github.com/coralbank/coralbank-backend/internal/usecase/command"
	"github.com/coralbank/coralbank-backend/internal/usecase/credential"
	"github.com/coralbank/coralbank-backend/internal/usecase/ledger"
	"github.com/coralbank/coralbank-backend/internal/usecase/loan"
	"github.com/coralbank/coralbank-backend/internal/usecase/seeder"
	"github.com/coralbank/coralbank-backend/internal/usecase/transfer"
)

// The interest timer fires every 30 days, matching the savings accrual
// period.
const interestSchedule = "@every 720h"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	// Without a working key-derivation primitive the process cannot store
	// credentials securely, so this is fatal at startup rather than a
	// per-request failure.
	if err := credential.SelfCheck(); err != nil {
		logrus.WithError(err).Fatal("credential key derivation unavailable")
	}

	creds := credential.NewStore(cfg.HashIterations)
	ledgerSvc := ledger.NewService()
	transfers := transfer.NewService(ledgerSvc, transfer.NewDailyLimitTracker(),
		decimal.NewFromFloat(cfg.DailyPaymentLimit))
	loans := loan.NewService(ledgerSvc,
		decimal.NewFromFloat(cfg.LoanInterestRate), decimal.NewFromFloat(cfg.LoanMaxAmount))
	processor := command.NewProcessor(ledgerSvc, transfers, loans,
		decimal.NewFromFloat(cfg.SavingsInterestRate))

	if cfg.SeedDemoData {
		if err := seeder.NewService(creds, ledgerSvc, transfers).Seed(); err != nil {
			logrus.WithError(err).Fatal("failed to seed demo data")
		}
	}

	// The core never spawns its own timers; the scheduler drives the
	// processor hooks, which serialize with customer commands.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("0 0 * * *", processor.ResetDailyLimits); err != nil {
		logrus.WithError(err).Fatal("failed to schedule daily limit reset")
	}
	if _, err := scheduler.AddFunc(interestSchedule, processor.AccrueInterest); err != nil {
		logrus.WithError(err).Fatal("failed to schedule interest accrual")
	}
	scheduler.Start()

	server := tcp.NewServer(cfg.ListenAddr, creds, processor)
	go func() {
		if err := server.ListenAndServe(); err != nil {
			logrus.WithError(err).Fatal("server stopped")
		}
	}()

	waitForShutdown(server, scheduler)
}

// waitForShutdown blocks until SIGTERM or SIGINT, then stops the scheduler
// and the listener.
func waitForShutdown(server *tcp.Server, scheduler *cron.Cron) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logrus.WithField("signal", sig.String()).Info("shutting down")

	<-scheduler.Stop().Done()
	if err := server.Close(); err != nil {
		logrus.WithError(err).Warn("error closing listener")
	}
	logrus.Info("server stopped")
}
