package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress          string
	DatabaseURI         string
	GatewayAddress      string
	GatewayServerKey    string
	SchedulerSecret     string
	AuthSecret          string
	OrderTTL            time.Duration
	SweepInterval       time.Duration
	PaymentPollInterval time.Duration
	PollBatchSize       int
	WorkerPoolSize      int
	ShutdownTimeout     time.Duration
	HoldFulfillment     bool
}

const (
	defaultRunAddress          = ":8080"
	defaultAuthSecret          = "change-me-in-production"
	defaultOrderTTL            = 24 * time.Hour
	defaultSweepInterval       = time.Hour
	defaultPaymentPollInterval = 30 * time.Second
	defaultPollBatchSize       = 32
	defaultWorkerPoolSize      = 4
	defaultShutdownTimeout     = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		GatewayAddress:      getString(lookup, "GATEWAY_ADDRESS", ""),
		GatewayServerKey:    getString(lookup, "GATEWAY_SERVER_KEY", ""),
		SchedulerSecret:     getString(lookup, "SCHEDULER_SECRET", ""),
		AuthSecret:          getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		OrderTTL:            getDuration(lookup, "ORDER_TTL", defaultOrderTTL),
		SweepInterval:       getDuration(lookup, "SWEEP_INTERVAL", defaultSweepInterval),
		PaymentPollInterval: getDuration(lookup, "PAYMENT_POLL_INTERVAL", defaultPaymentPollInterval),
		PollBatchSize:       getInt(lookup, "POLL_BATCH_SIZE", defaultPollBatchSize),
		WorkerPoolSize:      getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		HoldFulfillment:     getBool(lookup, "HOLD_FULFILLMENT_ON_FAILED_PAYMENT", true),
	}

	fs := flag.NewFlagSet("washmart", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		orderTTLStr        = cfg.OrderTTL.String()
		sweepIntervalStr   = cfg.SweepInterval.String()
		pollIntervalStr    = cfg.PaymentPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.GatewayAddress, "g", cfg.GatewayAddress, "Payment gateway base URL")
	fs.StringVar(&cfg.GatewayServerKey, "gateway-key", cfg.GatewayServerKey, "Payment gateway server key")
	fs.StringVar(&cfg.SchedulerSecret, "scheduler-secret", cfg.SchedulerSecret, "Shared secret for the sweep trigger")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing auth tokens")
	fs.StringVar(&orderTTLStr, "order-ttl", orderTTLStr, "Age after which unpaid orders expire")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between internal expiry sweeps")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between gateway status polls")
	fs.IntVar(&cfg.PollBatchSize, "poll-batch", cfg.PollBatchSize, "Maximum orders per polling batch")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent status poll workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.BoolVar(&cfg.HoldFulfillment, "hold-fulfillment", cfg.HoldFulfillment, "Block fulfillment progress on failed payments")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.OrderTTL, err = time.ParseDuration(orderTTLStr); err != nil {
		return nil, fmt.Errorf("invalid order ttl: %w", err)
	}

	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.PaymentPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = string(content)
	}

	if cfg.OrderTTL <= 0 {
		cfg.OrderTTL = defaultOrderTTL
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.PaymentPollInterval <= 0 {
		cfg.PaymentPollInterval = defaultPaymentPollInterval
	}

	if cfg.PollBatchSize <= 0 {
		cfg.PollBatchSize = defaultPollBatchSize
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.GatewayAddress == "" {
		return nil, fmt.Errorf("payment gateway address must be provided")
	}

	if cfg.SchedulerSecret == "" {
		return nil, fmt.Errorf("scheduler secret must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
