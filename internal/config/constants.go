package config

import "time"

// Token lifetimes
const (
	ConfirmationTokenTTL = 24 * time.Hour
	SessionTokenTTL      = 7 * 24 * time.Hour
)

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Background job intervals
const CleanupJobInterval = 1 * time.Hour
