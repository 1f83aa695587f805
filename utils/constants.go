package utils

import (
	"time"
)

// Token and session time constants
const (
	// AccessTokenTTL is the time-to-live for access tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour

	// RefreshTokenTTL is the time-to-live for refresh tokens (7 days)
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Weighing constants
const (
	// TicketNumberWidth is the zero-padded width of finalized ticket numbers
	TicketNumberWidth = 8

	// MaxScaleWeight is the largest weight in kilograms the truck scale can report
	MaxScaleWeight = 80000.0
)
