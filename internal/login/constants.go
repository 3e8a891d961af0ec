// Copyright (c) 2026 Votra. All rights reserved.
// Author: platform@votra.app

package login

import "time"

// # Token Lifetimes

const (
	// PendingTokenTTL bounds the window between passing the credential check
	// and completing OTP verification. Kept short because pending tokens are
	// never revoked server-side.
	PendingTokenTTL = 5 * time.Minute

	// SessionTokenTTL is the lifetime of a fully verified session token.
	SessionTokenTTL = 24 * time.Hour
)

// # OTP Attempt Limits

const (
	// MaxOTPAttempts is how many verification attempts a voter may make
	// inside a single attempt window before being throttled.
	MaxOTPAttempts = 5

	// OTPAttemptWindow is the sliding expiry applied to a voter's attempt
	// counter in Redis.
	OTPAttemptWindow = 10 * time.Minute
)

// # Error Messages

const (
	// msgInvalidCredentials is deliberately identical for unknown voters and
	// wrong passwords so the endpoint does not leak which ids exist.
	msgInvalidCredentials = "Invalid voter id or password"

	msgInvalidPendingToken = "Invalid or expired login token"

	msgMockDisabled = "OTP verification failed"
)
