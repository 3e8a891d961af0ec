// Copyright (c) 2026 Votra. All rights reserved.
// Author: platform@votra.app

/*
Package otp delegates proof-of-possession of the voter's second factor to an
external identity provider.

The login flow never sees the one-time passcode itself: the client exchanges
it with the provider for a signed ID assertion, and this package only checks
that assertion with the provider and extracts a stable subject identifier.

# Failure Taxonomy

Two failure kinds are deliberately distinct:

  - Verification failure (assertion rejected) maps to Unauthorized.
  - Provider unavailability (client not configured, network fault) maps to
    Service Unavailable. Conflating the two would tell a voter their codes
    are wrong when the platform is actually degraded.
*/
package otp

import (
	"context"

	"github.com/votra-app/votra/internal/platform/apperr"
)

// Assertion is the material presented by the client for OTP verification.
type Assertion struct {
	// IDToken is the provider-issued assertion obtained by the client after
	// completing the OTP exchange.
	IDToken string

	// VoterID identifies the voter being verified. The mock path derives
	// its synthetic subject from it; the real provider ignores it.
	VoterID string
}

// Verifier checks an identity assertion and returns the provider's stable
// external subject identifier on success.
type Verifier interface {
	Verify(context context.Context, assertion Assertion) (string, error)
}

// # Shared Failures

// errVerificationFailed is returned when the provider rejects the assertion.
func errVerificationFailed() *apperr.AppError {
	return apperr.Unauthorized("OTP verification failed")
}

// errProviderUnavailable is returned when the provider cannot be reached or
// was never configured.
func errProviderUnavailable() *apperr.AppError {
	return apperr.ServiceUnavailable("Identity provider is unavailable")
}
