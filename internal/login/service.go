// Copyright (c) 2026 Votra. All rights reserved.
// Author: platform@votra.app

/*
Package login implements the two-step voter authentication flow.

# Flow

Step one exchanges a voter id and password for a short-lived pending token.
The pending token proves the credential check passed but grants no access on
its own. Step two exchanges the pending token plus an external identity
assertion for a verified session token. Only the session token authenticates
subsequent requests.

Both tokens are stateless: validity is established entirely from the signed
claims, never from a server-side session record.
*/
package login

import (
	"context"
	"time"

	"github.com/votra-app/votra/internal/otp"
	"github.com/votra-app/votra/internal/platform/apperr"
	"github.com/votra-app/votra/internal/platform/ctxutil"
	"github.com/votra-app/votra/internal/platform/sec"
	"github.com/votra-app/votra/internal/voter"
)

// # Contracts

// TokenIssuer mints and validates the purpose-tagged tokens the flow rides on.
type TokenIssuer interface {
	IssuePending(voterID, role string, timeToLive time.Duration) (string, error)
	IssueSession(voterID, role, externalSubjectID string, timeToLive time.Duration) (string, error)
	ValidatePending(tokenString string) (*sec.TokenClaims, error)
}

// # Results

// StartResult is the outcome of a successful credential check.
type StartResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// VerifyResult is the outcome of a successful OTP verification.
type VerifyResult struct {
	SessionToken string `json:"sessionToken"`
	Role         string `json:"role"`
	Verified     bool   `json:"verified"`
}

// VerifyInput carries the material for the second authentication step.
type VerifyInput struct {
	IDToken   string
	TempToken string
	VoterID   string
	Mock      bool
}

// # Service

/*
Service orchestrates both authentication steps.

Dependencies:
  - voters: credential and verification-state store.
  - tokens: pending/session token mint.
  - verifier: real identity provider client, nil when unconfigured.
  - mock: development verifier, consulted only when mock mode is enabled.
  - attempts: advisory OTP attempt throttle, nil disables throttling.
*/
type Service struct {
	voters    voter.Repository
	tokens    TokenIssuer
	verifier  otp.Verifier
	mock      otp.Verifier
	attempts  AttemptLimiter
	allowMock bool
}

/*
NewService creates the authentication service.

Parameters:
  - voters: voter.Repository
  - tokens: TokenIssuer
  - verifier: otp.Verifier (nil when no provider is configured)
  - attempts: AttemptLimiter (nil disables attempt throttling)
  - allowMock: whether mock verification may be requested by clients

Returns:
  - *Service: Ready to serve both steps
*/
func NewService(voters voter.Repository, tokens TokenIssuer, verifier otp.Verifier, attempts AttemptLimiter, allowMock bool) *Service {
	return &Service{
		voters:    voters,
		tokens:    tokens,
		verifier:  verifier,
		mock:      otp.NewMockVerifier(),
		attempts:  attempts,
		allowMock: allowMock,
	}
}

/*
Start performs the credential check and issues a pending token.

Unknown voter ids and wrong passwords produce the same error so the endpoint
cannot be used to enumerate registered ids. Store faults other than
not-found surface as internal errors, they are not authentication failures.

Parameters:
  - context: context.Context
  - voterID: string
  - password: string

Returns:
  - *StartResult: Pending token and the voter's role
  - error: apperr.Unauthorized on bad credentials, apperr.Internal on store faults
*/
func (service *Service) Start(context context.Context, voterID, password string) (*StartResult, error) {
	account, err := service.voters.FindByID(context, voterID)
	if err != nil {
		if appErr := apperr.As(err); appErr != nil && appErr.Code == apperr.CodeNotFound {
			return nil, apperr.Unauthorized(msgInvalidCredentials)
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(password, account.PasswordHash) {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}

	token, err := service.tokens.IssuePending(account.VoterID, string(account.Role), PendingTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &StartResult{Token: token, Role: string(account.Role)}, nil
}

/*
VerifyOTP completes the second authentication step.

The pending token is the single source of truth for voter identity and role.
A voter id supplied in the input is only cross-checked against the claims,
never trusted on its own.

Verification state is persisted best-effort: a store fault while marking the
voter verified is logged and swallowed, because the session token already
carries the verified flag and the platform re-validates statelessly.

Parameters:
  - context: context.Context
  - input: VerifyInput

Returns:
  - *VerifyResult: Session token, role, and the verified flag
  - error: apperr.Unauthorized, apperr.RateLimited, or apperr.ServiceUnavailable
*/
func (service *Service) VerifyOTP(context context.Context, input VerifyInput) (*VerifyResult, error) {
	logger := ctxutil.GetLogger(context)

	claims, err := service.tokens.ValidatePending(input.TempToken)
	if err != nil {
		return nil, apperr.Unauthorized(msgInvalidPendingToken)
	}

	if input.VoterID != "" && input.VoterID != claims.VoterID {
		return nil, apperr.Unauthorized(msgInvalidPendingToken)
	}

	if service.attempts != nil {
		allowed, err := service.attempts.Allow(context, claims.VoterID)
		if err != nil {
			// Fail open: a degraded counter must not block logins.
			logger.Warn("otp attempt limiter unavailable", "error", err)
		} else if !allowed {
			return nil, apperr.RateLimited(int(OTPAttemptWindow.Seconds()))
		}
	}

	verifier := service.verifier
	if input.Mock {
		if !service.allowMock {
			logger.Warn("mock otp verification requested but disabled", "voter_id", claims.VoterID)
			return nil, apperr.Unauthorized(msgMockDisabled)
		}
		verifier = service.mock
	}
	if verifier == nil {
		return nil, apperr.ServiceUnavailable("Identity provider is unavailable")
	}

	subjectID, err := verifier.Verify(context, otp.Assertion{
		IDToken: input.IDToken,
		VoterID: claims.VoterID,
	})
	if err != nil {
		return nil, err
	}

	if err := service.voters.MarkVerified(context, claims.VoterID, subjectID); err != nil {
		logger.Warn("could not persist verification state",
			"voter_id", claims.VoterID,
			"error", err,
		)
	}

	if service.attempts != nil {
		if err := service.attempts.Reset(context, claims.VoterID); err != nil {
			logger.Warn("could not reset otp attempt counter", "voter_id", claims.VoterID, "error", err)
		}
	}

	sessionToken, err := service.tokens.IssueSession(claims.VoterID, claims.Role, subjectID, SessionTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &VerifyResult{
		SessionToken: sessionToken,
		Role:         claims.Role,
		Verified:     true,
	}, nil
}
