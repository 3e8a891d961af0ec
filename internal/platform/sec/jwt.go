// Copyright (c) 2026 Votra. All rights reserved.
// Author: platform@votra.app

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, Token Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the [login.TokenIssuer] interface.
//
// # Token Model
//
// The two-step login protocol uses two purpose-tagged token kinds signed with
// the same symmetric secret:
//
//   - pending_otp: proves a successful credential check; short-lived and only
//     accepted by the OTP verification step.
//   - session: the terminal credential proving full two-factor completion.
//
// A token is never valid for a purpose other than the one baked into its
// claims, so a pending token can never be replayed as a session.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token purposes embedded in the "purpose" claim.
const (
	// PurposePendingOTP marks an intermediate credential awaiting OTP proof.
	PurposePendingOTP = "pending_otp"

	// PurposeSession marks the final verified session credential.
	PurposeSession = "session"
)

// TokenClaims represents the payload embedded inside a Votra token.
//
// # Why custom claims?
//
// By embedding the VoterID, Role, and verification state directly inside the
// token, downstream request handling can reconstruct the caller's identity
// WITHOUT querying the database. Claims are the sole source of truth once a
// token validates; caller-supplied identifiers are informational only.
type TokenClaims struct {
	jwt.RegisteredClaims

	VoterID           string `json:"voter_id"`
	Role              string `json:"role"`
	Purpose           string `json:"purpose"`
	IsVerified        bool   `json:"is_verified,omitempty"`
	ExternalSubjectID string `json:"external_subject_id,omitempty"`
}

// TokenService handles generation and verification of signed tokens using
// HMAC-SHA256 with a single process-wide secret.
//
// The secret is immutable after construction; rotation is a configuration
// change followed by a restart, never a code change.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a new TokenService from the configured secret.
// An empty secret is a fatal misconfiguration and is rejected here rather
// than at first use.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: signing secret must not be empty")
	}
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
	}, nil
}

// IssuePending creates a signed intermediate token proving that the voter's
// credentials were accepted. The token is only usable by the OTP step and
// expires after timeToLive.
func (service *TokenService) IssuePending(voterID, role string, timeToLive time.Duration) (string, error) {
	return service.sign(TokenClaims{
		VoterID: voterID,
		Role:    role,
		Purpose: PurposePendingOTP,
	}, timeToLive)
}

// IssueSession creates the terminal session token after successful external
// verification. Claims carry is_verified=true and the provider's stable
// subject identifier.
func (service *TokenService) IssueSession(voterID, role, externalSubjectID string, timeToLive time.Duration) (string, error) {
	return service.sign(TokenClaims{
		VoterID:           voterID,
		Role:              role,
		Purpose:           PurposeSession,
		IsVerified:        true,
		ExternalSubjectID: externalSubjectID,
	}, timeToLive)
}

// ValidatePending checks the signature, expiry, and purpose of an
// intermediate token. It fails closed: a valid session token presented here
// is rejected just like a forgery.
//
// Validation is stateless: there is no server-side revocation list, so the
// same pending token validates any number of times within its TTL window.
// Single use is enforced solely by the short TTL.
func (service *TokenService) ValidatePending(tokenString string) (*TokenClaims, error) {
	return service.verify(tokenString, PurposePendingOTP)
}

// VerifySession checks the signature, expiry, and purpose of a final session
// token presented on subsequent authenticated requests.
func (service *TokenService) VerifySession(tokenString string) (*TokenClaims, error) {
	return service.verify(tokenString, PurposeSession)
}

// sign stamps the registered claims and produces the compact signed string.
func (service *TokenService) sign(claims TokenClaims, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.VoterID,
		Issuer:    service.issuer,
		IssuedAt:  jwt.NewNumericDate(currentTime),
		ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// verify parses the token, enforcing the HS256 algorithm, the issuer, and
// the expected purpose tag.
func (service *TokenService) verify(tokenString, expectedPurpose string) (*TokenClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
	)

	claims := &TokenClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return service.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("sec: invalid token claims")
	}

	if claims.Purpose != expectedPurpose {
		return nil, fmt.Errorf("sec: token purpose %q is not accepted here", claims.Purpose)
	}

	if claims.VoterID == "" {
		return nil, errors.New("sec: token is missing a subject")
	}

	return claims, nil
}
