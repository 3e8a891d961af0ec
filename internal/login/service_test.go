// Copyright (c) 2026 Votra. All rights reserved.
// Author: platform@votra.app

package login

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/votra-app/votra/internal/otp"
	"github.com/votra-app/votra/internal/platform/apperr"
	"github.com/votra-app/votra/internal/platform/constants"
	"github.com/votra-app/votra/internal/platform/sec"
	"github.com/votra-app/votra/internal/voter"
)

// # Test Doubles

type fakeVoterRepo struct {
	voters map[string]*voter.Voter

	findErr error
	markErr error

	markedVoterID string
	markedSubject string
}

func (repo *fakeVoterRepo) FindByID(_ context.Context, voterID string) (*voter.Voter, error) {
	if repo.findErr != nil {
		return nil, repo.findErr
	}
	account, ok := repo.voters[voterID]
	if !ok {
		return nil, apperr.NotFound("Voter")
	}
	return account, nil
}

func (repo *fakeVoterRepo) Exists(_ context.Context, voterID string) (bool, error) {
	_, ok := repo.voters[voterID]
	return ok, nil
}

func (repo *fakeVoterRepo) MarkVerified(_ context.Context, voterID, externalSubjectID string) error {
	if repo.markErr != nil {
		return repo.markErr
	}
	repo.markedVoterID = voterID
	repo.markedSubject = externalSubjectID
	return nil
}

type fakeLimiter struct {
	allowed  bool
	allowErr error
	resets   int
}

func (limiter *fakeLimiter) Allow(_ context.Context, _ string) (bool, error) {
	return limiter.allowed, limiter.allowErr
}

func (limiter *fakeLimiter) Reset(_ context.Context, _ string) error {
	limiter.resets++
	return nil
}

type failingVerifier struct {
	err error
}

func (verifier *failingVerifier) Verify(_ context.Context, _ otp.Assertion) (string, error) {
	return "", verifier.err
}

// # Fixtures

func newTestRepo(t *testing.T) *fakeVoterRepo {
	t.Helper()

	hash, err := sec.HashPassword("correct")
	require.NoError(t, err)

	return &fakeVoterRepo{
		voters: map[string]*voter.Voter{
			"V100": {VoterID: "V100", PasswordHash: hash, Role: sec.RoleVoter},
		},
	}
}

func newTokens(t *testing.T) *sec.TokenService {
	t.Helper()

	tokens, err := sec.NewTokenService("unit-test-secret", constants.AuthIssuer)
	require.NoError(t, err)
	return tokens
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, status, appErr.HTTPStatus)
}

// # Step 1

func TestService_Start(t *testing.T) {
	t.Run("valid credentials yield a pending token", func(t *testing.T) {
		tokens := newTokens(t)
		service := NewService(newTestRepo(t), tokens, nil, nil, false)

		result, err := service.Start(context.Background(), "V100", "correct")
		require.NoError(t, err)
		assert.Equal(t, "voter", result.Role)

		claims, err := tokens.ValidatePending(result.Token)
		require.NoError(t, err)
		assert.Equal(t, "V100", claims.VoterID)
		assert.Equal(t, "voter", claims.Role)
		assert.Equal(t, sec.PurposePendingOTP, claims.Purpose)
	})

	t.Run("unknown voter and wrong password are indistinguishable", func(t *testing.T) {
		service := NewService(newTestRepo(t), newTokens(t), nil, nil, false)

		_, unknownErr := service.Start(context.Background(), "V999", "correct")
		_, wrongErr := service.Start(context.Background(), "V100", "incorrect")

		assertStatus(t, unknownErr, http.StatusUnauthorized)
		assertStatus(t, wrongErr, http.StatusUnauthorized)
		assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	})

	t.Run("store fault surfaces as internal error, not unauthorized", func(t *testing.T) {
		repo := newTestRepo(t)
		repo.findErr = apperr.Internal(errors.New("connection refused"))
		service := NewService(repo, newTokens(t), nil, nil, false)

		_, err := service.Start(context.Background(), "V100", "correct")
		assertStatus(t, err, http.StatusInternalServerError)
	})
}

// # Step 2

func TestService_VerifyOTP_MockFlow(t *testing.T) {
	tokens := newTokens(t)
	repo := newTestRepo(t)
	limiter := &fakeLimiter{allowed: true}
	service := NewService(repo, tokens, nil, limiter, true)

	start, err := service.Start(context.Background(), "V100", "correct")
	require.NoError(t, err)

	result, err := service.VerifyOTP(context.Background(), VerifyInput{
		TempToken: start.Token,
		VoterID:   "V100",
		Mock:      true,
	})
	require.NoError(t, err)

	assert.Equal(t, "voter", result.Role)
	assert.True(t, result.Verified)

	claims, err := tokens.VerifySession(result.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, "V100", claims.VoterID)
	assert.True(t, claims.IsVerified)
	assert.Equal(t, "mock-uid-V100", claims.ExternalSubjectID)

	assert.Equal(t, "V100", repo.markedVoterID)
	assert.Equal(t, "mock-uid-V100", repo.markedSubject)
	assert.Equal(t, 1, limiter.resets)
}

func TestService_VerifyOTP_TokenChecks(t *testing.T) {
	tokens := newTokens(t)

	t.Run("garbage pending token is rejected", func(t *testing.T) {
		service := NewService(newTestRepo(t), tokens, nil, nil, true)

		_, err := service.VerifyOTP(context.Background(), VerifyInput{TempToken: "not.a.token", Mock: true})
		assertStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("session token cannot impersonate a pending token", func(t *testing.T) {
		service := NewService(newTestRepo(t), tokens, nil, nil, true)

		sessionToken, err := tokens.IssueSession("V100", "voter", "sub", time.Minute)
		require.NoError(t, err)

		_, err = service.VerifyOTP(context.Background(), VerifyInput{TempToken: sessionToken, Mock: true})
		assertStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("caller-supplied voter id must match the claims", func(t *testing.T) {
		service := NewService(newTestRepo(t), tokens, nil, nil, true)

		start, err := service.Start(context.Background(), "V100", "correct")
		require.NoError(t, err)

		_, err = service.VerifyOTP(context.Background(), VerifyInput{
			TempToken: start.Token,
			VoterID:   "V200",
			Mock:      true,
		})
		assertStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("pending token parses again after use", func(t *testing.T) {
		// There is no revocation list. A pending token is bounded by its
		// TTL only, so a second validation of the same token still parses.
		service := NewService(newTestRepo(t), tokens, nil, nil, true)

		start, err := service.Start(context.Background(), "V100", "correct")
		require.NoError(t, err)

		_, err = service.VerifyOTP(context.Background(), VerifyInput{TempToken: start.Token, Mock: true})
		require.NoError(t, err)
		_, err = service.VerifyOTP(context.Background(), VerifyInput{TempToken: start.Token, Mock: true})
		require.NoError(t, err)
	})
}

func TestService_VerifyOTP_ProviderPolicy(t *testing.T) {
	tokens := newTokens(t)

	pendingToken := func(t *testing.T, service *Service) string {
		t.Helper()
		start, err := service.Start(context.Background(), "V100", "correct")
		require.NoError(t, err)
		return start.Token
	}

	t.Run("mock request is rejected when mock mode is disabled", func(t *testing.T) {
		service := NewService(newTestRepo(t), tokens, &failingVerifier{err: errors.New("unused")}, nil, false)

		_, err := service.VerifyOTP(context.Background(), VerifyInput{
			TempToken: pendingToken(t, service),
			Mock:      true,
		})
		assertStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("missing provider maps to service unavailable", func(t *testing.T) {
		service := NewService(newTestRepo(t), tokens, nil, nil, false)

		_, err := service.VerifyOTP(context.Background(), VerifyInput{
			TempToken: pendingToken(t, service),
		})
		assertStatus(t, err, http.StatusServiceUnavailable)
	})

	t.Run("provider rejection propagates unchanged", func(t *testing.T) {
		verifier := &failingVerifier{err: apperr.Unauthorized("OTP verification failed")}
		service := NewService(newTestRepo(t), tokens, verifier, nil, false)

		_, err := service.VerifyOTP(context.Background(), VerifyInput{
			TempToken: pendingToken(t, service),
			IDToken:   "assertion",
		})
		assertStatus(t, err, http.StatusUnauthorized)
	})
}

func TestService_VerifyOTP_BestEffortPersistence(t *testing.T) {
	tokens := newTokens(t)
	repo := newTestRepo(t)
	repo.markErr = errors.New("write timeout")
	service := NewService(repo, tokens, nil, nil, true)

	start, err := service.Start(context.Background(), "V100", "correct")
	require.NoError(t, err)

	// A failed verified-state write must not block session issuance.
	result, err := service.VerifyOTP(context.Background(), VerifyInput{TempToken: start.Token, Mock: true})
	require.NoError(t, err)
	assert.True(t, result.Verified)
	assert.NotEmpty(t, result.SessionToken)
}

func TestService_VerifyOTP_AttemptLimiting(t *testing.T) {
	tokens := newTokens(t)

	t.Run("exhausted budget is throttled", func(t *testing.T) {
		limiter := &fakeLimiter{allowed: false}
		service := NewService(newTestRepo(t), tokens, nil, limiter, true)

		start, err := service.Start(context.Background(), "V100", "correct")
		require.NoError(t, err)

		_, err = service.VerifyOTP(context.Background(), VerifyInput{TempToken: start.Token, Mock: true})
		assertStatus(t, err, http.StatusTooManyRequests)
	})

	t.Run("limiter fault fails open", func(t *testing.T) {
		limiter := &fakeLimiter{allowed: false, allowErr: errors.New("redis down")}
		service := NewService(newTestRepo(t), tokens, nil, limiter, true)

		start, err := service.Start(context.Background(), "V100", "correct")
		require.NoError(t, err)

		_, err = service.VerifyOTP(context.Background(), VerifyInput{TempToken: start.Token, Mock: true})
		require.NoError(t, err)
	})
}
