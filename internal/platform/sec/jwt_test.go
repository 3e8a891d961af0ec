// Copyright (c) 2026 Votra. All rights reserved.
// Author: platform@votra.app

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/votra-app/votra/internal/platform/sec"
)

const (
	testSecret = "unit-test-secret"
	testIssuer = "votra.test"
)

func newTokenService(t *testing.T) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(testSecret, testIssuer)
	require.NoError(t, err)
	return service
}

/*
TestNewTokenService_EmptySecret verifies that a missing signing secret is
rejected at construction time instead of failing on first use.
*/
func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", testIssuer)
	require.Error(t, err)
}

/*
TestTokenService_PendingRoundTrip issues a pending token and validates it,
checking that the decoded claims carry the purpose tag and identity fields.
*/
func TestTokenService_PendingRoundTrip(t *testing.T) {
	service := newTokenService(t)

	token, err := service.IssuePending("V100", "voter", 5*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidatePending(token)
	require.NoError(t, err)

	assert.Equal(t, "V100", claims.VoterID)
	assert.Equal(t, "voter", claims.Role)
	assert.Equal(t, sec.PurposePendingOTP, claims.Purpose)
	assert.False(t, claims.IsVerified)
	assert.Empty(t, claims.ExternalSubjectID)
}

/*
TestTokenService_PendingValidatesTwice documents the stateless validation
policy: there is no revocation list, so a second validation of the same
pending token still succeeds within its TTL window.
*/
func TestTokenService_PendingValidatesTwice(t *testing.T) {
	service := newTokenService(t)

	token, err := service.IssuePending("V100", "voter", 5*time.Minute)
	require.NoError(t, err)

	_, err = service.ValidatePending(token)
	require.NoError(t, err)

	claims, err := service.ValidatePending(token)
	require.NoError(t, err)
	assert.Equal(t, "V100", claims.VoterID)
}

/*
TestTokenService_PurposeIsolation verifies that a token is never accepted
for a purpose other than the one baked into its claims.
*/
func TestTokenService_PurposeIsolation(t *testing.T) {
	service := newTokenService(t)

	pending, err := service.IssuePending("V100", "voter", 5*time.Minute)
	require.NoError(t, err)

	session, err := service.IssueSession("V100", "voter", "sub-1", time.Hour)
	require.NoError(t, err)

	// A session token is not a pending token.
	_, err = service.ValidatePending(session)
	assert.Error(t, err)

	// A pending token is not a session.
	_, err = service.VerifySession(pending)
	assert.Error(t, err)
}

/*
TestTokenService_ValidatePending_Rejections exercises the fail-closed paths:
garbage input, expired tokens, and tokens signed with a different secret.
*/
func TestTokenService_ValidatePending_Rejections(t *testing.T) {
	service := newTokenService(t)

	forger, err := sec.NewTokenService("a-different-secret", testIssuer)
	require.NoError(t, err)

	expired, err := service.IssuePending("V100", "voter", -1*time.Minute)
	require.NoError(t, err)

	forged, err := forger.IssuePending("V100", "voter", 5*time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"empty", ""},
		{"expired", expired},
		{"wrong_secret", forged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ValidatePending(tt.token)
			assert.Error(t, err)
		})
	}
}

/*
TestTokenService_SessionClaims checks the terminal token contract: the
session always carries is_verified=true and the external subject identifier
returned by the provider.
*/
func TestTokenService_SessionClaims(t *testing.T) {
	service := newTokenService(t)

	token, err := service.IssueSession("V100", "admin", "mock-uid-V100", time.Hour)
	require.NoError(t, err)

	claims, err := service.VerifySession(token)
	require.NoError(t, err)

	assert.Equal(t, "V100", claims.VoterID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, sec.PurposeSession, claims.Purpose)
	assert.True(t, claims.IsVerified)
	assert.Equal(t, "mock-uid-V100", claims.ExternalSubjectID)
}

/*
TestTokenService_SecretSwap verifies that tokens issued under an old secret
stop validating once the configured secret changes.
*/
func TestTokenService_SecretSwap(t *testing.T) {
	oldService := newTokenService(t)

	token, err := oldService.IssuePending("V100", "voter", 5*time.Minute)
	require.NoError(t, err)

	newService, err := sec.NewTokenService("rotated-secret", testIssuer)
	require.NoError(t, err)

	_, err = newService.ValidatePending(token)
	assert.Error(t, err)
}
