// Copyright (c) 2026 Votra. All rights reserved.
// Author: platform@votra.app

package otp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/votra-app/votra/internal/platform/apperr"
)

func TestMockVerifier_DeterministicSubject(t *testing.T) {
	verifier := NewMockVerifier()

	first, err := verifier.Verify(context.Background(), Assertion{IDToken: "anything", VoterID: "V100"})
	require.NoError(t, err)
	second, err := verifier.Verify(context.Background(), Assertion{IDToken: "something else", VoterID: "V100"})
	require.NoError(t, err)

	assert.Equal(t, "mock-uid-V100", first)
	assert.Equal(t, first, second, "the same voter must always map to the same subject")

	other, err := verifier.Verify(context.Background(), Assertion{VoterID: "V200"})
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestProviderClient_Verify(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantSub    string
	}{
		{
			name: "accepted assertion yields subject id",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"subjectId": "sub-42"}`))
			},
			wantSub: "sub-42",
		},
		{
			name: "rejected assertion maps to unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "malformed assertion maps to unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "provider fault maps to unavailable",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name: "empty subject maps to unavailable",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{}`))
			},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			provider := NewProviderClient(server.URL, "test-key")
			subject, err := provider.Verify(context.Background(), Assertion{IDToken: "tok", VoterID: "V100"})

			if tt.wantSub != "" {
				require.NoError(t, err)
				assert.Equal(t, tt.wantSub, subject)
				return
			}

			require.Error(t, err)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantStatus, appErr.HTTPStatus)
		})
	}
}

func TestProviderClient_Unreachable(t *testing.T) {
	// A closed server port stands in for a network partition.
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	provider := NewProviderClient(server.URL, "test-key")
	_, err := provider.Verify(context.Background(), Assertion{IDToken: "tok"})

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPStatus)
}
