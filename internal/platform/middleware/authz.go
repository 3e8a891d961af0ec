// Copyright (c) 2026 Votra. All rights reserved.
// Author: platform@votra.app

// Package middleware provides the HTTP middleware chain for the Votra API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, AuthZ/AuthN, Rate Limiting, and CORS.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/votra-app/votra/internal/platform/apperr"
	"github.com/votra-app/votra/internal/platform/constants"
	"github.com/votra-app/votra/internal/platform/ctxutil"
	"github.com/votra-app/votra/internal/platform/respond"
	"github.com/votra-app/votra/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify session tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the [sec.TokenService]
// implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifySession(tokenStr string) (*sec.TokenClaims, error)
}

// VoterDirectory answers whether a presented identifier belongs to a known voter.
//
// It backs the coarse bearer-check gate: a caller must present a registered
// voter id in the Authorization header before the credential check even runs.
type VoterDirectory interface {
	Exists(ctx context.Context, voterID string) (bool, error)
}

// VoterGate enforces the coarse bearer-check on the credential-check route.
//
// # Flow
//  1. Require an 'Authorization: Bearer <voter_id>' header.
//  2. Look the id up in the voter directory.
//  3. Unknown ids and directory faults are rejected with a generic 401,
//     so the gate never discloses whether an id exists or the store is down.
func VoterGate(directory VoterDirectory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			bearer, ok := bearerValue(request)
			if !ok {
				respond.Error(writer, request, apperr.Unauthorized("Forbidden"))
				return
			}

			known, err := directory.Exists(request.Context(), bearer)
			if err != nil || !known {
				respond.Error(writer, request, apperr.Unauthorized("Forbidden"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// Authenticate extracts and verifies the session token from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present and the token parses as a verified session, inject
//     [*sec.TokenClaims] into the request context for downstream use.
//  4. If present but not a session token, the request stays anonymous;
//     the same header slot carries bare voter ids on the login route, so
//     this middleware never hard-fails on parse errors.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			bearer, ok := bearerValue(request)
			if !ok {
				next.ServeHTTP(writer, request)
				return
			}

			claims, err := verifier.VerifySession(bearer)
			if err != nil {
				next.ServeHTTP(writer, request)
				return
			}

			ctx := ctxutil.WithSession(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireSession blocks requests that do not carry a verified session token.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetSession(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// bearerValue extracts the value of an 'Authorization: Bearer <v>' header.
func bearerValue(request *http.Request) (string, bool) {
	authHeader := request.Header.Get(constants.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}

	value := strings.TrimSpace(parts[1])
	return value, value != ""
}
