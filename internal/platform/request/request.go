// Copyright (c) 2026 Votra. All rights reserved.
// Author: platform@votra.app

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts common body decoding and identity extraction patterns, ensuring
consistent error handling across handlers.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/votra-app/votra/internal/platform/apperr"
	"github.com/votra-app/votra/internal/platform/ctxutil"
	"github.com/votra-app/votra/internal/platform/sec"
	"github.com/votra-app/votra/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Session extracts the authenticated session claims from the request context.

Returns nil if the request is not authenticated.
*/
func Session(request *http.Request) *sec.TokenClaims {
	return ctxutil.GetSession(request.Context())
}

/*
RequiredSession ensures the request carries a verified session and returns
its claims.

Returns:
  - *sec.TokenClaims: The authenticated session claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredSession(request *http.Request) (*sec.TokenClaims, error) {

	// Get session claims
	claims := ctxutil.GetSession(request.Context())

	// If the caller is not authenticated, return an error
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return claims, nil
}
