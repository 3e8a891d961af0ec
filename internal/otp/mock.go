// Copyright (c) 2026 Votra. All rights reserved.
// Author: platform@votra.app

package otp

import "context"

/*
MockVerifier accepts every assertion and fabricates a deterministic subject
identifier from the voter id. It exists for local development and automated
testing where no real identity provider is reachable.

It must never be wired in production. The login service only consults it when
mock verification is explicitly enabled through configuration.
*/
type MockVerifier struct{}

/*
NewMockVerifier creates a verifier that always succeeds.

# Returns
  - *MockVerifier: ready to use, no configuration required.
*/
func NewMockVerifier() *MockVerifier {
	return &MockVerifier{}
}

// Verify returns a synthetic subject id derived from the voter id. The same
// voter always maps to the same subject so repeated logins stay idempotent.
func (verifier *MockVerifier) Verify(_ context.Context, assertion Assertion) (string, error) {
	return "mock-uid-" + assertion.VoterID, nil
}
