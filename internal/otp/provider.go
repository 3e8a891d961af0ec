// Copyright (c) 2026 Votra. All rights reserved.
// Author: platform@votra.app

package otp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/votra-app/votra/internal/platform/constants"
	"github.com/votra-app/votra/internal/platform/ctxutil"
)

/*
ProviderClient verifies identity assertions against an external HTTP identity
provider. The provider exposes a single verification endpoint that accepts the
client-side ID token and answers with the stable subject identifier it minted
for the account.
*/
type ProviderClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

/*
NewProviderClient creates a verifier backed by a remote identity provider.

# Parameters
  - baseURL: provider origin, without a trailing slash.
  - apiKey: server-side credential sent on every verification call.

# Returns
  - *ProviderClient: configured client with a bounded per-call timeout.
*/
func NewProviderClient(baseURL, apiKey string) *ProviderClient {
	return &ProviderClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: constants.ProviderCallTimeout,
		},
	}
}

type verifyRequest struct {
	IDToken string `json:"idToken"`
}

type verifyResponse struct {
	SubjectID string `json:"subjectId"`
}

/*
Verify sends the assertion to the provider's verification endpoint.

A 2xx answer yields the provider's subject id. 400 and 401 mean the provider
examined and rejected the assertion, which is an authentication failure.
Anything else, including transport faults, counts as provider unavailability
so callers can signal a degraded platform rather than bad credentials.
*/
func (provider *ProviderClient) Verify(context context.Context, assertion Assertion) (string, error) {
	logger := ctxutil.GetLogger(context)

	bodyBytes, err := json.Marshal(verifyRequest{IDToken: assertion.IDToken})
	if err != nil {
		return "", fmt.Errorf("marshal verify request: %w", err)
	}

	request, err := http.NewRequestWithContext(context, http.MethodPost, provider.baseURL+"/v1/assertions/verify", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create verify request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+provider.apiKey)
	request.Header.Set("Content-Type", "application/json")

	started := time.Now()
	response, err := provider.client.Do(request)
	if err != nil {
		logger.Warn("identity provider unreachable", "error", err, "elapsed", time.Since(started).String())
		return "", errProviderUnavailable()
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusBadRequest || response.StatusCode == http.StatusUnauthorized:
		return "", errVerificationFailed()
	case response.StatusCode < 200 || response.StatusCode > 299:
		logger.Warn("identity provider returned unexpected status", "status", response.StatusCode)
		return "", errProviderUnavailable()
	}

	payload, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil {
		return "", errProviderUnavailable()
	}

	var result verifyResponse
	if err := json.Unmarshal(payload, &result); err != nil {
		logger.Warn("identity provider returned malformed body", "error", err)
		return "", errProviderUnavailable()
	}
	if result.SubjectID == "" {
		return "", errProviderUnavailable()
	}

	return result.SubjectID, nil
}
