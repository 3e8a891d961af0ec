// Copyright (c) 2026 Votra. All rights reserved.
// Author: platform@votra.app

/*
Package voter implements the electorate credential store.

It defines the Voter entity and the data access contract used by the login
protocol. The package carries no business logic; credential comparison and
state transitions live in the login service; this layer only reads and
mutates voter records.

# Architecture

  - Entity: Voter (identity record owned by the credential store).
  - Repository: Abstracted interface implemented on PostgreSQL (pgx).
  - Mutation: Only the login flow's verification step writes here; voters
    are registered out-of-band and never deleted by this service.
*/
package voter

import (
	"time"

	"github.com/votra-app/votra/internal/platform/sec"
)

// # Domain Entities

// Voter represents a registered member of the electorate.
type Voter struct {
	VoterID      string        `json:"voter_id"`
	PasswordHash string        `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.VoterRole `json:"role"`
	IsVerified   bool          `json:"is_verified"`

	// ExternalSubjectID is the identity provider's stable subject for this
	// voter. Empty until the first successful OTP verification.
	ExternalSubjectID string `json:"external_subject_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the login domain.
const (
	FieldVoterID   = "voter_id"
	FieldPassword  = "password"
	FieldIDToken   = "idToken"
	FieldTempToken = "tempToken"
	FieldRole      = "role"
)
