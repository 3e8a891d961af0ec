// Copyright (c) 2026 Votra. All rights reserved.
// Author: platform@votra.app

package voter

import (
	"context"
)

// # Voter Data Access

// Repository defines the data access contract for voter records.
type Repository interface {

	/*
		FindByID returns the voter with the given identifier.

		Parameters:
		  - context: context.Context
		  - voterID: string

		Returns:
		  - *Voter: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, voterID string) (*Voter, error)

	/*
		Exists reports whether a voter with the given identifier is registered.

		Backs the coarse bearer-check gate on the login route.

		Parameters:
		  - context: context.Context
		  - voterID: string

		Returns:
		  - bool: Whether the id is known
		  - error: Database retrieval failures
	*/
	Exists(context context.Context, voterID string) (bool, error)

	/*
		MarkVerified records a successful external verification.

		The update is idempotent: re-verifying an already verified voter
		overwrites the subject id (last write wins, acceptable per the
		store's row-level update guarantees).

		Parameters:
		  - context: context.Context
		  - voterID: string
		  - externalSubjectID: string

		Returns:
		  - error: Persistence failures (callers treat these as best-effort)
	*/
	MarkVerified(context context.Context, voterID, externalSubjectID string) error
}
