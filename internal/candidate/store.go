// Copyright (c) 2026 Votra. All rights reserved.
// Author: platform@votra.app

package candidate

import (
	"context"

	"github.com/votra-app/votra/pkg/pagination"
)

// Repository defines read access to the candidate catalogue.
type Repository interface {

	/*
		List returns one page of candidates in ballot order.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params

		Returns:
		  - []Candidate: Page of entries, ballot position ascending
		  - error: Database retrieval failures
	*/
	List(context context.Context, params pagination.Params) ([]Candidate, error)

	/*
		Count returns the total number of candidates.

		Parameters:
		  - context: context.Context

		Returns:
		  - int: Total count
		  - error: Database retrieval failures
	*/
	Count(context context.Context) (int, error)
}
