// Copyright (c) 2026 Votra. All rights reserved.
// Author: platform@votra.app

package candidate

import (
	"context"

	"github.com/votra-app/votra/internal/platform/apperr"
	"github.com/votra-app/votra/pkg/pagination"
)

// ListResult bundles one page of candidates with its pagination metadata.
type ListResult struct {
	Candidates []Candidate     `json:"candidates"`
	Meta       pagination.Meta `json:"meta"`
}

// Service serves paginated candidate listings.
type Service struct {
	candidates Repository
}

// NewService creates the candidate service. A nil repository is tolerated
// and reported as service unavailability at request time.
func NewService(candidates Repository) *Service {
	return &Service{candidates: candidates}
}

/*
List returns one page of the ballot.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - *ListResult: Page plus metadata
  - error: apperr.ServiceUnavailable when the store is missing, store faults otherwise
*/
func (service *Service) List(context context.Context, params pagination.Params) (*ListResult, error) {
	if service.candidates == nil {
		return nil, apperr.ServiceUnavailable("Candidate catalogue is unavailable")
	}

	entries, err := service.candidates.List(context, params)
	if err != nil {
		return nil, err
	}

	total, err := service.candidates.Count(context)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Candidates: entries,
		Meta:       pagination.NewMeta(params.Page, params.Limit, total),
	}, nil
}
