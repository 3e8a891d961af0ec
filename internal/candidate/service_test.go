// Copyright (c) 2026 Votra. All rights reserved.
// Author: platform@votra.app

package candidate

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/votra-app/votra/internal/platform/apperr"
	"github.com/votra-app/votra/pkg/pagination"
)

type fakeRepo struct {
	entries []Candidate
	listErr error
}

func (repo *fakeRepo) List(_ context.Context, params pagination.Params) ([]Candidate, error) {
	if repo.listErr != nil {
		return nil, repo.listErr
	}
	end := params.Offset() + params.Limit
	if end > len(repo.entries) {
		end = len(repo.entries)
	}
	if params.Offset() >= len(repo.entries) {
		return []Candidate{}, nil
	}
	return repo.entries[params.Offset():end], nil
}

func (repo *fakeRepo) Count(_ context.Context) (int, error) {
	if repo.listErr != nil {
		return 0, repo.listErr
	}
	return len(repo.entries), nil
}

func TestService_List(t *testing.T) {
	t.Run("pages the ballot with metadata", func(t *testing.T) {
		repo := &fakeRepo{entries: []Candidate{
			{ID: "c1", Name: "Ada", Position: 1},
			{ID: "c2", Name: "Grace", Position: 2},
			{ID: "c3", Name: "Edsger", Position: 3},
		}}
		service := NewService(repo)

		result, err := service.List(context.Background(), pagination.Params{Page: 2, Limit: 2})
		require.NoError(t, err)

		require.Len(t, result.Candidates, 1)
		assert.Equal(t, "c3", result.Candidates[0].ID)
		assert.Equal(t, 3, result.Meta.Total)
		assert.Equal(t, 2, result.Meta.TotalPages)
	})

	t.Run("missing store maps to service unavailable", func(t *testing.T) {
		service := NewService(nil)

		_, err := service.List(context.Background(), pagination.Params{Page: 1, Limit: 10})
		require.Error(t, err)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPStatus)
	})

	t.Run("store faults propagate", func(t *testing.T) {
		service := NewService(&fakeRepo{listErr: errors.New("connection reset")})

		_, err := service.List(context.Background(), pagination.Params{Page: 1, Limit: 10})
		require.Error(t, err)
	})
}
