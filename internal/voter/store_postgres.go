// Copyright (c) 2026 Votra. All rights reserved.
// Author: platform@votra.app

// PostgreSQL implementation of the voter repository.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
package voter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/votra-app/votra/internal/platform/apperr"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
FindByID retrieves a voter record by its unique identifier.

Description: Primary key resolution for the credential check. voter_id is
the primary key, so at most one row can match and lookups stay
deterministic by construction.

Parameters:
  - context: context.Context
  - voterID: string

Returns:
  - *Voter: Hydrated electorate entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, voterID string) (*Voter, error) {
	const query = `
		SELECT voterid, passwordhash, role, isverified, COALESCE(externalsubjectid, ''), createdat, updatedat
		FROM voters
		WHERE voterid = $1`

	record := &Voter{}
	err := repository.pool.QueryRow(context, query, voterID).Scan(
		&record.VoterID,
		&record.PasswordHash,
		&record.Role,
		&record.IsVerified,
		&record.ExternalSubjectID,
		&record.CreatedAt,
		&record.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Voter")
		}
		return nil, fmt.Errorf("postgres_voter_repo_find_by_id_failed: %w", err)
	}

	return record, nil
}

/*
Exists reports whether the given voter id is registered.

Description: Existence probe for the bearer-check gate; deliberately avoids
hydrating the full record on the hot path.

Parameters:
  - context: context.Context
  - voterID: string

Returns:
  - bool: Whether the id is known
  - error: Database errors
*/
func (repository *PostgresRepository) Exists(context context.Context, voterID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM voters WHERE voterid = $1)`

	var known bool
	if err := repository.pool.QueryRow(context, query, voterID).Scan(&known); err != nil {
		return false, fmt.Errorf("postgres_voter_repo_exists_failed: %w", err)
	}

	return known, nil
}

/*
MarkVerified flips the voter's verification flag and records the external
subject identifier.

Description: Idempotent row-level UPDATE. Concurrent verifications for the
same voter resolve last-write-wins, which is acceptable for a boolean flag
plus a stable subject id.

Parameters:
  - context: context.Context
  - voterID: string
  - externalSubjectID: string

Returns:
  - error: Database errors
*/
func (repository *PostgresRepository) MarkVerified(context context.Context, voterID, externalSubjectID string) error {
	const query = `
		UPDATE voters
		SET isverified = TRUE, externalsubjectid = $2, updatedat = $3
		WHERE voterid = $1`

	_, err := repository.pool.Exec(context, query, voterID, externalSubjectID, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_voter_repo_mark_verified_failed: %w", err)
	}

	return nil
}
