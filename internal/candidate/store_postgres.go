// Copyright (c) 2026 Votra. All rights reserved.
// Author: platform@votra.app

// PostgreSQL implementation of the candidate repository.
package candidate

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/votra-app/votra/internal/platform/dberr"
	"github.com/votra-app/votra/pkg/pagination"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// List returns one page of candidates ordered by ballot position.
func (repository *PostgresRepository) List(context context.Context, params pagination.Params) ([]Candidate, error) {
	const query = `
		SELECT id, name, party, position, createdat
		FROM candidates
		ORDER BY position ASC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, dberr.Wrap(err)
	}
	defer rows.Close()

	candidates := make([]Candidate, 0, params.Limit)
	for rows.Next() {
		var entry Candidate
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Party, &entry.Position, &entry.CreatedAt); err != nil {
			return nil, dberr.Wrap(err)
		}
		candidates = append(candidates, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err)
	}

	return candidates, nil
}

// Count returns the total number of candidates on the ballot.
func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM candidates`

	var total int
	if err := repository.pool.QueryRow(context, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err)
	}

	return total, nil
}
