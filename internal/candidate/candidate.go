// Copyright (c) 2026 Votra. All rights reserved.
// Author: platform@votra.app

/*
Package candidate serves the read-only listing of ballot candidates.

The listing sits outside the authentication core: it has no write path and no
business rules beyond pagination. It exists so voting clients can render a
ballot without a second backend.
*/
package candidate

import "time"

// Candidate is a single ballot entry.
type Candidate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Party     string    `json:"party"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}
