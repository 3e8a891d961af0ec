// Copyright (c) 2026 Votra. All rights reserved.
// Author: platform@votra.app

package login

import "context"

// # Attempt Tracking

/*
AttemptLimiter throttles repeated OTP verification attempts per voter.

Implementations are advisory: a limiter failure must never block a login,
only stop counting. The service treats limiter errors as "allowed" so a
degraded cache does not take authentication down with it.
*/
type AttemptLimiter interface {

	/*
		Allow records one verification attempt for the voter and reports
		whether the voter is still inside the attempt budget.

		Parameters:
		  - context: context.Context
		  - voterID: string

		Returns:
		  - bool: false once the budget for the current window is spent
		  - error: Backing store failures (callers fail open)
	*/
	Allow(context context.Context, voterID string) (bool, error)

	/*
		Reset clears the voter's attempt counter after a successful
		verification so a later legitimate login starts fresh.

		Parameters:
		  - context: context.Context
		  - voterID: string

		Returns:
		  - error: Backing store failures (best effort)
	*/
	Reset(context context.Context, voterID string) error
}
