package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/tally/internal/tenant/store"
	"github.com/cenkalti/backoff/v5"
)

// maxTxAttempts bounds retries of a transaction that lost a lock race.
const maxTxAttempts = 5

// retryConflicts reruns fn while it fails with store.ErrConflict. Any other
// error stops the loop and is returned as is.
func retryConflicts(ctx context.Context, fn func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 20 * time.Millisecond
	b.MaxInterval = 500 * time.Millisecond

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := fn()
		if err == nil || errors.Is(err, store.ErrConflict) {
			return struct{}{}, err
		}
		return struct{}{}, backoff.Permanent(err)
	}, backoff.WithBackOff(b), backoff.WithMaxTries(maxTxAttempts))
	return err
}
