package db

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/northlight-bi/northlight/internal/shared"
)

// Runner bounds every read query with a timeout and retries transient store
// failures exactly once. NotFound and empty results are not failures and are
// never retried.
type Runner struct {
	Timeout time.Duration
}

// Do executes fn under the configured timeout, mapping store-level errors to
// shared.ErrStoreUnavailable so a broken connection surfaces as a distinct
// failure state instead of crashing the aggregation pipeline.
func (r Runner) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	run := func() error {
		runCtx := ctx
		if r.Timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(ctx, r.Timeout)
			defer cancel()
		}
		return fn(runCtx)
	}

	err := run()
	if err != nil && Transient(err) {
		err = run()
	}
	if err == nil || errors.Is(err, pgx.ErrNoRows) || errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
}

// Transient reports whether the error is worth a single retry.
func Transient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if pgconn.SafeToRetry(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
