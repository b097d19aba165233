// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mongodb

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// RetryBaseDelay controls the base duration for exponential backoff between
// ping attempts. Tests override this to avoid real sleeps.
var RetryBaseDelay = 1 * time.Second

const defaultMaxRetries = 5

// Pinger is satisfied by *mongo.Client.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// PingWithRetry pings the primary and retries on failure with exponential
// backoff. The delay starts at RetryBaseDelay (1 s) and doubles each attempt:
// 1 s, 2 s, 4 s, 8 s, 16 s. A freshly started database container usually
// refuses connections for a few seconds.
//
// When maxRetries is 0 the default (5) is used. Each attempt is bounded by
// attemptTimeout when it is positive. If ctx is cancelled during a backoff
// wait the function returns ctx.Err(). After exhausting retries the last ping
// error is returned.
func PingWithRetry(ctx context.Context, p Pinger, maxRetries int, attemptTimeout time.Duration, w io.Writer) error {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if w == nil {
		w = io.Discard
	}

	for attempt := 0; ; attempt++ {
		err := ping(ctx, p, attemptTimeout)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempt >= maxRetries {
			return err
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		fmt.Fprintf(w, "waiting for MongoDB, retrying in %v (attempt %d/%d): %v\n", backoff, attempt+1, maxRetries, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
}

func ping(ctx context.Context, p Pinger, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return p.Ping(ctx, readpref.Primary())
}
