package custodytest

import (
	"context"
	"time"

	"github.com/iov-one/custody"
)

// Context returns a context with a chain id and block information set, as
// the application sets them before handling a transaction.
func Context(now time.Time) custody.Context {
	ctx := context.Background()
	ctx = custody.WithChainID(ctx, "test-chain")
	ctx = custody.WithHeight(ctx, 100)
	return custody.WithBlockTime(ctx, now)
}
