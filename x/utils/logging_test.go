package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := custody.WithLogger(context.Background(), log.NewTMLogger(&buf))
	tx := &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "escrow/make"}}

	ok := custodytest.Decorate(&custodytest.Handler{
		DeliverResult: custody.DeliverResult{Log: "made"},
	}, NewLogging())
	_, err := ok.Deliver(ctx, store.MemStore(), tx)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "made")
	assert.Contains(t, buf.String(), "escrow/make")

	buf.Reset()
	failing := custodytest.Decorate(&custodytest.Handler{
		CheckErr: errors.ErrExpired,
	}, NewLogging())
	_, err = failing.Check(ctx, store.MemStore(), tx)
	assert.True(t, errors.ErrExpired.Is(err))
	assert.Contains(t, buf.String(), "expired")
}
