package utils

import (
	"context"
	"testing"

	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
)

func TestRecovery(t *testing.T) {
	handler := &custodytest.Handler{Panic: "vault exploded"}
	h := custodytest.Decorate(handler, NewRecovery())
	ctx := context.Background()
	db := store.MemStore()
	tx := &custodytest.Tx{}

	_, err := h.Check(ctx, db, tx)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, err.Error(), "vault exploded")

	_, err = h.Deliver(ctx, db, tx)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Equal(t, 2, handler.CallCount())
}

func TestRecoveryPassesErrors(t *testing.T) {
	handler := &custodytest.Handler{DeliverErr: errors.ErrNotFound}
	h := custodytest.Decorate(handler, NewRecovery())
	_, err := h.Deliver(context.Background(), store.MemStore(), &custodytest.Tx{})
	assert.True(t, errors.ErrNotFound.Is(err))
}
