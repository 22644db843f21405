package app

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterDispatch(t *testing.T) {
	var (
		makeH = &custodytest.Handler{DeliverResult: custody.DeliverResult{Data: []byte("made")}}
		takeH = &custodytest.Handler{CheckErr: errors.ErrExpired}
	)

	r := NewRouter()
	r.Handle(&custodytest.Msg{RoutePath: "escrow/make"}, makeH)
	r.Handle(&custodytest.Msg{RoutePath: "escrow/take"}, takeH)

	ctx := context.Background()
	db := store.MemStore()

	res, err := r.Deliver(ctx, db, &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "escrow/make"}})
	require.NoError(t, err)
	assert.Equal(t, []byte("made"), res.Data)
	assert.Equal(t, 1, makeH.DeliverCallCount())

	_, err = r.Check(ctx, db, &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "escrow/take"}})
	assert.True(t, errors.ErrExpired.Is(err))
	assert.Equal(t, 1, takeH.CheckCallCount())
	assert.Equal(t, 0, makeH.CheckCallCount())
}

func TestRouterErrors(t *testing.T) {
	r := NewRouter()
	r.Handle(&custodytest.Msg{RoutePath: "escrow/make"}, &custodytest.Handler{})

	cases := map[string]struct {
		tx      custody.Tx
		wantErr *errors.Error
	}{
		"unknown path": {
			tx:      &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "escrow/refund"}},
			wantErr: errors.ErrNotFound,
		},
		"missing message": {
			tx:      &custodytest.Tx{},
			wantErr: errors.ErrEmpty,
		},
		"broken transaction": {
			tx:      &custodytest.Tx{Err: errors.ErrInput},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := r.Deliver(context.Background(), store.MemStore(), tc.tx)
			assert.True(t, tc.wantErr.Is(err), "got %+v", err)
			_, err = r.Check(context.Background(), store.MemStore(), tc.tx)
			assert.True(t, tc.wantErr.Is(err), "got %+v", err)
		})
	}
}

func TestRouterRegistration(t *testing.T) {
	r := NewRouter()
	r.Handle(&custodytest.Msg{RoutePath: "escrow/make"}, &custodytest.Handler{})

	assert.Panics(t, func() {
		r.Handle(&custodytest.Msg{RoutePath: "escrow/make"}, &custodytest.Handler{})
	})
	assert.Panics(t, func() {
		r.Handle(&custodytest.Msg{RoutePath: "escrow make"}, &custodytest.Handler{})
	})
}
