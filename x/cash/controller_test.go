package cash

import (
	"testing"

	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveCoins(t *testing.T) {
	alice := custodytest.NewCondition().Address()
	bob := custodytest.NewCondition().Address()

	cases := map[string]struct {
		Issue     []coin.Coin
		Move      coin.Coin
		WantErr   *errors.Error
		WantAlice coin.Coins
		WantBob   coin.Coins
	}{
		"partial move": {
			Issue:     []coin.Coin{coin.NewCoin(10, "IOV")},
			Move:      coin.NewCoin(4, "IOV"),
			WantAlice: coin.Coins{coin.NewCoinp(6, "IOV")},
			WantBob:   coin.Coins{coin.NewCoinp(4, "IOV")},
		},
		"everything moved removes the wallet": {
			Issue:   []coin.Coin{coin.NewCoin(10, "IOV")},
			Move:    coin.NewCoin(10, "IOV"),
			WantBob: coin.Coins{coin.NewCoinp(10, "IOV")},
		},
		"insufficient funds": {
			Issue:   []coin.Coin{coin.NewCoin(3, "IOV")},
			Move:    coin.NewCoin(4, "IOV"),
			WantErr: errors.ErrAmount,
		},
		"other currency": {
			Issue:   []coin.Coin{coin.NewCoin(3, "IOV")},
			Move:    coin.NewCoin(1, "ETH"),
			WantErr: errors.ErrAmount,
		},
		"no wallet": {
			Move:    coin.NewCoin(1, "IOV"),
			WantErr: errors.ErrNotFound,
		},
		"zero amount": {
			Issue:   []coin.Coin{coin.NewCoin(3, "IOV")},
			Move:    coin.NewCoin(0, "IOV"),
			WantErr: errors.ErrAmount,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController(NewBucket())
			for _, c := range tc.Issue {
				require.NoError(t, ctrl.IssueCoins(db, alice, c))
			}

			err := ctrl.MoveCoins(db, alice, bob, tc.Move)
			if tc.WantErr != nil {
				assert.True(t, tc.WantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assertBalance(t, ctrl, db, alice, tc.WantAlice)
			assertBalance(t, ctrl, db, bob, tc.WantBob)
		})
	}
}

func assertBalance(t testing.TB, ctrl Controller, db store.ReadOnlyKVStore, addr []byte, want coin.Coins) {
	t.Helper()
	got, err := ctrl.Balance(db, addr)
	if want == nil {
		assert.True(t, errors.ErrNotFound.Is(err), "want no wallet, got %v", got)
		return
	}
	require.NoError(t, err)
	assert.True(t, want.Equals(got), "want %v, got %v", want, got)
}
