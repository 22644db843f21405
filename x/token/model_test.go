package token

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountValidate(t *testing.T) {
	owner := custodytest.NewCondition().Address()
	cases := map[string]struct {
		Account Account
		WantErr *errors.Error
	}{
		"token account":       {Account: Account{Owner: owner, Asset: "ETH", Amount: 5}},
		"data account":        {Account: Account{Owner: owner, Size: 100}},
		"missing owner":       {Account: Account{Asset: "ETH"}, WantErr: errors.ErrInput},
		"invalid asset":       {Account: Account{Owner: owner, Asset: "e"}, WantErr: errors.ErrCurrency},
		"data with a balance": {Account: Account{Owner: owner, Amount: 1}, WantErr: errors.ErrAmount},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.Account.Validate()
			if tc.WantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.WantErr.Is(err), "got %+v", err)
			}
		})
	}
}

func TestAssociatedAddress(t *testing.T) {
	owner := custodytest.NewCondition().Address()

	a, err := AssociatedAddress(owner, "ETH")
	require.NoError(t, err)
	again, err := AssociatedAddress(owner, "ETH")
	require.NoError(t, err)
	assert.Equal(t, a, again)
	assert.False(t, custody.IsSignable(a))

	other, err := AssociatedAddress(owner, "BTC")
	require.NoError(t, err)
	assert.NotEqual(t, a, other)
}

func TestAccountSerialization(t *testing.T) {
	acc := Account{Owner: custodytest.NewCondition().Address(), Asset: "ETH", Amount: 77, Size: 12}
	raw, err := custody.Marshal(&acc)
	require.NoError(t, err)
	var got Account
	require.NoError(t, custody.Unmarshal(raw, &got))
	assert.Equal(t, acc, got)
}
