package coin

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinArithmetic(t *testing.T) {
	a := NewCoin(10, "IOV")
	b := NewCoin(4, "IOV")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, NewCoin(14, "IOV"), sum)

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, NewCoin(6, "IOV"), diff)

	_, err = b.Subtract(a)
	assert.True(t, errors.ErrAmount.Is(err))

	_, err = a.Add(NewCoin(1, "ETH"))
	assert.True(t, errors.ErrCurrency.Is(err))

	_, err = NewCoin(math.MaxUint64, "IOV").Add(NewCoin(1, "IOV"))
	assert.True(t, errors.ErrOverflow.Is(err))

	prod, err := a.Multiply(3)
	require.NoError(t, err)
	assert.Equal(t, NewCoin(30, "IOV"), prod)

	_, err = NewCoin(math.MaxUint64/2+1, "IOV").Multiply(2)
	assert.True(t, errors.ErrOverflow.Is(err))
}

func TestParseHumanFormat(t *testing.T) {
	cases := map[string]struct {
		Raw     string
		Want    Coin
		WantErr *errors.Error
	}{
		"with space":     {Raw: "12 IOV", Want: NewCoin(12, "IOV")},
		"without space":  {Raw: "7USDC", Want: NewCoin(7, "USDC")},
		"surrounded":     {Raw: "  3 BTC ", Want: NewCoin(3, "BTC")},
		"no amount":      {Raw: "IOV", WantErr: errors.ErrInput},
		"bad ticker":     {Raw: "3 iov", WantErr: errors.ErrCurrency},
		"negative":       {Raw: "-3 IOV", WantErr: errors.ErrInput},
		"amount too big": {Raw: "99999999999999999999 IOV", WantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseHumanFormat(tc.Raw)
			if tc.WantErr != nil {
				assert.True(t, tc.WantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.Want, got)
		})
	}
}

func TestCoinJSON(t *testing.T) {
	var c Coin
	require.NoError(t, json.Unmarshal([]byte(`"5 IOV"`), &c))
	assert.Equal(t, NewCoin(5, "IOV"), c)

	require.NoError(t, json.Unmarshal([]byte(`{"ticker": "ETH", "amount": 9}`), &c))
	assert.Equal(t, NewCoin(9, "ETH"), c)

	assert.Error(t, json.Unmarshal([]byte(`"five"`), &c))
}

func TestCoinSerialization(t *testing.T) {
	c := NewCoinp(123456789, "ABC")
	raw, err := custody.Marshal(c)
	require.NoError(t, err)
	var got Coin
	require.NoError(t, custody.Unmarshal(raw, &got))
	assert.Equal(t, *c, got)
}
