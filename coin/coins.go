package coin

import (
	"sort"

	"github.com/iov-one/custody/errors"
)

// Coins is a set of coins, at most one per currency, sorted by ticker.
// Zero value coins are never part of a normalized set.
type Coins []*Coin

// CombineCoins creates a normalized set from the given coins.
func CombineCoins(cs ...Coin) (Coins, error) {
	var res Coins
	for _, c := range cs {
		var err error
		if res, err = res.Add(c); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Clone returns a deep copy.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return res
}

// Add returns a new set with given coin added. The original set is not
// modified.
func (cs Coins) Add(c Coin) (Coins, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	res := cs.Clone()
	if c.IsZero() {
		return res, nil
	}
	if have, i := res.findCoin(c.Ticker); have != nil {
		sum, err := have.Add(c)
		if err != nil {
			return nil, err
		}
		res[i] = &sum
		return res, nil
	}
	res = append(res, c.Clone())
	sort.Slice(res, func(i, j int) bool { return res[i].Ticker < res[j].Ticker })
	return res, nil
}

// Subtract returns a new set with given coin removed. ErrAmount is returned
// if the set does not hold enough.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs.Clone(), nil
	}
	have, i := cs.findCoin(c.Ticker)
	if have == nil {
		return nil, errors.Wrapf(errors.ErrAmount, "no %s held", c.Ticker)
	}
	left, err := have.Subtract(c)
	if err != nil {
		return nil, err
	}
	res := cs.Clone()
	if left.IsZero() {
		return append(res[:i], res[i+1:]...), nil
	}
	res[i] = &left
	return res, nil
}

// Contains returns true if the set holds at least given coin.
func (cs Coins) Contains(c Coin) bool {
	have, _ := cs.findCoin(c.Ticker)
	if have == nil {
		return c.IsZero()
	}
	return have.IsGTE(c)
}

// Balance returns the amount of given currency held.
func (cs Coins) Balance(ticker string) Coin {
	if have, _ := cs.findCoin(ticker); have != nil {
		return *have
	}
	return Coin{Ticker: ticker}
}

func (cs Coins) findCoin(ticker string) (*Coin, int) {
	for i, c := range cs {
		if c.Ticker == ticker {
			return c, i
		}
	}
	return nil, -1
}

// IsEmpty returns true if there is no coin in the set.
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// Equals returns true if both sets hold the same coins.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Validate requires the set to be normalized: valid tickers, sorted, unique
// and positive.
func (cs Coins) Validate() error {
	for i, c := range cs {
		if c == nil {
			return errors.Wrap(errors.ErrEmpty, "nil coin")
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if !c.IsPositive() {
			return errors.Wrapf(errors.ErrAmount, "zero %s held", c.Ticker)
		}
		if i > 0 && cs[i-1].Ticker >= c.Ticker {
			return errors.Wrap(errors.ErrCurrency, "coins not sorted or duplicated")
		}
	}
	return nil
}
