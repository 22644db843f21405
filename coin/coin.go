package coin

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"regexp"
	"strconv"
	"strings"

	"github.com/iov-one/custody/errors"
)

// IsCC is the RegExp to ensure valid currency codes
var IsCC = regexp.MustCompile(`^[A-Z][A-Z0-9]{2,8}$`).MatchString

// Coin is an amount of a single asset, expressed in the smallest indivisible
// unit of that asset.
type Coin struct {
	Ticker string `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker"`
	Amount uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
}

func (c *Coin) Reset()      { *c = Coin{} }
func (*Coin) ProtoMessage() {}

// NewCoin creates a new coin object
func NewCoin(amount uint64, ticker string) Coin {
	return Coin{Ticker: ticker, Amount: amount}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(amount uint64, ticker string) *Coin {
	c := NewCoin(amount, ticker)
	return &c
}

// Add combines two coins. Only coins of the same currency can be added.
func (c Coin) Add(o Coin) (Coin, error) {
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "adding %s to %s", o.Ticker, c.Ticker)
	}
	sum, carry := bits.Add64(c.Amount, o.Amount, 0)
	if carry != 0 {
		return Coin{}, errors.Wrap(errors.ErrOverflow, "coin amount")
	}
	return Coin{Ticker: c.Ticker, Amount: sum}, nil
}

// Subtract returns the coin value reduced by given amount. It fails if the
// amount is bigger than the value held.
func (c Coin) Subtract(o Coin) (Coin, error) {
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "subtracting %s from %s", o.Ticker, c.Ticker)
	}
	if o.Amount > c.Amount {
		return Coin{}, errors.Wrapf(errors.ErrAmount, "insufficient funds: %s < %s", c, o)
	}
	return Coin{Ticker: c.Ticker, Amount: c.Amount - o.Amount}, nil
}

// Multiply returns the coin value multiplied by given factor.
func (c Coin) Multiply(times uint64) (Coin, error) {
	hi, lo := bits.Mul64(c.Amount, times)
	if hi != 0 {
		return Coin{}, errors.Wrap(errors.ErrOverflow, "coin amount")
	}
	return Coin{Ticker: c.Ticker, Amount: lo}, nil
}

// Compare returns -1 if c is less than o, 0 if equal and 1 if greater.
// Coins of different currencies cannot be compared.
func (c Coin) Compare(o Coin) int {
	switch {
	case c.Amount < o.Amount:
		return -1
	case c.Amount > o.Amount:
		return 1
	default:
		return 0
	}
}

// Equals returns true if both coins are of the same currency and value.
func (c Coin) Equals(o Coin) bool {
	return c.SameType(o) && c.Amount == o.Amount
}

// IsEmpty returns true on nil or zero value coins.
func IsEmpty(c *Coin) bool {
	return c == nil || c.IsZero()
}

// IsZero returns true if the amount is 0.
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// IsPositive returns true if the amount is greater than 0.
func (c Coin) IsPositive() bool {
	return c.Amount > 0
}

// IsGTE returns true if c is the same currency as o and at least as big.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameType(o) && c.Amount >= o.Amount
}

// SameType returns true if they have the same currency
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Clone returns a copy of the coin. Nil is cloned to nil.
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// Validate ensures that the ticker is valid.
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", c.Ticker)
	}
	return nil
}

// String returns a human readable representation, for example "12 IOV".
func (c Coin) String() string {
	if c.Ticker == "" {
		return strconv.FormatUint(c.Amount, 10)
	}
	return fmt.Sprintf("%d %s", c.Amount, c.Ticker)
}

// ParseHumanFormat parses a coin written as "<amount> <ticker>". The space
// may be omitted, "12IOV" is accepted as well.
func ParseHumanFormat(h string) (Coin, error) {
	h = strings.TrimSpace(h)
	i := strings.IndexFunc(h, func(r rune) bool { return r < '0' || r > '9' })
	if i <= 0 {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin %q", h)
	}
	amount, err := strconv.ParseUint(h[:i], 10, 64)
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid amount %q", h[:i])
	}
	c := Coin{Amount: amount, Ticker: strings.TrimSpace(h[i:])}
	if err := c.Validate(); err != nil {
		return Coin{}, err
	}
	return c, nil
}

// Set implements flag.Value so coins can be passed as command line
// arguments.
func (c *Coin) Set(raw string) error {
	parsed, err := ParseHumanFormat(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// UnmarshalJSON accepts both the human format ("12 IOV") and an object.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	type coin Coin
	var obj coin
	if err := json.Unmarshal(raw, &obj); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	*c = Coin(obj)
	return nil
}
