package types

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/holiman/uint256"
)

// Uint128 is an unsigned 128-bit quantity, encoded in JSON as a decimal string
// the same way ICS-20 packets carry amounts.
type Uint128 struct {
	v uint256.Int
}

func NewUint128(v uint64) Uint128 {
	var u Uint128
	u.v.SetUint64(v)
	return u
}

// ParseUint128 parses a base-10 string. Values above 2^128-1 are rejected with ErrOverflow.
func ParseUint128(s string) (Uint128, error) {
	var u Uint128
	if s == "" {
		return u, fmt.Errorf("empty amount")
	}
	if err := u.v.SetFromDecimal(s); err != nil {
		return u, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if u.v.BitLen() > 128 {
		return Uint128{}, fmt.Errorf("amount %s: %w", s, ErrOverflow)
	}
	return u, nil
}

func (u Uint128) IsZero() bool {
	return u.v.IsZero()
}

func (u Uint128) Cmp(o Uint128) int {
	return u.v.Cmp(&o.v)
}

// Add returns u+o, failing with ErrOverflow if the sum does not fit 128 bits.
func (u Uint128) Add(o Uint128) (Uint128, error) {
	var r Uint128
	r.v.Add(&u.v, &o.v)
	if r.v.BitLen() > 128 {
		return Uint128{}, fmt.Errorf("%s + %s: %w", u, o, ErrOverflow)
	}
	return r, nil
}

// Sub returns u-o, failing with ErrInsufficientFunds if o > u.
func (u Uint128) Sub(o Uint128) (Uint128, error) {
	if u.v.Lt(&o.v) {
		return Uint128{}, fmt.Errorf("%s - %s: %w", u, o, ErrInsufficientFunds)
	}
	var r Uint128
	r.v.Sub(&u.v, &o.v)
	return r, nil
}

// Uint64 converts to 64 bits, failing with ErrOverflow above 2^64-1.
func (u Uint128) Uint64() (uint64, error) {
	if !u.v.IsUint64() {
		return 0, fmt.Errorf("amount %s: %w", u, ErrOverflow)
	}
	return u.v.Uint64(), nil
}

func (u Uint128) String() string {
	return u.v.ToBig().String()
}

func (u Uint128) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

func (u *Uint128) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// tolerate bare numbers from clients that do not quote amounts
		n, perr := strconv.ParseUint(string(data), 10, 64)
		if perr != nil {
			return fmt.Errorf("amount must be a decimal string: %w", err)
		}
		*u = NewUint128(n)
		return nil
	}
	parsed, err := ParseUint128(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
