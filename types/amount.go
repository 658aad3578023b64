package types

import (
	"fmt"
	"strings"
)

// Cw20DenomPrefix is the scheme prefix of denominations issued by cw20 contracts.
const Cw20DenomPrefix = "cw20:"

// Amount is a quantity of one asset. The set of implementations is closed:
// Cw20Coin is the only variant today, native or bridged assets would be added
// as new types implementing the unexported marker.
type Amount interface {
	Denom() string
	Address() string
	Amount() Uint128
	IsEmpty() bool
	U64Amount() (uint64, error)

	isAmount()
}

// Cw20Coin is an amount of a cw20 token identified by its contract address.
type Cw20Coin struct {
	Contract string  `json:"address"`
	Quantity Uint128 `json:"amount"`
}

func NewCw20(quantity Uint128, address string) Cw20Coin {
	return Cw20Coin{Contract: address, Quantity: quantity}
}

// AmountFromParts rebuilds an Amount from a packet's denom and quantity.
// Denoms without the cw20 prefix, or with nothing after it, are rejected.
func AmountFromParts(denom string, quantity Uint128) (Amount, error) {
	address, ok := strings.CutPrefix(denom, Cw20DenomPrefix)
	if !ok || address == "" {
		return nil, fmt.Errorf("%q: %w", denom, ErrInvalidDenom)
	}
	return NewCw20(quantity, address), nil
}

func (c Cw20Coin) Denom() string {
	return Cw20DenomPrefix + c.Contract
}

func (c Cw20Coin) Address() string {
	return c.Contract
}

func (c Cw20Coin) Amount() Uint128 {
	return c.Quantity
}

func (c Cw20Coin) IsEmpty() bool {
	return c.Quantity.IsZero()
}

func (c Cw20Coin) U64Amount() (uint64, error) {
	return c.Quantity.Uint64()
}

func (Cw20Coin) isAmount() {}
