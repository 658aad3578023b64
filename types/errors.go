package types

import (
	"errors"
	"fmt"
)

var (
	ErrNoFunds           = errors.New("no funds sent")
	ErrNotOnAllowList    = errors.New("only allowed cw20 contracts may be sent")
	ErrOverflow          = errors.New("amount overflow")
	ErrPacketValidation  = errors.New("invalid ics20 packet")
	ErrPaymentRejected   = errors.New("this message does not accept funds")
	ErrInsufficientFunds = errors.New("insufficient funds to redeem voucher on channel")
	ErrInvalidDenom      = errors.New("invalid cw20 denom")
	ErrInvalidAddress    = errors.New("invalid address")
	ErrUnauthorized      = errors.New("caller is not admin")
	ErrNotFound          = errors.New("not found")
	ErrInvalidChannel    = errors.New("invalid channel")
	ErrInvalidRequest    = errors.New("invalid request")
)

// NoSuchChannelError is returned when a transfer names a channel that was never opened.
type NoSuchChannelError struct {
	ID string
}

func (e *NoSuchChannelError) Error() string {
	return fmt.Sprintf("channel doesn't exist: %s", e.ID)
}

// LedgerUnderflowError means a reconciliation tried to release more than the channel
// ever escrowed for the denom. It is an invariant violation, not a user error.
type LedgerUnderflowError struct {
	Channel     string
	Denom       string
	Outstanding Uint128
	Requested   Uint128
}

func (e *LedgerUnderflowError) Error() string {
	return fmt.Sprintf("ledger underflow on %s/%s: outstanding %s, requested %s",
		e.Channel, e.Denom, e.Outstanding, e.Requested)
}

func (e *LedgerUnderflowError) Unwrap() error {
	return ErrInsufficientFunds
}
