package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Ics20Packet is the fungible token transfer payload sent over a channel.
type Ics20Packet struct {
	Amount   Uint128 `json:"amount"`
	Denom    string  `json:"denom"`
	Receiver string  `json:"receiver"`
	Sender   string  `json:"sender"`
}

func NewIcs20Packet(amount Uint128, denom, sender, receiver string) Ics20Packet {
	return Ics20Packet{
		Amount:   amount,
		Denom:    denom,
		Sender:   sender,
		Receiver: receiver,
	}
}

// Validate checks the packet can be represented on the counterparty:
// the amount must fit 64 bits, the largest value safe to send over ics20.
func (p Ics20Packet) Validate() error {
	if strings.TrimSpace(p.Sender) == "" {
		return fmt.Errorf("%w: empty sender", ErrPacketValidation)
	}
	if strings.TrimSpace(p.Receiver) == "" {
		return fmt.Errorf("%w: empty receiver", ErrPacketValidation)
	}
	if p.Denom == "" {
		return fmt.Errorf("%w: empty denom", ErrPacketValidation)
	}
	if p.Amount.IsZero() {
		return fmt.Errorf("%w: zero amount", ErrPacketValidation)
	}
	if _, err := p.Amount.Uint64(); err != nil {
		return fmt.Errorf("%w: %w", ErrPacketValidation, err)
	}
	return nil
}

// Ics20Ack is the acknowledgement written by the counterparty, exactly one field is set.
type Ics20Ack struct {
	Result []byte `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// AckSuccess is the canonical success payload, a single 0x01 byte.
func AckSuccess() Ics20Ack {
	return Ics20Ack{Result: []byte{1}}
}

func AckFail(err string) Ics20Ack {
	return Ics20Ack{Error: err}
}

func (a Ics20Ack) Success() bool {
	return a.Error == "" && len(a.Result) > 0
}

// ParseAck decodes an acknowledgement and maps it to a delivery outcome.
func ParseAck(data []byte) (Ics20Ack, Outcome, error) {
	var ack Ics20Ack
	if err := json.Unmarshal(data, &ack); err != nil {
		return ack, "", fmt.Errorf("%w: cannot decode acknowledgement: %w", ErrInvalidRequest, err)
	}
	if ack.Error != "" {
		return ack, OutcomeError, nil
	}
	if len(ack.Result) == 0 {
		return ack, "", errors.New("acknowledgement has neither result nor error")
	}
	return ack, OutcomeSuccess, nil
}

// SendPacketMsg is handed to the dispatch channel once the transfer is committed.
type SendPacketMsg struct {
	ID        string    `json:"id"`
	ChannelID string    `json:"channel_id"`
	Sequence  uint64    `json:"sequence"`
	Data      []byte    `json:"data"`
	Timeout   Timestamp `json:"timeout"`
}

// Attribute is a key/value pair describing what an entry point did.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
