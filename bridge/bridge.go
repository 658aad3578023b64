// Package bridge is the accounting and protocol core of the cw20 ICS-20
// escrow bridge: the allow-list, the per-channel escrow ledger, transfer
// validation with packet construction, and reconciliation of delivery
// outcomes.
//
// Every entry point takes the state it works on as a store.KVStore and runs
// to completion without locking. Serialization and all-or-nothing commit
// are the host's job, see package host.
package bridge

import (
	"strconv"

	"go.uber.org/zap"

	"cw20ics20bridge/types"
)

const (
	ContractName    = "crates.io:cw20-ics20"
	ContractVersion = "0.13.4"
)

// Env is the execution environment of one invocation.
type Env struct {
	BlockTime types.Timestamp
}

// MessageInfo identifies the caller and any native funds sent along.
type MessageInfo struct {
	Sender string       `json:"sender"`
	Funds  []types.Coin `json:"funds,omitempty"`
}

// Response carries the outbound packets and the attributes describing what happened.
type Response struct {
	Messages   []types.SendPacketMsg `json:"messages,omitempty"`
	Attributes []types.Attribute     `json:"attributes"`
}

func NewResponse() *Response {
	return &Response{Attributes: make([]types.Attribute, 0)}
}

func (r *Response) AddAttribute(key, value string) *Response {
	r.Attributes = append(r.Attributes, types.Attribute{Key: key, Value: value})
	return r
}

func (r *Response) AddMessage(msg types.SendPacketMsg) *Response {
	r.Messages = append(r.Messages, msg)
	return r
}

// Attribute returns the first value recorded for key.
func (r *Response) Attribute(key string) (string, bool) {
	for _, a := range r.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Bridge holds the collaborators the core needs. It has no state of its own.
type Bridge struct {
	api AddressValidator
	gov Governance
	log *zap.Logger
}

type Option func(*Bridge)

func WithLogger(l *zap.Logger) Option {
	return func(b *Bridge) { b.log = l }
}

func New(api AddressValidator, gov Governance, opts ...Option) *Bridge {
	b := &Bridge{api: api, gov: gov, log: zap.L()}
	for _, o := range opts {
		o(b)
	}
	return b
}

func nonpayable(info MessageInfo) error {
	for _, c := range info.Funds {
		if !c.Amount.IsZero() {
			return types.ErrPaymentRejected
		}
	}
	return nil
}

func optUint(v *uint64) string {
	if v == nil {
		return "None"
	}
	return strconv.FormatUint(*v, 10)
}
