package handlers

import (
	"cw20ics20bridge/bridge"
	"cw20ics20bridge/types"
)

type APIResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type APIStateResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ExecuteRequest is the envelope of every state-changing call: who calls,
// what native funds come along, and the entry point's own message.
type ExecuteRequest[T any] struct {
	Sender string       `json:"sender"`
	Funds  []types.Coin `json:"funds,omitempty"`
	Msg    T            `json:"msg"`
}

func (r ExecuteRequest[T]) info() bridge.MessageInfo {
	return bridge.MessageInfo{Sender: r.Sender, Funds: r.Funds}
}

type UpdateAdminMsg struct {
	Admin string `json:"admin"`
}

// PacketAckRequest carries the original packet data with the counterparty's acknowledgement.
type PacketAckRequest struct {
	Channel  string `json:"channel"`
	Sequence uint64 `json:"sequence"`
	Packet   []byte `json:"packet"`
	Ack      []byte `json:"ack"`
}

type PacketTimeoutRequest struct {
	Channel  string `json:"channel"`
	Sequence uint64 `json:"sequence"`
	Packet   []byte `json:"packet"`
}

type APIExecuteResponse struct {
	Status     string                `json:"status"`
	Attributes []types.Attribute     `json:"attributes"`
	Messages   []types.SendPacketMsg `json:"messages,omitempty"`
}
