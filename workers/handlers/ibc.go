package handlers

import (
	"net/http"

	"cw20ics20bridge/bridge"
	"cw20ics20bridge/store"
)

func (a *API) ChannelOpen(w http.ResponseWriter, r *http.Request) {
	var msg bridge.ChannelOpenMsg
	if !decodeBody(w, r, &msg) {
		return
	}
	a.execute(w, "channel_open", func(s store.KVStore, env bridge.Env) (*bridge.Response, error) {
		return a.Bridge.OpenChannel(s, msg)
	})
}

func (a *API) PacketAck(w http.ResponseWriter, r *http.Request) {
	var req PacketAckRequest
	if !decodeBody(w, r, &req) {
		return
	}
	a.execute(w, "packet_ack", func(s store.KVStore, env bridge.Env) (*bridge.Response, error) {
		return a.Bridge.OnPacketAck(s, env, req.Channel, req.Sequence, req.Packet, req.Ack)
	})
}

func (a *API) PacketTimeout(w http.ResponseWriter, r *http.Request) {
	var req PacketTimeoutRequest
	if !decodeBody(w, r, &req) {
		return
	}
	a.execute(w, "packet_timeout", func(s store.KVStore, env bridge.Env) (*bridge.Response, error) {
		return a.Bridge.OnPacketTimeout(s, env, req.Channel, req.Sequence, req.Packet)
	})
}

// DeliveryOutcome takes an already decoded outcome, for transports that do not
// forward the raw acknowledgement.
func (a *API) DeliveryOutcome(w http.ResponseWriter, r *http.Request) {
	var msg bridge.DeliveryOutcomeMsg
	if !decodeBody(w, r, &msg) {
		return
	}
	a.execute(w, "delivery_outcome", func(s store.KVStore, env bridge.Env) (*bridge.Response, error) {
		return a.Bridge.OnDeliveryOutcome(s, env, msg)
	})
}
