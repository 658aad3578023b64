package bridge

import (
	"fmt"

	"cw20ics20bridge/store"
	"cw20ics20bridge/types"
)

type ChannelOrder string

const (
	OrderUnordered ChannelOrder = "ORDER_UNORDERED"
	OrderOrdered   ChannelOrder = "ORDER_ORDERED"
)

// ChannelOpenMsg is delivered by the host when the channel handshake completes.
type ChannelOpenMsg struct {
	ChannelID            string            `json:"channel_id"`
	CounterpartyEndpoint types.IbcEndpoint `json:"counterparty_endpoint"`
	ConnectionID         string            `json:"connection_id"`
	Order                ChannelOrder      `json:"order"`
	Version              string            `json:"version"`
	CounterpartyVersion  string            `json:"counterparty_version,omitempty"`
}

func (m ChannelOpenMsg) validate() error {
	if err := validChannelID(m.ChannelID); err != nil {
		return err
	}
	if m.Order != OrderUnordered {
		return fmt.Errorf("%w: only unordered channels are supported", types.ErrInvalidChannel)
	}
	if m.Version != types.Ics20Version {
		return fmt.Errorf("%w: only supports channel with ibc version %s, got %s", types.ErrInvalidChannel, types.Ics20Version, m.Version)
	}
	if m.CounterpartyVersion != "" && m.CounterpartyVersion != types.Ics20Version {
		return fmt.Errorf("%w: only supports counterparty with ibc version %s, got %s", types.ErrInvalidChannel, types.Ics20Version, m.CounterpartyVersion)
	}
	if m.ConnectionID == "" {
		return fmt.Errorf("%w: missing connection id", types.ErrInvalidChannel)
	}
	return nil
}

// OpenChannel registers a channel so transfers may use it. Reopening an
// existing id is rejected: ChannelInfo is immutable once written.
func (b *Bridge) OpenChannel(s store.KVStore, msg ChannelOpenMsg) (*Response, error) {
	if err := msg.validate(); err != nil {
		return nil, err
	}
	exists, err := hasChannel(s, msg.ChannelID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: channel %s already registered", types.ErrInvalidChannel, msg.ChannelID)
	}
	info := types.ChannelInfo{
		ID:                   msg.ChannelID,
		CounterpartyEndpoint: msg.CounterpartyEndpoint,
		ConnectionID:         msg.ConnectionID,
	}
	if err := store.SetJSON(s, channelInfoKey(info.ID), info); err != nil {
		return nil, err
	}
	return NewResponse().
		AddAttribute("action", "channel_connect").
		AddAttribute("channel_id", info.ID).
		AddAttribute("connection_id", info.ConnectionID), nil
}
