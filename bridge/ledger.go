package bridge

import (
	"fmt"

	"cw20ics20bridge/store"
	"cw20ics20bridge/types"
)

// IncreaseChannelBalance records amount of denom as escrowed on channel.
func IncreaseChannelBalance(s store.KVStore, channel, denom string, amount types.Uint128) error {
	st, _, err := loadChannelState(s, channel, denom)
	if err != nil {
		return err
	}
	if st.Outstanding, err = st.Outstanding.Add(amount); err != nil {
		return err
	}
	if st.TotalSent, err = st.TotalSent.Add(amount); err != nil {
		return err
	}
	return store.SetJSON(s, channelStateKey(channel, denom), st)
}

// ReduceChannelBalance releases amount of denom from channel. It fails with
// types.ErrInsufficientFunds rather than going below zero.
func ReduceChannelBalance(s store.KVStore, channel, denom string, amount types.Uint128) error {
	st, found, err := loadChannelState(s, channel, denom)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no balance for %s on %s: %w", denom, channel, types.ErrInsufficientFunds)
	}
	if st.Outstanding, err = st.Outstanding.Sub(amount); err != nil {
		return err
	}
	return store.SetJSON(s, channelStateKey(channel, denom), st)
}

// ChannelBalance returns the outstanding escrow for (channel, denom), zero if none.
func ChannelBalance(s store.KVStore, channel, denom string) (types.Uint128, error) {
	st, _, err := loadChannelState(s, channel, denom)
	return st.Outstanding, err
}

// DenomBalance is one ledger row of a channel.
type DenomBalance struct {
	Denom       string        `json:"denom"`
	Outstanding types.Uint128 `json:"outstanding"`
	TotalSent   types.Uint128 `json:"total_sent"`
}

func channelBalances(s store.KVStore, channel string) ([]DenomBalance, error) {
	prefix := channelStatePrefix(channel)
	keys, err := s.Keys(prefix)
	if err != nil {
		return nil, err
	}
	rows := make([]DenomBalance, 0, len(keys))
	for _, k := range keys {
		var st types.ChannelState
		if _, err := store.GetJSON(s, k, &st); err != nil {
			return nil, err
		}
		rows = append(rows, DenomBalance{
			Denom:       k[len(prefix):],
			Outstanding: st.Outstanding,
			TotalSent:   st.TotalSent,
		})
	}
	return rows, nil
}
