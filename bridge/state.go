package bridge

import (
	"fmt"
	"strings"

	"cw20ics20bridge/store"
	"cw20ics20bridge/types"
)

const (
	keyContractInfo   = "contract_info"
	keyConfig         = "ics20_config"
	keyAdmin          = "admin"
	prefixAllowList   = "allow_list:"
	prefixChannelInfo = "channel_info:"
	prefixChannel     = "channel_state:"
	prefixNextSeq     = "next_sequence_send:"
	prefixTransfer    = "transfer:"
	// PrefixOutbox holds committed packets waiting for dispatch.
	PrefixOutbox = "outbox:"
)

func allowKey(contract string) string {
	return prefixAllowList + contract
}

func channelInfoKey(id string) string {
	return prefixChannelInfo + id
}

func channelStatePrefix(channel string) string {
	return prefixChannel + channel + ":"
}

func channelStateKey(channel, denom string) string {
	return channelStatePrefix(channel) + denom
}

func nextSeqKey(channel string) string {
	return prefixNextSeq + channel
}

// zero padded so lexical key order is sequence order
func transferKey(channel string, seq uint64) string {
	return fmt.Sprintf("%s%s:%020d", prefixTransfer, channel, seq)
}

// OutboxKey orders queued packets by commit time.
func OutboxKey(ts types.Timestamp, id string) string {
	return fmt.Sprintf("%s%020d:%s", PrefixOutbox, ts.Nanos(), id)
}

type VersionInfo struct {
	Contract string `json:"contract"`
	Version  string `json:"version"`
}

func loadConfig(s store.KVStore) (types.Config, error) {
	var cfg types.Config
	found, err := store.GetJSON(s, keyConfig, &cfg)
	if err != nil {
		return cfg, err
	}
	if !found {
		return cfg, fmt.Errorf("config: %w", types.ErrNotFound)
	}
	return cfg, nil
}

func saveConfig(s store.KVStore, cfg types.Config) error {
	return store.SetJSON(s, keyConfig, cfg)
}

func loadChannelInfo(s store.KVStore, id string) (*types.ChannelInfo, error) {
	var info types.ChannelInfo
	found, err := store.GetJSON(s, channelInfoKey(id), &info)
	if err != nil || !found {
		return nil, err
	}
	return &info, nil
}

func hasChannel(s store.KVStore, id string) (bool, error) {
	return s.Has(channelInfoKey(id))
}

func loadChannelState(s store.KVStore, channel, denom string) (types.ChannelState, bool, error) {
	var st types.ChannelState
	found, err := store.GetJSON(s, channelStateKey(channel, denom), &st)
	return st, found, err
}

func nextSequence(s store.KVStore, channel string) (uint64, error) {
	var seq uint64
	found, err := store.GetJSON(s, nextSeqKey(channel), &seq)
	if err != nil {
		return 0, err
	}
	if !found {
		seq = 1
	}
	if err := store.SetJSON(s, nextSeqKey(channel), seq+1); err != nil {
		return 0, err
	}
	return seq, nil
}

func loadTransfer(s store.KVStore, channel string, seq uint64) (*types.TransferRecord, error) {
	var rec types.TransferRecord
	found, err := store.GetJSON(s, transferKey(channel, seq), &rec)
	if err != nil || !found {
		return nil, err
	}
	return &rec, nil
}

func saveTransfer(s store.KVStore, rec *types.TransferRecord) error {
	return store.SetJSON(s, transferKey(rec.Channel, rec.Sequence), rec)
}

// validChannelID follows the ICS-24 identifier charset, ':' is excluded
// because it separates key components.
func validChannelID(id string) error {
	if len(id) < 2 || len(id) > 64 {
		return fmt.Errorf("%w: identifier %q must be 2-64 characters", types.ErrInvalidChannel, id)
	}
	if strings.ContainsFunc(id, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return false
		case strings.ContainsRune("._+-#[]<>", r):
			return false
		}
		return true
	}) {
		return fmt.Errorf("%w: identifier %q has invalid characters", types.ErrInvalidChannel, id)
	}
	return nil
}
