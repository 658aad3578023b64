package host

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"cw20ics20bridge/bridge"
	"cw20ics20bridge/store"
	"cw20ics20bridge/types"
)

// Dispatcher hands a committed packet to the transport. The bridge does not
// wait for delivery, the outcome comes back later as an ack or a timeout.
type Dispatcher interface {
	SendPacket(ctx context.Context, msg types.SendPacketMsg) error
}

type OutboxEntry struct {
	Key string
	Msg types.SendPacketMsg
}

// Pending returns up to limit queued packets, oldest first.
func (r *Runtime) Pending(limit int) ([]OutboxEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys, err := r.state.Keys(bridge.PrefixOutbox)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	entries := make([]OutboxEntry, 0, len(keys))
	for _, k := range keys {
		var msg types.SendPacketMsg
		found, err := store.GetJSON(r.state, k, &msg)
		if err != nil {
			return nil, err
		}
		if found {
			entries = append(entries, OutboxEntry{Key: k, Msg: msg})
		}
	}
	return entries, nil
}

func (r *Runtime) removeOutbox(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state.Delete(key)
}

// Drain sends up to limit queued packets. A packet leaves the outbox only
// after the dispatcher accepted it, a failed send is retried on the next call.
func (r *Runtime) Drain(ctx context.Context, d Dispatcher, limit int) (int, error) {
	entries, err := r.Pending(limit)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		if err := d.SendPacket(ctx, e.Msg); err != nil {
			r.log.Warn("packet dispatch failed",
				zap.String("id", e.Msg.ID),
				zap.String("channel", e.Msg.ChannelID),
				zap.Uint64("sequence", e.Msg.Sequence),
				zap.Error(err))
			return sent, fmt.Errorf("dispatch %s: %w", e.Msg.ID, err)
		}
		if err := r.removeOutbox(e.Key); err != nil {
			return sent, err
		}
		sent++
		r.log.Info("packet dispatched",
			zap.String("id", e.Msg.ID),
			zap.String("channel", e.Msg.ChannelID),
			zap.Uint64("sequence", e.Msg.Sequence))
	}
	return sent, nil
}
