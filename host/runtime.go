// Package host runs bridge entry points the way a chain would: one at a
// time, against a write buffer that is committed only when the entry point
// succeeds.
package host

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"cw20ics20bridge/bridge"
	"cw20ics20bridge/store"
	"cw20ics20bridge/types"
)

// Handler is one entry point invocation.
type Handler func(s store.KVStore, env bridge.Env) (*bridge.Response, error)

type Runtime struct {
	mu    sync.RWMutex
	state store.Committer
	clock Clock
	log   *zap.Logger
}

func NewRuntime(state store.Committer, clock Clock, log *zap.Logger) *Runtime {
	if log == nil {
		log = zap.L()
	}
	return &Runtime{state: state, clock: clock, log: log}
}

// Execute runs h to completion with exclusive access to state. Every packet
// in the response is queued in the outbox in the same commit, so either all
// state changes and all packets become visible or none do.
func (r *Runtime) Execute(name string, h Handler) (*bridge.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	env := bridge.Env{BlockTime: r.clock.Now()}
	batch := store.NewBatch(r.state)

	res, err := h(batch, env)
	if err != nil {
		batch.Discard()
		var underflow *types.LedgerUnderflowError
		if errors.As(err, &underflow) {
			r.log.Error("entry point aborted on ledger invariant violation",
				zap.String("entry", name), zap.Bool("alert", true), zap.Error(err))
		} else {
			r.log.Debug("entry point rejected", zap.String("entry", name), zap.Error(err))
		}
		return nil, err
	}

	for _, msg := range res.Messages {
		if err := store.SetJSON(batch, bridge.OutboxKey(env.BlockTime, msg.ID), msg); err != nil {
			batch.Discard()
			return nil, err
		}
	}

	if err := batch.Commit(); err != nil {
		r.log.Error("commit failed", zap.String("entry", name), zap.Error(err))
		return nil, err
	}
	return res, nil
}

// Query runs a read-only function against committed state.
func (r *Runtime) Query(f func(s store.KVStore) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return f(r.state)
}
