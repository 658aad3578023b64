package workers

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"cw20ics20bridge/host"
)

// Worker_dispatchPackets drains the outbox into the relayer every interval
// until ctx is cancelled. A failed packet stays queued and blocks the ones
// behind it, so packets leave in commit order.
func Worker_dispatchPackets(ctx context.Context, rt *host.Runtime, d host.Dispatcher, interval time.Duration, batch int) {
	zap.L().Info("starting packet dispatcher", zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("packet dispatcher stopped")
			return
		case <-ticker.C:
		}

		sent, err := rt.Drain(ctx, d, batch)
		if err != nil && !errors.Is(err, context.Canceled) {
			zap.L().Warn("error dispatching packets", zap.Int("sent", sent), zap.Error(err))
			continue
		}
		if sent > 0 {
			zap.L().Debug("dispatched packets", zap.Int("sent", sent))
		}
	}
}
