package pong

import (
	"context"
	"time"
)

// Run drives m at its fixed rate until ctx is done. After every executed
// tick onFrame receives a snapshot. The timer is re-armed with the frame
// budget minus the time the tick took; cancelling ctx stops re-arming.
func Run(ctx context.Context, m *Match, onFrame func(Snapshot)) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-timer.C:
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			if m.Tick(now) && onFrame != nil {
				onFrame(m.Snapshot())
			}
			timer.Reset(m.FrameDelay(time.Since(start)))
		}
	}
}
