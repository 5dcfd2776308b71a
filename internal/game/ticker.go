package game

import (
	"context"
	"time"
)

// RunTicker advances the animation of every session in repo once per
// interval until ctx is done.
func RunTicker(ctx context.Context, repo SessionRepository, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			for _, s := range repo.List() {
				s.Tick()
			}
		}
	}
}
