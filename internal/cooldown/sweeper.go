package cooldown

import (
	"context"
	"time"

	"github.com/tellebma/template-discord-bot/internal/logger"
)

// RunSweeper compacts expired cooldown entries every interval until ctx is
// done. Call from main or the app lifecycle.
func RunSweeper(ctx context.Context, t *Tracker, interval time.Duration, log *logger.Logger) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if dropped := t.Sweep(); dropped > 0 {
				log.Debug("swept expired cooldowns", map[string]any{"dropped": dropped})
			}
		}
	}
}
