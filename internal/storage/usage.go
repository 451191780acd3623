package storage

import (
	"time"

	"github.com/tellebma/template-discord-bot/internal/command"
	"github.com/tellebma/template-discord-bot/internal/logger"
)

// UsageLogger returns a middleware that appends each guild invocation to the
// store's history. DM invocations are skipped; a write failure never fails
// the command.
func UsageLogger(store *Storage, log *logger.Logger) command.Middleware {
	return func(next command.HandlerFunc) command.HandlerFunc {
		return func(ctx *command.Context) error {
			if guildID := ctx.GuildID(); guildID != "" {
				usage := UsageRecord{
					ChannelID: ctx.ChannelID(),
					GuildName: ctx.GuildName(),
					UserID:    ctx.UserID(),
					Username:  ctx.User().Username,
					Command:   ctx.Command().Name,
					Datetime:  time.Now().UTC(),
				}
				if err := store.AppendCommandHistory(guildID, usage); err != nil {
					log.Warn("failed to record command usage", map[string]any{
						"guild": guildID,
						"error": err.Error(),
					})
				}
			}
			return next(ctx)
		}
	}
}
