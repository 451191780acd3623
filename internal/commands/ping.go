// Package commands holds the builtin slash commands. Each constructor returns
// an immutable declaration; the full set is assembled in cmd/bot.
package commands

import (
	"fmt"

	"github.com/tellebma/template-discord-bot/internal/command"
)

// Ping replies with the gateway heartbeat latency.
func Ping() *command.Command {
	return &command.Command{
		Name:        "ping",
		Description: "Check that the bot is alive",
		Cooldown:    3,
		Handler: func(ctx *command.Context) error {
			latency := ctx.Session.HeartbeatLatency()
			return ctx.Reply(fmt.Sprintf("Pong! Gateway latency: %dms", latency.Milliseconds()))
		},
	}
}
