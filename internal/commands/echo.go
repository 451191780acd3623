package commands

import (
	"github.com/tellebma/template-discord-bot/internal/command"
)

// Echo repeats the supplied message back to the channel.
func Echo() *command.Command {
	return &command.Command{
		Name:        "echo",
		Description: "Repeat a message",
		Options: []*command.Option{
			{
				Type:        command.TypeString,
				Name:        "message",
				Description: "What to repeat",
				Required:    true,
				MaxLength:   command.IntPtr(2000),
			},
		},
		Handler: func(ctx *command.Context) error {
			return ctx.Reply(ctx.String("message"))
		},
	}
}
