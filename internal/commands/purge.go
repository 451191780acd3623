package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/tellebma/template-discord-bot/internal/command"
	"github.com/tellebma/template-discord-bot/internal/errs"
)

// Purge bulk-deletes recent messages in the invoking channel. Requires the
// Manage Messages permission.
func Purge() *command.Command {
	return &command.Command{
		Name:        "purge",
		Description: "Delete recent messages in this channel",
		Category:    "moderation",
		Permissions: []int64{discordgo.PermissionManageMessages},
		Cooldown:    10,
		Options: []*command.Option{
			{
				Type:        command.TypeInteger,
				Name:        "count",
				Description: "How many messages to delete (1-100)",
				Required:    true,
				Min:         command.FloatPtr(1),
				Max:         command.FloatPtr(100),
			},
		},
		Handler: func(ctx *command.Context) error {
			count := int(ctx.Integer("count"))

			if err := ctx.DeferReply(true); err != nil {
				return err
			}

			msgs, err := ctx.Session.ChannelMessages(ctx.ChannelID(), count, "", "", "")
			if err != nil {
				return errs.NewExternal("discord", 0, true, err)
			}

			ids := make([]string, 0, len(msgs))
			for _, m := range msgs {
				ids = append(ids, m.ID)
			}
			if len(ids) > 0 {
				if err := ctx.Session.ChannelMessagesBulkDelete(ctx.ChannelID(), ids); err != nil {
					return errs.NewExternal("discord", 0, true, err)
				}
			}

			return ctx.FollowupEphemeral(fmt.Sprintf("Deleted %d message(s).", len(ids)))
		},
	}
}
