package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/tellebma/template-discord-bot/internal/command"
	"github.com/tellebma/template-discord-bot/internal/errs"
	"github.com/tellebma/template-discord-bot/internal/storage"
)

// History shows the guild's recent command invocations from the store.
func History(store *storage.Storage) *command.Command {
	return &command.Command{
		Name:        "history",
		Description: "Show recent command usage in this server",
		Category:    "moderation",
		Permissions: []int64{discordgo.PermissionManageServer},
		Handler: func(ctx *command.Context) error {
			guildID := ctx.GuildID()
			if guildID == "" {
				return ctx.ReplyEphemeral("This command only works in a server.")
			}

			records, err := store.FetchCommandHistory(guildID)
			if err != nil {
				return errs.Wrap(err, errs.CodeInternal, "failed to load command history")
			}
			if len(records) == 0 {
				return ctx.ReplyEphemeral("No command usage recorded yet.")
			}

			var b strings.Builder
			b.WriteString("Recent commands:\n")
			for i := len(records) - 1; i >= 0; i-- {
				r := records[i]
				fmt.Fprintf(&b, "`%s` /%s by %s\n",
					r.Datetime.Format("2006-01-02 15:04"), r.Command, r.Username)
			}
			return ctx.ReplyEphemeral(b.String())
		},
	}
}
