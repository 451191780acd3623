package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// registerCommands syncs slash commands for a guild with Discord: deletes
// obsolete ones, creates or updates commands whose definition has changed.
// The application ID comes from config, where it is a required value.
func (b *Bot) registerCommands(guildID string) {
	appID := b.cfg.AppID

	remote, _ := b.session.ApplicationCommands(appID, guildID)
	remoteByName := make(map[string]*discordgo.ApplicationCommand, len(remote))
	for _, c := range remote {
		remoteByName[c.Name] = c
	}

	local := b.registry.Definitions()
	cached := b.loadCommandHashes(guildID)

	b.deleteObsoleteCommands(appID, guildID, remoteByName, local)
	b.upsertChangedCommands(appID, guildID, local, cached)
}

// deleteObsoleteCommands removes remote commands no longer in the registry.
func (b *Bot) deleteObsoleteCommands(appID, guildID string, remote map[string]*discordgo.ApplicationCommand, local []*discordgo.ApplicationCommand) {
	localNames := make(map[string]struct{}, len(local))
	for _, d := range local {
		localNames[d.Name] = struct{}{}
	}

	hashes := b.loadCommandHashes(guildID)
	dirty := false
	for name, rc := range remote {
		if _, exists := localNames[name]; exists {
			continue
		}
		b.log.Info("deleting obsolete command", map[string]any{"guild": guildID, "command": name})
		if err := b.session.ApplicationCommandDelete(appID, guildID, rc.ID); err != nil {
			b.log.Error("failed to delete command", map[string]any{
				"guild":   guildID,
				"command": name,
				"error":   err.Error(),
			})
		} else {
			delete(hashes, name)
			dirty = true
		}
	}
	if dirty {
		b.saveCommandHashes(guildID, hashes)
	}
}

// upsertChangedCommands creates or updates commands whose hash differs from
// the cached value, pacing requests with the register limiter.
func (b *Bot) upsertChangedCommands(appID, guildID string, defs []*discordgo.ApplicationCommand, cached map[string]string) {
	var changed []*discordgo.ApplicationCommand
	newHashes := make(map[string]string, len(defs))
	for _, d := range defs {
		h := hashCommand(d)
		newHashes[d.Name] = h
		if cached[d.Name] != h {
			changed = append(changed, d)
		}
	}
	if len(changed) == 0 {
		return
	}

	b.log.Info("registering changed commands", map[string]any{
		"guild": guildID,
		"count": len(changed),
	})
	for _, d := range changed {
		if err := b.registerLimiter.Wait(context.Background()); err != nil {
			return
		}
		if _, err := b.session.ApplicationCommandCreate(appID, guildID, d); err != nil {
			b.log.Error("failed to register command", map[string]any{
				"guild":   guildID,
				"command": d.Name,
				"error":   err.Error(),
			})
		} else {
			b.log.Info("registered command", map[string]any{"guild": guildID, "command": d.Name})
		}
	}

	merged := b.loadCommandHashes(guildID)
	for k, v := range newHashes {
		merged[k] = v
	}
	b.saveCommandHashes(guildID, merged)
}
