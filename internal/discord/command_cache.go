package discord

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// guildCachePath returns the path to a guild's command hash cache.
func (b *Bot) guildCachePath(guildID string) string {
	return filepath.Join(b.cfg.CommandCacheDir, guildID+".json")
}

// loadCommandHashes loads the cached definition hashes for a guild. A missing
// or unreadable cache means everything re-registers.
func (b *Bot) loadCommandHashes(guildID string) map[string]string {
	hashes := make(map[string]string)
	if file, err := os.ReadFile(b.guildCachePath(guildID)); err == nil {
		_ = json.Unmarshal(file, &hashes)
	}
	return hashes
}

// saveCommandHashes persists the definition hashes for a guild.
func (b *Bot) saveCommandHashes(guildID string, hashes map[string]string) {
	path := b.guildCachePath(guildID)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		b.log.Warn("failed to create command cache dir", map[string]any{"error": err.Error()})
		return
	}
	data, _ := json.MarshalIndent(hashes, "", "  ")
	if err := os.WriteFile(path, data, 0644); err != nil {
		b.log.Warn("failed to write command cache", map[string]any{
			"guild": guildID,
			"error": err.Error(),
		})
	}
}
