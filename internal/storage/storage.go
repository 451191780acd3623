// Package storage persists per-guild bot data in a JSON file store.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/keshon/datastore"
)

const commandHistoryLimit = 20

// Storage wraps the file-backed datastore with guild-keyed records.
type Storage struct {
	ds *datastore.DataStore
}

// UsageRecord is one command invocation as kept in the history list.
type UsageRecord struct {
	ChannelID string    `json:"channel_id"`
	GuildName string    `json:"guild_name"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Command   string    `json:"command"`
	Datetime  time.Time `json:"datetime"`
}

// Record is everything stored for one guild.
type Record struct {
	CommandHistory []UsageRecord `json:"cmd_history"`
}

// New opens or creates the store at filePath. The store's background flush
// goroutine runs until ctx is cancelled.
func New(ctx context.Context, filePath string) (*Storage, error) {
	ds, err := datastore.New(ctx, filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

// Close flushes and closes the underlying store.
func (s *Storage) Close() error {
	return s.ds.Close()
}

// getGuildRecord loads a guild record, returning an empty one on first use.
// History is trimmed to the retention limit on load.
func (s *Storage) getGuildRecord(guildID string) (*Record, error) {
	var record Record
	found, err := s.ds.Get(guildID, &record)
	if err != nil {
		return nil, fmt.Errorf("error loading record for guild %s: %w", guildID, err)
	}
	if !found {
		return &Record{CommandHistory: []UsageRecord{}}, nil
	}

	if len(record.CommandHistory) > commandHistoryLimit {
		record.CommandHistory = record.CommandHistory[len(record.CommandHistory)-commandHistoryLimit:]
	}

	return &record, nil
}

// AppendCommandHistory records one invocation for a guild.
func (s *Storage) AppendCommandHistory(guildID string, usage UsageRecord) error {
	record, err := s.getGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.CommandHistory = append(record.CommandHistory, usage)
	if len(record.CommandHistory) > commandHistoryLimit {
		record.CommandHistory = record.CommandHistory[len(record.CommandHistory)-commandHistoryLimit:]
	}
	return s.ds.Set(guildID, record)
}

// FetchCommandHistory returns a guild's recent invocations, oldest first.
func (s *Storage) FetchCommandHistory(guildID string) ([]UsageRecord, error) {
	record, err := s.getGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.CommandHistory, nil
}
