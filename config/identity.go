package config

import (
	"fmt"
	"sync/atomic"
)

// BotIdentity holds the bot's own Slack user ID. It is empty until the
// bootstrap handshake records one, and read on every channel message to match
// mentions. Writes are rare (operator-driven); last write wins.
type BotIdentity struct {
	userID atomic.Value // string
	store  *EnvStore
}

// NewBotIdentity loads any previously persisted bot user ID from the store.
func NewBotIdentity(store *EnvStore) (*BotIdentity, error) {
	id := &BotIdentity{store: store}
	userID, err := store.BotUserID()
	if err != nil {
		return nil, fmt.Errorf("failed to load bot identity: %w", err)
	}
	id.userID.Store(userID)
	return id, nil
}

// UserID returns the current bot user ID, or "" before bootstrap.
func (b *BotIdentity) UserID() string {
	v, _ := b.userID.Load().(string)
	return v
}

// Set records and persists a new bot user ID. The in-memory value is updated
// even when persisting fails, so the running process works until restart.
func (b *BotIdentity) Set(userID string) error {
	b.userID.Store(userID)
	if err := b.store.SetBotUserID(userID); err != nil {
		return fmt.Errorf("failed to persist bot identity: %w", err)
	}
	return nil
}
