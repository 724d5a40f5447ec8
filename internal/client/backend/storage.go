package backend

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

// StorageKey is the fixed key the session is persisted under.
const StorageKey = "gophnotes.auth.token"

// SessionStorage is a small key/value store; securestore.Store satisfies it.
// Get returns nil without error when the key is absent.
type SessionStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

func (c *GRPCClient) saveSession(ctx context.Context, s *models.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.storage.Set(ctx, StorageKey, raw)
}
