package listview

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store persists view states in Redis keyed by session and entity, so a
// dashboard session keeps its filters and page across requests and process
// restarts. Only the view state is stored; report rows are always recomputed.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore wraps a Redis client. A nil client degrades to default states.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func stateKey(session, entity string) string {
	return fmt.Sprintf("viewstate:%s:%s", entity, session)
}

// Load returns the saved state for a session and entity, or def when nothing
// was saved yet.
func (s *Store) Load(ctx context.Context, session, entity string, def State) (State, error) {
	if s == nil || s.client == nil || session == "" {
		return def, nil
	}
	payload, err := s.client.Get(ctx, stateKey(session, entity)).Bytes()
	if err == redis.Nil {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	var st State
	if err := json.Unmarshal(payload, &st); err != nil {
		return def, err
	}
	return st, nil
}

// Save writes the state back under the session key, refreshing its TTL.
func (s *Store) Save(ctx context.Context, session, entity string, st State) error {
	if s == nil || s.client == nil || session == "" {
		return nil
	}
	payload, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, stateKey(session, entity), payload, s.ttl).Err()
}
