package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tharindraj/ctrl-alt-rock-voting/logging"
)

// RedisClient is the part of redis.Cmdable the document store needs.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisDocumentStore keeps every collection as a JSON string under Prefix+collection.
type RedisDocumentStore struct {
	Client RedisClient
	Prefix string
}

func (s *RedisDocumentStore) key(collection Collection) string {
	return s.Prefix + string(collection)
}

func (s *RedisDocumentStore) Read(ctx context.Context, collection Collection, out any) error {
	data, err := s.Client.Get(ctx, s.key(collection)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrDocumentNotFound
	}
	if err != nil {
		logging.Log.Errorf("STORE: redis GET %s failed: %v", s.key(collection), err)
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		logging.Log.Errorf("STORE: failed to decode %s: %v", collection, err)
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

func (s *RedisDocumentStore) Write(ctx context.Context, collection Collection, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		logging.Log.Errorf("STORE: failed to encode %s: %v", collection, err)
		return fmt.Errorf("encode %s: %w", collection, err)
	}
	if err := s.Client.Set(ctx, s.key(collection), body, 0).Err(); err != nil {
		logging.Log.Errorf("STORE: redis SET %s failed: %v", s.key(collection), err)
		return err
	}
	return nil
}
