// Package history writes chat lines to the external history store. The
// coordinator fires these writes and forgets them.
package history

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"watchroom/internal/domain"
)

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

type entry struct {
	User domain.UserRef `json:"user_id"`
	Text string         `json:"text"`
	Time int64          `json:"time"`
}

func (s *RedisStore) Append(ctx context.Context, room domain.RoomName, ref domain.UserRef, text string) error {
	b, err := json.Marshal(entry{User: ref, Text: text, Time: time.Now().Unix()})
	if err != nil {
		return err
	}
	return s.rdb.RPush(ctx, "history:"+string(room), b).Err()
}

func (s *RedisStore) Close() error { return s.rdb.Close() }
