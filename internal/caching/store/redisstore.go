/*
 * Copyright (c) 2025, OpenMesa (https://openmesa.dev).
 *
 * OpenMesa licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "respcache:"

// redisEnvelope wraps the payload with the absolute deadline so that sliding
// refreshes can never extend an entry past it.
type redisEnvelope struct {
	Payload    []byte `json:"p"`
	AbsoluteAt int64  `json:"ae"` // unix milliseconds
}

// RedisPayloadStore is a PayloadStoreInterface implementation backed by a shared Redis instance.
type RedisPayloadStore struct {
	client *redis.Client
}

// NewRedisPayloadStore creates a new instance of RedisPayloadStore.
func NewRedisPayloadStore(client *redis.Client) PayloadStoreInterface {
	return &RedisPayloadStore{
		client: client,
	}
}

// Get returns the payload for the key, or ErrCacheMiss.
func (s *RedisPayloadStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}

	var envelope redisEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		// A corrupt envelope is unusable; drop it and report a miss.
		_ = s.client.Del(ctx, redisKeyPrefix+key).Err()
		return nil, ErrCacheMiss
	}

	if time.Now().UnixMilli() > envelope.AbsoluteAt {
		_ = s.client.Del(ctx, redisKeyPrefix+key).Err()
		return nil, ErrCacheMiss
	}

	return envelope.Payload, nil
}

// Set stores the payload with the given sliding window and absolute deadline.
// Population is a single store call.
func (s *RedisPayloadStore) Set(ctx context.Context, key string, payload []byte,
	sliding, absolute time.Duration) error {
	envelope := redisEnvelope{
		Payload:    payload,
		AbsoluteAt: time.Now().Add(absolute).UnixMilli(),
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	ttl := sliding
	if absolute < ttl {
		ttl = absolute
	}

	if err := s.client.Set(ctx, redisKeyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Refresh extends the entry's sliding window, capped by its absolute deadline.
func (s *RedisPayloadStore) Refresh(ctx context.Context, key string, sliding time.Duration) error {
	data, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("failed to read cache entry for refresh: %w", err)
	}

	var envelope redisEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return s.Remove(ctx, key)
	}

	remaining := time.Until(time.UnixMilli(envelope.AbsoluteAt))
	if remaining <= 0 {
		return s.Remove(ctx, key)
	}

	ttl := sliding
	if remaining < ttl {
		ttl = remaining
	}

	if err := s.client.PExpire(ctx, redisKeyPrefix+key, ttl).Err(); err != nil {
		return fmt.Errorf("failed to refresh cache entry: %w", err)
	}
	return nil
}

// Remove deletes the entry for the key.
func (s *RedisPayloadStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}
