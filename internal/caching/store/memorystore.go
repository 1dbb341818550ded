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
	"sync"
	"time"
)

// memoryEntry holds a payload with its sliding window and absolute deadline.
type memoryEntry struct {
	payload    []byte
	sliding    time.Duration
	expiryTime time.Time
	absoluteAt time.Time
}

// InMemoryPayloadStore is a process-local PayloadStoreInterface implementation.
// It is intended for single-instance deployments and tests; multi-instance
// deployments should use the Redis-backed store so entries are shared.
type InMemoryPayloadStore struct {
	entries map[string]*memoryEntry
	mu      sync.RWMutex
}

// NewInMemoryPayloadStore creates a new instance of InMemoryPayloadStore.
func NewInMemoryPayloadStore() PayloadStoreInterface {
	return &InMemoryPayloadStore{
		entries: make(map[string]*memoryEntry),
	}
}

// Get returns the payload for the key, or ErrCacheMiss.
func (s *InMemoryPayloadStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	entry, exists := s.entries[key]
	s.mu.RUnlock()

	if !exists {
		return nil, ErrCacheMiss
	}

	now := time.Now()
	if now.After(entry.expiryTime) || now.After(entry.absoluteAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, ErrCacheMiss
	}

	return entry.payload, nil
}

// Set stores the payload with the given sliding window and absolute deadline.
func (s *InMemoryPayloadStore) Set(ctx context.Context, key string, payload []byte,
	sliding, absolute time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	now := time.Now()
	absoluteAt := now.Add(absolute)
	expiryTime := now.Add(sliding)
	if absoluteAt.Before(expiryTime) {
		expiryTime = absoluteAt
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = &memoryEntry{
		payload:    payload,
		sliding:    sliding,
		expiryTime: expiryTime,
		absoluteAt: absoluteAt,
	}
	return nil
}

// Refresh extends the entry's sliding window, capped by its absolute deadline.
func (s *InMemoryPayloadStore) Refresh(ctx context.Context, key string, sliding time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.entries[key]
	if !exists {
		return nil
	}

	now := time.Now()
	if now.After(entry.absoluteAt) {
		delete(s.entries, key)
		return nil
	}

	expiryTime := now.Add(sliding)
	if entry.absoluteAt.Before(expiryTime) {
		expiryTime = entry.absoluteAt
	}
	entry.expiryTime = expiryTime
	return nil
}

// Remove deletes the entry for the key.
func (s *InMemoryPayloadStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
