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

// Package store provides payload store implementations for the response-caching interceptor.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned when a key is absent from the payload store or its entry has expired.
var ErrCacheMiss = errors.New("cache entry not found")

// PayloadStoreInterface defines the contract for storing serialized response payloads.
//
// An entry lives until its sliding window elapses without access or its
// absolute deadline passes, whichever comes first. Writes for the same key are
// idempotent for identical inputs; last write wins.
type PayloadStoreInterface interface {
	// Get returns the payload for the key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores the payload with the given sliding window and absolute deadline.
	Set(ctx context.Context, key string, payload []byte, sliding, absolute time.Duration) error
	// Refresh extends the entry's sliding window, capped by its absolute deadline.
	Refresh(ctx context.Context, key string, sliding time.Duration) error
	// Remove deletes the entry for the key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
