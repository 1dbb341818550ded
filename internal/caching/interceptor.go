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

// Package caching provides a cache-aside interceptor that wraps arbitrary read
// operations so repeated calls with the same key avoid re-running the operation.
//
// The cache is strictly best-effort. Store faults degrade to executing the
// wrapped operation and never surface to the caller; the cache must never
// become a correctness dependency. Concurrent misses for the same key are not
// de-duplicated: both callers run the operation and both write the result,
// which is acceptable because writes for a given key are idempotent.
package caching

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"time"

	"github.com/openmesa/scaffold/internal/caching/store"
	"github.com/openmesa/scaffold/internal/system/log"
)

const loggerComponentName = "CacheInterceptor"

// Interceptor wraps the execution of operations with cache-aside semantics.
type Interceptor struct {
	store    store.PayloadStoreInterface
	defaults Expirations
}

// NewInterceptor creates a new Interceptor over the given payload store.
// Zero default expirations fall back to the documented 30/60 minute values.
func NewInterceptor(payloadStore store.PayloadStoreInterface, defaults Expirations) *Interceptor {
	if defaults.Sliding <= 0 {
		defaults.Sliding = DefaultSlidingExpiry
	}
	if defaults.Absolute <= 0 {
		defaults.Absolute = DefaultAbsoluteExpiry
	}
	return &Interceptor{
		store:    payloadStore,
		defaults: defaults,
	}
}

// Execute runs the operation with cache-aside semantics for the given request.
//
// A bypass request executes the operation directly without touching the store.
// On a hit the cached payload is decoded and returned, and the entry's sliding
// window is refreshed in the background. On a miss the operation runs and a
// non-empty result is written to the store best-effort.
func Execute[T any](ctx context.Context, i *Interceptor, req CacheableRequest,
	op func(ctx context.Context) (T, error)) (T, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if req.Bypass {
		return op(ctx)
	}

	if req.CacheKey == "" {
		// A request without a key cannot be indexed; execute directly.
		logger.Warn("Cacheable request has an empty cache key, executing without caching")
		return op(ctx)
	}

	sliding, absolute := i.defaults.resolve(req)

	payload, err := i.store.Get(ctx, req.CacheKey)
	if err == nil {
		var cached T
		if decodeErr := json.Unmarshal(payload, &cached); decodeErr == nil {
			logger.Debug("Serving response from cache", log.String(log.LoggerKeyCacheKey, req.CacheKey))
			i.refreshAsync(ctx, req.CacheKey, sliding)
			return cached, nil
		}
		// A payload that no longer decodes into T is treated as a miss.
		logger.Warn("Failed to decode cached payload, treating as a miss",
			log.String(log.LoggerKeyCacheKey, req.CacheKey))
		if removeErr := i.store.Remove(ctx, req.CacheKey); removeErr != nil {
			logger.Warn("Failed to remove undecodable cache entry",
				log.String(log.LoggerKeyCacheKey, req.CacheKey), log.Error(removeErr))
		}
	} else if !errors.Is(err, store.ErrCacheMiss) {
		logger.Warn("Cache read failed, treating as a miss",
			log.String(log.LoggerKeyCacheKey, req.CacheKey), log.Error(err))
	}

	result, opErr := op(ctx)
	if opErr != nil {
		return result, opErr
	}

	if isEmptyResult(result) {
		return result, nil
	}

	encoded, encodeErr := json.Marshal(result)
	if encodeErr != nil {
		logger.Warn("Failed to encode response for caching",
			log.String(log.LoggerKeyCacheKey, req.CacheKey), log.Error(encodeErr))
		return result, nil
	}

	if setErr := i.store.Set(ctx, req.CacheKey, encoded, sliding, absolute); setErr != nil {
		logger.Warn("Failed to write response to cache",
			log.String(log.LoggerKeyCacheKey, req.CacheKey), log.Error(setErr))
		return result, nil
	}

	logger.Debug("Added response to cache", log.String(log.LoggerKeyCacheKey, req.CacheKey))
	return result, nil
}

// refreshAsync extends the entry's sliding window without blocking the caller.
// A failed refresh only shortens the entry's lifetime, so errors are logged and dropped.
func (i *Interceptor) refreshAsync(ctx context.Context, key string, sliding time.Duration) {
	refreshCtx := context.WithoutCancel(ctx)
	go func() {
		if err := i.store.Refresh(refreshCtx, key, sliding); err != nil {
			log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
				Warn("Failed to refresh cache entry sliding window",
					log.String(log.LoggerKeyCacheKey, key), log.Error(err))
		}
	}()
}

// isEmptyResult reports whether the operation produced nothing worth caching.
func isEmptyResult(result any) bool {
	v := reflect.ValueOf(result)
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Slice, reflect.Map:
		return v.IsNil() || v.Len() == 0
	default:
		return v.IsZero()
	}
}
