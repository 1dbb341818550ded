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

// Package provider exposes the shared response cache interceptor instance.
package provider

import (
	"sync"
	"time"

	"github.com/openmesa/scaffold/internal/caching"
	"github.com/openmesa/scaffold/internal/caching/store"
	"github.com/openmesa/scaffold/internal/system/config"
	"github.com/openmesa/scaffold/internal/system/log"
	redisprovider "github.com/openmesa/scaffold/internal/system/redis"
)

var (
	instance *caching.Interceptor
	once     sync.Once
)

// GetInterceptor returns the shared response cache interceptor.
//
// The payload store is the shared Redis instance so cached responses survive
// restarts and are visible to every replica. When Redis is unreachable at
// startup the interceptor degrades to a process-local in-memory store.
func GetInterceptor() *caching.Interceptor {
	once.Do(func() {
		cfg := config.GetScaffoldRuntime().Config.ResponseCache

		defaults := caching.Expirations{
			Sliding:  time.Duration(cfg.SlidingExpiryMinutes) * time.Minute,
			Absolute: time.Duration(cfg.AbsoluteExpiryMinutes) * time.Minute,
		}

		payloadStore := newPayloadStore()
		instance = caching.NewInterceptor(payloadStore, defaults)
	})
	return instance
}

// IsResponseCacheDisabled reports whether response caching is disabled by configuration.
func IsResponseCacheDisabled() bool {
	return config.GetScaffoldRuntime().Config.ResponseCache.Disabled
}

// ResetInterceptor resets the shared instance. Used in tests.
func ResetInterceptor() {
	instance = nil
	once = sync.Once{}
}

func newPayloadStore() store.PayloadStoreInterface {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CacheProvider"))

	client, err := redisprovider.GetRedisProvider().GetClient()
	if err != nil {
		logger.Warn("Redis is unavailable, falling back to the in-memory payload store", log.Error(err))
		return store.NewInMemoryPayloadStore()
	}

	return store.NewRedisPayloadStore(client)
}
