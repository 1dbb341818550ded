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

// Package redis provides functionality for managing the shared Redis client.
package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openmesa/scaffold/internal/system/config"
	"github.com/openmesa/scaffold/internal/system/log"
)

const pingTimeout = 5 * time.Second

// RedisProviderInterface defines the interface for getting the Redis client.
type RedisProviderInterface interface {
	GetClient() (*redis.Client, error)
}

// RedisProvider is the implementation of RedisProviderInterface.
type RedisProvider struct {
	client *redis.Client
	mutex  sync.RWMutex
}

var (
	instance *RedisProvider
	once     sync.Once
)

// GetRedisProvider returns the instance of RedisProvider.
func GetRedisProvider() RedisProviderInterface {
	once.Do(func() {
		instance = &RedisProvider{}
	})
	return instance
}

// GetClient returns the shared Redis client, initializing it on first use.
func (p *RedisProvider) GetClient() (*redis.Client, error) {
	p.mutex.RLock()
	if p.client != nil {
		client := p.client
		p.mutex.RUnlock()
		return client, nil
	}
	p.mutex.RUnlock()

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	redisConfig := config.GetScaffoldRuntime().Config.Redis
	client := redis.NewClient(&redis.Options{
		Addr:     redisConfig.Addr,
		Password: redisConfig.Password,
		DB:       redisConfig.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		if closeErr := client.Close(); closeErr != nil {
			log.GetLogger().Error("Failed to close Redis client", log.Error(closeErr))
		}
		return nil, fmt.Errorf("failed to ping redis at %s: %w", redisConfig.Addr, err)
	}

	p.client = client
	return p.client, nil
}

// ResetRedisProvider resets the provider state. This should only be used in tests.
func ResetRedisProvider() {
	if instance != nil {
		instance.mutex.Lock()
		instance.client = nil
		instance.mutex.Unlock()
	}
	instance = nil
	once = sync.Once{}
}
