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

// Package provider exposes the shared token revocation registry instance.
package provider

import (
	"sync"
	"time"

	"github.com/openmesa/scaffold/internal/blacklist/model"
	"github.com/openmesa/scaffold/internal/blacklist/service"
	"github.com/openmesa/scaffold/internal/blacklist/store"
	"github.com/openmesa/scaffold/internal/system/cache"
	"github.com/openmesa/scaffold/internal/system/config"
	dbprovider "github.com/openmesa/scaffold/internal/system/database/provider"
	"github.com/openmesa/scaffold/internal/system/jwt"
)

var (
	instance service.BlacklistServiceInterface
	once     sync.Once
	mu       sync.Mutex
)

// GetBlacklistService returns the shared blacklist service instance.
func GetBlacklistService() service.BlacklistServiceInterface {
	once.Do(func() {
		buffer := service.DefaultFastTierBuffer
		if seconds := config.GetScaffoldRuntime().Config.Blacklist.FastTierBufferSeconds; seconds > 0 {
			buffer = time.Duration(seconds) * time.Second
		}

		instance = service.NewBlacklistService(
			store.NewTokenStore(dbprovider.GetDBProvider()),
			jwt.NewTokenCodec(),
			cache.GetCache[model.TokenRecord](service.TokenRecordCacheName),
			buffer,
		)
	})
	return instance
}

// ResetBlacklistService resets the shared instance. Used in tests.
func ResetBlacklistService() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}
