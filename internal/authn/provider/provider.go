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

// Package provider exposes the shared authentication service instance.
package provider

import (
	"sync"

	"github.com/openmesa/scaffold/internal/authn/service"
	blacklistprovider "github.com/openmesa/scaffold/internal/blacklist/provider"
	"github.com/openmesa/scaffold/internal/blacklist/store"
	dbprovider "github.com/openmesa/scaffold/internal/system/database/provider"
	"github.com/openmesa/scaffold/internal/system/jwt"
)

var (
	instance service.AuthServiceInterface
	once     sync.Once
)

// GetAuthService returns the shared authentication service instance.
func GetAuthService() service.AuthServiceInterface {
	once.Do(func() {
		instance = service.NewAuthService(
			jwt.GetJWTService(),
			store.NewTokenStore(dbprovider.GetDBProvider()),
			blacklistprovider.GetBlacklistService(),
		)
	})
	return instance
}

// ResetAuthService resets the shared instance. Used in tests.
func ResetAuthService() {
	instance = nil
	once = sync.Once{}
}
