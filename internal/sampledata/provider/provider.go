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

// Package provider exposes the shared sample data service instance.
package provider

import (
	"sync"

	cachingprovider "github.com/openmesa/scaffold/internal/caching/provider"
	"github.com/openmesa/scaffold/internal/sampledata/service"
	"github.com/openmesa/scaffold/internal/sampledata/store"
)

var (
	instance service.SampleServiceInterface
	once     sync.Once
)

// GetSampleService returns the shared sample data service instance.
func GetSampleService() service.SampleServiceInterface {
	once.Do(func() {
		instance = service.NewSampleService(
			store.NewSampleStore(),
			cachingprovider.GetInterceptor(),
			cachingprovider.IsResponseCacheDisabled(),
		)
	})
	return instance
}

// ResetSampleService resets the shared instance. Used in tests.
func ResetSampleService() {
	instance = nil
	once = sync.Once{}
}
