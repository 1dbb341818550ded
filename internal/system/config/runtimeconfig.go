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

package config

import "sync"

// ScaffoldRuntime holds the runtime configuration for the Scaffold server.
type ScaffoldRuntime struct {
	ScaffoldHome string `yaml:"scaffold_home"`
	Config       Config `yaml:"config"`
}

var (
	runtimeConfig *ScaffoldRuntime
	once          sync.Once
)

// InitializeScaffoldRuntime initializes the ScaffoldRuntime configuration.
func InitializeScaffoldRuntime(scaffoldHome string, config *Config) error {
	once.Do(func() {
		runtimeConfig = &ScaffoldRuntime{
			ScaffoldHome: scaffoldHome,
			Config:       *config,
		}
	})

	return nil
}

// GetScaffoldRuntime returns the ScaffoldRuntime configuration.
func GetScaffoldRuntime() *ScaffoldRuntime {
	if runtimeConfig == nil {
		panic("ScaffoldRuntime is not initialized")
	}
	return runtimeConfig
}

// ResetScaffoldRuntime resets the ScaffoldRuntime.
// This should only be used in tests to reset the singleton state.
func ResetScaffoldRuntime() {
	runtimeConfig = nil
	once = sync.Once{}
}
