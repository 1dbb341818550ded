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

// Package model defines the data structures for the sample data API.
package model

import (
	"errors"
	"time"
)

// ErrSampleNotFound is returned when no sample exists for the given identifier.
var ErrSampleNotFound = errors.New("sample not found")

// Sample represents a single sample data record served by the demo API.
type Sample struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

// SampleList represents a list of sample records.
type SampleList struct {
	TotalResults int      `json:"total_results"`
	Samples      []Sample `json:"samples"`
}
