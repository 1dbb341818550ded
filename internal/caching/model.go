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

package caching

import "time"

const (
	// DefaultSlidingExpiry is the sliding window applied when a request does not specify one.
	DefaultSlidingExpiry = 30 * time.Minute
	// DefaultAbsoluteExpiry is the hard expiry ceiling applied when a request does not specify one.
	DefaultAbsoluteExpiry = 60 * time.Minute
)

// CacheableRequest declares that the response to an operation may be cached.
// It is constructed per call and never persisted.
type CacheableRequest struct {
	// CacheKey uniquely identifies the logical query. Required.
	CacheKey string
	// Bypass skips the cache entirely and executes the wrapped operation directly.
	Bypass bool
	// SlidingExpiry is the sliding window for the cached entry. Zero means the configured default.
	SlidingExpiry time.Duration
	// AbsoluteExpiry is the hard ceiling for the cached entry. Zero means the configured default.
	AbsoluteExpiry time.Duration
}

// Expirations holds the resolved expiration defaults for an interceptor.
type Expirations struct {
	Sliding  time.Duration
	Absolute time.Duration
}

// resolve applies the interceptor defaults to the request values.
func (e Expirations) resolve(req CacheableRequest) (time.Duration, time.Duration) {
	sliding := req.SlidingExpiry
	if sliding <= 0 {
		sliding = e.Sliding
	}
	absolute := req.AbsoluteExpiry
	if absolute <= 0 {
		absolute = e.Absolute
	}
	return sliding, absolute
}
