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

package services

import (
	"net/http"

	"github.com/openmesa/scaffold/internal/blacklist/handler"
	"github.com/openmesa/scaffold/internal/system/middleware"
)

// BlacklistService defines the service for handling token revocation admin API requests.
type BlacklistService struct {
	blacklistHandler *handler.BlacklistHandler
}

// NewBlacklistService creates a new instance of BlacklistService.
func NewBlacklistService(mux *http.ServeMux) ServiceInterface {
	instance := &BlacklistService{
		blacklistHandler: handler.NewBlacklistHandler(),
	}
	instance.RegisterRoutes(mux)

	return instance
}

// RegisterRoutes registers the routes for the BlacklistService.
func (b *BlacklistService) RegisterRoutes(mux *http.ServeMux) {
	opts := middleware.CORSOptions{
		AllowedMethods:   "GET, POST",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}

	mux.HandleFunc(middleware.WithCORS("OPTIONS /blacklist/statistics",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts))

	statsPattern, statsHandler := middleware.WithAuth("GET /blacklist/statistics",
		b.blacklistHandler.HandleStatisticsRequest)
	mux.HandleFunc(middleware.WithCORS(statsPattern, statsHandler, opts))

	mux.HandleFunc(middleware.WithCORS("OPTIONS /blacklist/cleanup",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts))

	cleanupPattern, cleanupHandler := middleware.WithAuth("POST /blacklist/cleanup",
		b.blacklistHandler.HandleCleanupRequest)
	mux.HandleFunc(middleware.WithCORS(cleanupPattern, cleanupHandler, opts))
}
