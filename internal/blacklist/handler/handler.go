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

// Package handler provides HTTP handlers for managing token revocation API requests.
package handler

import (
	"net/http"

	"github.com/openmesa/scaffold/internal/blacklist/provider"
	"github.com/openmesa/scaffold/internal/system/log"
	"github.com/openmesa/scaffold/internal/system/utils"
)

// BlacklistHandler defines the handler for managing token revocation API requests.
type BlacklistHandler struct{}

// NewBlacklistHandler creates a new instance of BlacklistHandler.
func NewBlacklistHandler() *BlacklistHandler {
	return &BlacklistHandler{}
}

// HandleStatisticsRequest handles the revocation registry statistics request.
func (bh *BlacklistHandler) HandleStatisticsRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "BlacklistHandler"))

	statistics := provider.GetBlacklistService().GetStatistics(r.Context())

	utils.WriteJSONResponse(w, http.StatusOK, statistics)
	logger.Debug("Blacklist statistics response sent")
}

// HandleCleanupRequest handles the expired record cleanup request.
func (bh *BlacklistHandler) HandleCleanupRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "BlacklistHandler"))

	removed := provider.GetBlacklistService().CleanupExpired(r.Context())

	utils.WriteJSONResponse(w, http.StatusOK, map[string]int{"removed": removed})
	logger.Debug("Blacklist cleanup response sent", log.Int("removed", removed))
}
