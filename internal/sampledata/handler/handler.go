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

// Package handler provides HTTP handlers for managing sample data API requests.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openmesa/scaffold/internal/sampledata/model"
	"github.com/openmesa/scaffold/internal/sampledata/provider"
	"github.com/openmesa/scaffold/internal/system/log"
	"github.com/openmesa/scaffold/internal/system/utils"
)

const bypassCacheQueryParam = "nocache"

// SampleHandler defines the handler for managing sample data API requests.
type SampleHandler struct{}

// NewSampleHandler creates a new instance of SampleHandler.
func NewSampleHandler() *SampleHandler {
	return &SampleHandler{}
}

// HandleSampleListRequest handles the list samples request.
func (sh *SampleHandler) HandleSampleListRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "SampleHandler"))

	sampleList, err := provider.GetSampleService().GetSampleList(r.Context(), bypassCache(r))
	if err != nil {
		logger.Error("Failed to list samples", log.Error(err))
		utils.WriteJSONError(w, "server_error", "Failed to list samples", http.StatusInternalServerError)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, sampleList)
	logger.Debug("Sample list response sent")
}

// HandleSampleGetRequest handles the get sample by id request.
func (sh *SampleHandler) HandleSampleGetRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "SampleHandler"))

	id := r.PathValue("id")
	if id == "" {
		utils.WriteJSONError(w, "invalid_request", "Sample id is required", http.StatusBadRequest)
		return
	}

	sample, err := provider.GetSampleService().GetSample(r.Context(), id, bypassCache(r))
	if err != nil {
		if errors.Is(err, model.ErrSampleNotFound) {
			utils.WriteJSONError(w, "not_found", "Sample not found", http.StatusNotFound)
			return
		}
		logger.Error("Failed to get sample", log.Error(err))
		utils.WriteJSONError(w, "server_error", "Failed to get sample", http.StatusInternalServerError)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, sample)
	logger.Debug("Sample response sent")
}

// HandleSampleCreateRequest handles the create sample request.
func (sh *SampleHandler) HandleSampleCreateRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "SampleHandler"))

	var sample model.Sample
	if err := json.NewDecoder(r.Body).Decode(&sample); err != nil {
		utils.WriteJSONError(w, "invalid_request", "Invalid request body", http.StatusBadRequest)
		return
	}
	if sample.Name == "" {
		utils.WriteJSONError(w, "invalid_request", "Sample name is required", http.StatusBadRequest)
		return
	}

	created, err := provider.GetSampleService().CreateSample(r.Context(), sample)
	if err != nil {
		logger.Error("Failed to create sample", log.Error(err))
		utils.WriteJSONError(w, "server_error", "Failed to create sample", http.StatusInternalServerError)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, created)
	logger.Debug("Sample created response sent")
}

// bypassCache reports whether the request asked to skip the response cache.
func bypassCache(r *http.Request) bool {
	return r.URL.Query().Get(bypassCacheQueryParam) == "true"
}
