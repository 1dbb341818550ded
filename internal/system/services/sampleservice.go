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

	"github.com/openmesa/scaffold/internal/sampledata/handler"
	"github.com/openmesa/scaffold/internal/system/middleware"
)

// SampleService defines the service for handling sample data API requests.
type SampleService struct {
	sampleHandler *handler.SampleHandler
}

// NewSampleService creates a new instance of SampleService.
func NewSampleService(mux *http.ServeMux) ServiceInterface {
	instance := &SampleService{
		sampleHandler: handler.NewSampleHandler(),
	}
	instance.RegisterRoutes(mux)

	return instance
}

// RegisterRoutes registers the routes for the SampleService.
func (s *SampleService) RegisterRoutes(mux *http.ServeMux) {
	opts := middleware.CORSOptions{
		AllowedMethods:   "GET, POST",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}

	mux.HandleFunc(middleware.WithCORS("OPTIONS /samples",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts))

	listPattern, listHandler := middleware.WithAuth("GET /samples",
		s.sampleHandler.HandleSampleListRequest)
	mux.HandleFunc(middleware.WithCORS(listPattern, listHandler, opts))

	createPattern, createHandler := middleware.WithAuth("POST /samples",
		s.sampleHandler.HandleSampleCreateRequest)
	mux.HandleFunc(middleware.WithCORS(createPattern, createHandler, opts))

	mux.HandleFunc(middleware.WithCORS("OPTIONS /samples/{id}",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts))

	getPattern, getHandler := middleware.WithAuth("GET /samples/{id}",
		s.sampleHandler.HandleSampleGetRequest)
	mux.HandleFunc(middleware.WithCORS(getPattern, getHandler, opts))
}
