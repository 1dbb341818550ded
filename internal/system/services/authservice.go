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

	"github.com/openmesa/scaffold/internal/authn/handler"
	"github.com/openmesa/scaffold/internal/system/middleware"
)

// AuthService defines the service for handling login and logout API requests.
type AuthService struct {
	authHandler *handler.AuthHandler
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(mux *http.ServeMux) ServiceInterface {
	instance := &AuthService{
		authHandler: handler.NewAuthHandler(),
	}
	instance.RegisterRoutes(mux)

	return instance
}

// RegisterRoutes registers the routes for the AuthService.
func (a *AuthService) RegisterRoutes(mux *http.ServeMux) {
	opts := middleware.CORSOptions{
		AllowedMethods:   "POST",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}

	mux.HandleFunc(middleware.WithCORS("OPTIONS /auth/login",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts))
	mux.HandleFunc(middleware.WithCORS("POST /auth/login",
		a.authHandler.HandleLoginRequest, opts))

	mux.HandleFunc(middleware.WithCORS("OPTIONS /auth/logout",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts))
	mux.HandleFunc(middleware.WithCORS("POST /auth/logout",
		a.authHandler.HandleLogoutRequest, opts))
}
