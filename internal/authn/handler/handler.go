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

// Package handler provides HTTP handlers for managing authentication API requests.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openmesa/scaffold/internal/authn/model"
	"github.com/openmesa/scaffold/internal/authn/provider"
	"github.com/openmesa/scaffold/internal/system/log"
	"github.com/openmesa/scaffold/internal/system/utils"
)

// AuthHandler defines the handler for managing authentication API requests.
type AuthHandler struct{}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// HandleLoginRequest handles the login request.
func (ah *AuthHandler) HandleLoginRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthHandler"))

	var request model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.WriteJSONError(w, "invalid_request", "Invalid request body", http.StatusBadRequest)
		return
	}
	if request.Username == "" || request.Password == "" {
		utils.WriteJSONError(w, "invalid_request", "Username and password are required",
			http.StatusBadRequest)
		return
	}

	response, err := provider.GetAuthService().Login(r.Context(), request)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			utils.WriteJSONError(w, "invalid_credentials", "Invalid username or password",
				http.StatusUnauthorized)
			return
		}
		logger.Error("Login failed", log.Error(err))
		utils.WriteJSONError(w, "server_error", "Login failed", http.StatusInternalServerError)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, response)
	logger.Debug("Login response sent")
}

// HandleLogoutRequest handles the logout request. The bearer access token is
// revoked, and so is the refresh token when the body carries one.
func (ah *AuthHandler) HandleLogoutRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthHandler"))

	accessToken, err := utils.ExtractBearerToken(r)
	if err != nil {
		utils.WriteJSONError(w, "unauthorized", "Missing or malformed bearer token",
			http.StatusUnauthorized)
		return
	}

	var request model.LogoutRequest
	if r.Body != nil {
		// The body is optional; decode errors are ignored.
		_ = json.NewDecoder(r.Body).Decode(&request)
	}

	provider.GetAuthService().Logout(r.Context(), accessToken, request.RefreshToken)

	w.WriteHeader(http.StatusNoContent)
	logger.Debug("Logout response sent")
}
