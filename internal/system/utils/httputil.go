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

// Package utils provides utility functions shared across the server.
package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/openmesa/scaffold/internal/system/constants"
	"github.com/openmesa/scaffold/internal/system/error/serviceerror"
	"github.com/openmesa/scaffold/internal/system/log"
)

// ErrNoBearerToken is returned when the request carries no bearer authorization header.
var ErrNoBearerToken = errors.New("no bearer token in authorization header")

// ExtractBearerToken extracts the bearer token from the request's authorization header.
func ExtractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get(constants.AuthorizationHeaderName)
	if !strings.HasPrefix(authHeader, constants.TokenTypeBearer+" ") {
		return "", ErrNoBearerToken
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, constants.TokenTypeBearer+" "))
	if token == "" {
		return "", ErrNoBearerToken
	}
	return token, nil
}

// WriteJSONError writes a JSON error response with the given details.
func WriteJSONError(w http.ResponseWriter, code, desc string, statusCode int) {
	logger := log.GetLogger()
	logger.Error("Error in HTTP response", log.String("error", code), log.String("description", desc))

	errType := serviceerror.ServerErrorType
	if statusCode < http.StatusInternalServerError {
		errType = serviceerror.ClientErrorType
	}
	svcErr := serviceerror.ServiceError{
		Code:             code,
		Type:             errType,
		Error:            code,
		ErrorDescription: desc,
	}

	w.Header().Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(svcErr); err != nil {
		logger.Error("Failed to write JSON error response", log.Error(err))
	}
}

// WriteJSONResponse writes the given payload as a JSON response with the given status code.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.GetLogger().Error("Failed to write JSON response", log.Error(err))
	}
}
