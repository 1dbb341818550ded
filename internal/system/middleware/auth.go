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

package middleware

import (
	"net/http"

	blacklistprovider "github.com/openmesa/scaffold/internal/blacklist/provider"
	"github.com/openmesa/scaffold/internal/system/jwt"
	"github.com/openmesa/scaffold/internal/system/log"
	"github.com/openmesa/scaffold/internal/system/utils"
)

// WithAuth wraps an HTTP handler with bearer token authentication.
//
// The token's signature and expiry are verified first, then the revocation
// registry is consulted. A token that fails verification or has been revoked
// is rejected with 401.
func WithAuth(pattern string, handler http.HandlerFunc) (string, http.HandlerFunc) {
	return pattern, func(w http.ResponseWriter, r *http.Request) {
		logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthMiddleware"))

		token, err := utils.ExtractBearerToken(r)
		if err != nil {
			utils.WriteJSONError(w, "unauthorized", "Missing or malformed bearer token",
				http.StatusUnauthorized)
			return
		}

		if _, err := jwt.GetJWTService().VerifyToken(token); err != nil {
			logger.Debug("Token verification failed", log.Error(err))
			utils.WriteJSONError(w, "unauthorized", "Invalid or expired token",
				http.StatusUnauthorized)
			return
		}

		if blacklistprovider.GetBlacklistService().IsRevoked(r.Context(), token) {
			logger.Debug("Rejected revoked token")
			utils.WriteJSONError(w, "unauthorized", "Token has been revoked",
				http.StatusUnauthorized)
			return
		}

		handler(w, r)
	}
}
