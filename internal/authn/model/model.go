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

// Package model defines the data structures for the authentication API.
package model

import "errors"

// ErrInvalidCredentials is returned when the supplied credentials do not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// LoginRequest represents the login request body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents the successful login response body.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// LogoutRequest represents the optional logout request body carrying the
// refresh token to be revoked alongside the access token.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}
