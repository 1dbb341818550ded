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

package jwt

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoTokenID is returned when a token carries no extractable identifier claim.
var ErrNoTokenID = errors.New("token has no extractable identifier")

// TokenCodecInterface defines the decode-only contract for reading claims out of a token.
//
// The codec decodes the token structure WITHOUT verifying its signature. The
// values it returns are unauthenticated and must never be trusted for
// authorization decisions. They are suitable only as index keys, e.g. for
// looking up a token record by its identifier.
type TokenCodecInterface interface {
	ExtractTokenID(token string) (string, error)
	ExtractClaims(token string) (map[string]interface{}, error)
}

// TokenCodec is the default implementation of TokenCodecInterface.
type TokenCodec struct{}

// NewTokenCodec creates a new instance of TokenCodec.
func NewTokenCodec() TokenCodecInterface {
	return &TokenCodec{}
}

// ExtractTokenID decodes the token payload and returns the jti claim.
// The signature is not verified; see the interface contract.
func (c *TokenCodec) ExtractTokenID(token string) (string, error) {
	claims, err := c.ExtractClaims(token)
	if err != nil {
		return "", err
	}

	tokenID, ok := claims["jti"].(string)
	if !ok || tokenID == "" {
		return "", ErrNoTokenID
	}
	return tokenID, nil
}

// ExtractClaims decodes the token payload and returns all claims as a map.
// The signature is not verified; see the interface contract.
func (c *TokenCodec) ExtractClaims(token string) (map[string]interface{}, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
