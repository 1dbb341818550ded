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

// Package jwt provides functionality for generating and decoding JWT tokens.
package jwt

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/openmesa/scaffold/internal/system/config"
)

const defaultTokenValidity = 3600 // default validity period of 1 hour
const defaultIssuer = "scaffold"

var (
	instance *JWTService
	once     sync.Once
)

// JWTServiceInterface defines the interface for JWT operations.
type JWTServiceInterface interface {
	Init() error
	GenerateToken(sub, username string, validityPeriod int64) (string, string, time.Time, error)
	VerifyToken(token string) (jwt.MapClaims, error)
}

// JWTService implements the JWTServiceInterface for generating JWT tokens.
type JWTService struct {
	secret []byte
}

// GetJWTService returns a singleton instance of JWTService.
func GetJWTService() JWTServiceInterface {
	once.Do(func() {
		instance = &JWTService{}
	})
	return instance
}

// Init loads the signing secret from the configuration.
func (js *JWTService) Init() error {
	jwtConfig := config.GetScaffoldRuntime().Config.JWT
	if jwtConfig.Secret == "" {
		return errors.New("jwt signing secret is not configured")
	}
	js.secret = []byte(jwtConfig.Secret)
	return nil
}

// GenerateToken generates a signed JWT for the given subject and returns the
// token string, its unique token identifier (jti) and the expiry time.
func (js *JWTService) GenerateToken(sub, username string, validityPeriod int64) (string, string, time.Time, error) {
	if len(js.secret) == 0 {
		return "", "", time.Time{}, errors.New("jwt signing secret not loaded")
	}

	jwtConfig := config.GetScaffoldRuntime().Config.JWT

	issuer := jwtConfig.Issuer
	if issuer == "" {
		issuer = defaultIssuer
	}
	if validityPeriod <= 0 {
		validityPeriod = defaultTokenValidity
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(validityPeriod) * time.Second)
	tokenID := uuid.New().String()

	claims := jwt.MapClaims{
		"iss":      issuer,
		"sub":      sub,
		"jti":      tokenID,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
		"username": username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(js.secret)
	if err != nil {
		return "", "", time.Time{}, err
	}

	return signed, tokenID, expiresAt, nil
}

// VerifyToken parses the token, verifies its signature and standard time claims,
// and returns the claims on success.
func (js *JWTService) VerifyToken(tokenString string) (jwt.MapClaims, error) {
	if len(js.secret) == 0 {
		return nil, errors.New("jwt signing secret not loaded")
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected token signing method")
		}
		return js.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
