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

// Package service provides the business logic for login and logout.
package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/openmesa/scaffold/internal/authn/model"
	blacklistmodel "github.com/openmesa/scaffold/internal/blacklist/model"
	blacklistservice "github.com/openmesa/scaffold/internal/blacklist/service"
	"github.com/openmesa/scaffold/internal/blacklist/store"
	"github.com/openmesa/scaffold/internal/system/config"
	"github.com/openmesa/scaffold/internal/system/constants"
	"github.com/openmesa/scaffold/internal/system/jwt"
	"github.com/openmesa/scaffold/internal/system/log"
)

const logoutRevocationReason = "logout"

// AuthServiceInterface defines the interface for the authentication service.
type AuthServiceInterface interface {
	Login(ctx context.Context, request model.LoginRequest) (*model.LoginResponse, error)
	Logout(ctx context.Context, accessToken, refreshToken string)
}

// AuthService is the default implementation of AuthServiceInterface.
type AuthService struct {
	jwtService jwt.JWTServiceInterface
	tokenStore store.TokenStoreInterface
	blacklist  blacklistservice.BlacklistServiceInterface
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(jwtService jwt.JWTServiceInterface, tokenStore store.TokenStoreInterface,
	blacklist blacklistservice.BlacklistServiceInterface) AuthServiceInterface {
	return &AuthService{
		jwtService: jwtService,
		tokenStore: tokenStore,
		blacklist:  blacklist,
	}
}

// Login validates the credentials against the configured user and issues an
// access and a refresh token. A record of every issued token is persisted so
// it can later be revoked.
func (s *AuthService) Login(ctx context.Context, request model.LoginRequest) (*model.LoginResponse, error) {
	userConfig := config.GetScaffoldRuntime().Config.UserStore.DefaultUser

	usernameMatch := subtle.ConstantTimeCompare([]byte(request.Username), []byte(userConfig.Username))
	passwordMatch := subtle.ConstantTimeCompare([]byte(request.Password), []byte(userConfig.Password))
	if usernameMatch&passwordMatch != 1 {
		return nil, model.ErrInvalidCredentials
	}

	jwtConfig := config.GetScaffoldRuntime().Config.JWT

	accessToken, err := s.issueToken(ctx, request.Username, blacklistmodel.TokenTypeAccess,
		jwtConfig.ValidityPeriod)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.issueToken(ctx, request.Username, blacklistmodel.TokenTypeRefresh,
		jwtConfig.RefreshTokenValidity)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		AccessToken:  accessToken.signed,
		RefreshToken: refreshToken.signed,
		TokenType:    constants.TokenTypeBearer,
		ExpiresIn:    int64(time.Until(accessToken.expiresAt).Seconds()),
	}, nil
}

// Logout revokes the access token and, if present, the refresh token.
// Revocation is best-effort; logout never fails towards the client.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) {
	s.blacklist.Revoke(ctx, accessToken, logoutRevocationReason)
	if refreshToken != "" {
		s.blacklist.Revoke(ctx, refreshToken, logoutRevocationReason)
	}
}

type issuedToken struct {
	signed    string
	expiresAt time.Time
}

// issueToken signs a token for the user and persists its record.
func (s *AuthService) issueToken(ctx context.Context, username string,
	tokenType blacklistmodel.TokenType, validityPeriod int64) (issuedToken, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthService"))

	signed, tokenID, expiresAt, err := s.jwtService.GenerateToken(username, username, validityPeriod)
	if err != nil {
		return issuedToken{}, fmt.Errorf("failed to generate %s token: %w", tokenType, err)
	}

	record := blacklistmodel.TokenRecord{
		TokenID:   tokenID,
		UserID:    username,
		Username:  username,
		TokenType: tokenType,
		Status:    blacklistmodel.TokenStatusActive,
		IssuedAt:  time.Now(),
		ExpiresAt: expiresAt,
	}
	if err := s.tokenStore.CreateTokenRecord(ctx, record); err != nil {
		return issuedToken{}, fmt.Errorf("failed to persist %s token record: %w", tokenType, err)
	}

	logger.Debug("Issued token", log.String(log.LoggerKeyTokenID, tokenID),
		log.String("tokenType", string(tokenType)))
	return issuedToken{signed: signed, expiresAt: expiresAt}, nil
}
