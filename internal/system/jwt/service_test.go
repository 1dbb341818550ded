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
	"testing"
	"time"

	"github.com/openmesa/scaffold/internal/system/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type JWTServiceTestSuite struct {
	suite.Suite
	service *JWTService
}

func TestJWTServiceSuite(t *testing.T) {
	suite.Run(t, new(JWTServiceTestSuite))
}

func (suite *JWTServiceTestSuite) SetupTest() {
	mockConfig := &config.Config{
		JWT: config.JWTConfig{
			Issuer:         "scaffold-test",
			ValidityPeriod: 3600,
			Secret:         "test-signing-secret",
		},
	}
	config.ResetScaffoldRuntime()
	if err := config.InitializeScaffoldRuntime("/tmp/scaffold/test", mockConfig); err != nil {
		suite.T().Fatal("Failed to initialize ScaffoldRuntime:", err)
	}

	suite.service = &JWTService{}
	if err := suite.service.Init(); err != nil {
		suite.T().Fatal("Failed to initialize JWT service:", err)
	}
}

func (suite *JWTServiceTestSuite) TearDownTest() {
	config.ResetScaffoldRuntime()
}

func (suite *JWTServiceTestSuite) TestGenerateToken() {
	signed, tokenID, expiresAt, err := suite.service.GenerateToken("user-1", "admin", 3600)

	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), signed)
	assert.NotEmpty(suite.T(), tokenID)
	assert.WithinDuration(suite.T(), time.Now().Add(time.Hour), expiresAt, 5*time.Second)
}

func (suite *JWTServiceTestSuite) TestGeneratedTokenCarriesExpectedClaims() {
	signed, tokenID, _, err := suite.service.GenerateToken("user-1", "admin", 3600)
	assert.NoError(suite.T(), err)

	codec := NewTokenCodec()
	claims, err := codec.ExtractClaims(signed)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "scaffold-test", claims["iss"])
	assert.Equal(suite.T(), "user-1", claims["sub"])
	assert.Equal(suite.T(), tokenID, claims["jti"])
	assert.Equal(suite.T(), "admin", claims["username"])
}

func (suite *JWTServiceTestSuite) TestVerifyTokenSuccess() {
	signed, tokenID, _, err := suite.service.GenerateToken("user-1", "admin", 3600)
	assert.NoError(suite.T(), err)

	claims, err := suite.service.VerifyToken(signed)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), tokenID, claims["jti"])
}

func (suite *JWTServiceTestSuite) TestVerifyTokenRejectsTampering() {
	signed, _, _, err := suite.service.GenerateToken("user-1", "admin", 3600)
	assert.NoError(suite.T(), err)

	tampered := signed[:len(signed)-4] + "abcd"

	_, err = suite.service.VerifyToken(tampered)
	assert.Error(suite.T(), err)
}

func (suite *JWTServiceTestSuite) TestVerifyTokenRejectsWrongSecret() {
	signed, _, _, err := suite.service.GenerateToken("user-1", "admin", 3600)
	assert.NoError(suite.T(), err)

	other := &JWTService{secret: []byte("another-secret")}
	_, err = other.VerifyToken(signed)
	assert.Error(suite.T(), err)
}

func (suite *JWTServiceTestSuite) TestInitFailsWithoutSecret() {
	mockConfig := &config.Config{}
	config.ResetScaffoldRuntime()
	if err := config.InitializeScaffoldRuntime("/tmp/scaffold/test", mockConfig); err != nil {
		suite.T().Fatal("Failed to initialize ScaffoldRuntime:", err)
	}

	service := &JWTService{}
	assert.Error(suite.T(), service.Init())
}

func (suite *JWTServiceTestSuite) TestGenerateTokenUniqueTokenIDs() {
	_, firstID, _, err := suite.service.GenerateToken("user-1", "admin", 3600)
	assert.NoError(suite.T(), err)

	_, secondID, _, err := suite.service.GenerateToken("user-1", "admin", 3600)
	assert.NoError(suite.T(), err)

	assert.NotEqual(suite.T(), firstID, secondID)
}
