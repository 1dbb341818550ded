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
	"net/http/httptest"
	"testing"

	"github.com/openmesa/scaffold/internal/system/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type CORSMiddlewareTestSuite struct {
	suite.Suite
}

func TestCORSMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(CORSMiddlewareTestSuite))
}

func (suite *CORSMiddlewareTestSuite) SetupTest() {
	mockConfig := &config.Config{
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"https://localhost:3000", "https://app.example.com"},
		},
	}
	config.ResetScaffoldRuntime()
	if err := config.InitializeScaffoldRuntime("/tmp/scaffold/test", mockConfig); err != nil {
		suite.T().Fatal("Failed to initialize ScaffoldRuntime:", err)
	}
}

func (suite *CORSMiddlewareTestSuite) TearDownTest() {
	config.ResetScaffoldRuntime()
}

func (suite *CORSMiddlewareTestSuite) serve(origin string, opts CORSOptions) *httptest.ResponseRecorder {
	pattern, handler := WithCORS("GET /samples", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, opts)
	assert.Equal(suite.T(), "GET /samples", pattern)

	req := httptest.NewRequest(http.MethodGet, "/samples", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}

	recorder := httptest.NewRecorder()
	handler(recorder, req)
	return recorder
}

func (suite *CORSMiddlewareTestSuite) TestAllowedOrigin() {
	opts := CORSOptions{
		AllowedMethods:   "GET, OPTIONS",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}

	recorder := suite.serve("https://localhost:3000", opts)

	assert.Equal(suite.T(), "https://localhost:3000",
		recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(suite.T(), "GET, OPTIONS", recorder.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(suite.T(), "Content-Type, Authorization",
		recorder.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(suite.T(), "true", recorder.Header().Get("Access-Control-Allow-Credentials"))
}

func (suite *CORSMiddlewareTestSuite) TestDisallowedOrigin() {
	recorder := suite.serve("https://evil.example.org", CORSOptions{AllowedMethods: "GET"})

	assert.Empty(suite.T(), recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(suite.T(), recorder.Header().Get("Access-Control-Allow-Methods"))
}

func (suite *CORSMiddlewareTestSuite) TestNoOriginHeader() {
	recorder := suite.serve("", CORSOptions{AllowedMethods: "GET"})

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
	assert.Empty(suite.T(), recorder.Header().Get("Access-Control-Allow-Origin"))
}

func (suite *CORSMiddlewareTestSuite) TestNoConfiguredOrigins() {
	config.ResetScaffoldRuntime()
	if err := config.InitializeScaffoldRuntime("/tmp/scaffold/test", &config.Config{}); err != nil {
		suite.T().Fatal("Failed to initialize ScaffoldRuntime:", err)
	}

	recorder := suite.serve("https://localhost:3000", CORSOptions{AllowedMethods: "GET"})

	assert.Empty(suite.T(), recorder.Header().Get("Access-Control-Allow-Origin"))
}

func (suite *CORSMiddlewareTestSuite) TestHandlerStillRuns() {
	recorder := suite.serve("https://app.example.com", CORSOptions{})

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
	assert.Equal(suite.T(), "https://app.example.com",
		recorder.Header().Get("Access-Control-Allow-Origin"))
}
