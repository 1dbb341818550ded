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

package caching

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/openmesa/scaffold/internal/caching/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type testResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type InterceptorTestSuite struct {
	suite.Suite
	redisServer *miniredis.Miniredis
	client      *redis.Client
	interceptor *Interceptor
	opCalls     int
}

func TestInterceptorSuite(t *testing.T) {
	suite.Run(t, new(InterceptorTestSuite))
}

func (suite *InterceptorTestSuite) SetupTest() {
	var err error
	suite.redisServer, err = miniredis.Run()
	if err != nil {
		suite.T().Fatalf("Failed to start miniredis: %v", err)
	}

	suite.client = redis.NewClient(&redis.Options{Addr: suite.redisServer.Addr()})
	suite.interceptor = NewInterceptor(store.NewRedisPayloadStore(suite.client), Expirations{})
	suite.opCalls = 0
}

func (suite *InterceptorTestSuite) TearDownTest() {
	if suite.client != nil {
		_ = suite.client.Close()
	}
	if suite.redisServer != nil {
		suite.redisServer.Close()
	}
}

func (suite *InterceptorTestSuite) op(result *testResponse, err error) func(ctx context.Context) (*testResponse, error) {
	return func(ctx context.Context) (*testResponse, error) {
		suite.opCalls++
		return result, err
	}
}

func (suite *InterceptorTestSuite) TestMissThenHit() {
	ctx := context.Background()
	req := CacheableRequest{CacheKey: "key-1"}
	want := &testResponse{Name: "Aurora", Count: 1}

	got, err := Execute(ctx, suite.interceptor, req, suite.op(want, nil))
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), want, got)
	assert.Equal(suite.T(), 1, suite.opCalls)

	// The second call is served from the cache without re-running the operation.
	got, err = Execute(ctx, suite.interceptor, req, suite.op(&testResponse{Name: "changed"}, nil))
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), want, got)
	assert.Equal(suite.T(), 1, suite.opCalls)
}

func (suite *InterceptorTestSuite) TestBypassSkipsCache() {
	ctx := context.Background()
	req := CacheableRequest{CacheKey: "key-1", Bypass: true}
	want := &testResponse{Name: "Aurora"}

	_, err := Execute(ctx, suite.interceptor, req, suite.op(want, nil))
	assert.NoError(suite.T(), err)

	_, err = Execute(ctx, suite.interceptor, req, suite.op(want, nil))
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, suite.opCalls)

	// Nothing was written to the store.
	assert.Empty(suite.T(), suite.redisServer.Keys())
}

func (suite *InterceptorTestSuite) TestEmptyKeyExecutesDirectly() {
	ctx := context.Background()
	req := CacheableRequest{CacheKey: ""}
	want := &testResponse{Name: "Aurora"}

	got, err := Execute(ctx, suite.interceptor, req, suite.op(want, nil))
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), want, got)
	assert.Empty(suite.T(), suite.redisServer.Keys())
}

func (suite *InterceptorTestSuite) TestOperationErrorIsNotCached() {
	ctx := context.Background()
	req := CacheableRequest{CacheKey: "key-1"}
	opErr := errors.New("backend unavailable")

	_, err := Execute(ctx, suite.interceptor, req, suite.op(nil, opErr))
	assert.ErrorIs(suite.T(), err, opErr)
	assert.Empty(suite.T(), suite.redisServer.Keys())
}

func (suite *InterceptorTestSuite) TestEmptyResultIsNotCached() {
	ctx := context.Background()
	req := CacheableRequest{CacheKey: "key-1"}

	got, err := Execute(ctx, suite.interceptor, req, suite.op(nil, nil))
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), got)
	assert.Empty(suite.T(), suite.redisServer.Keys())
}

func (suite *InterceptorTestSuite) TestUndecodablePayloadIsTreatedAsMiss() {
	ctx := context.Background()
	req := CacheableRequest{CacheKey: "key-1"}
	want := &testResponse{Name: "Aurora"}

	// Seed a hit whose payload does not decode into the expected shape.
	payloadStore := store.NewRedisPayloadStore(suite.client)
	err := payloadStore.Set(ctx, "key-1", []byte(`[1,2,3]`), time.Minute, time.Hour)
	assert.NoError(suite.T(), err)

	got, err := Execute(ctx, suite.interceptor, req, suite.op(want, nil))
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), want, got)
	assert.Equal(suite.T(), 1, suite.opCalls)
}

func (suite *InterceptorTestSuite) TestStoreOutageDegradesToOperation() {
	ctx := context.Background()
	req := CacheableRequest{CacheKey: "key-1"}
	want := &testResponse{Name: "Aurora"}

	suite.redisServer.Close()

	got, err := Execute(ctx, suite.interceptor, req, suite.op(want, nil))
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), want, got)
	assert.Equal(suite.T(), 1, suite.opCalls)
}

func (suite *InterceptorTestSuite) TestSliceResults() {
	ctx := context.Background()
	req := CacheableRequest{CacheKey: "list-key"}
	want := []testResponse{{Name: "Aurora"}, {Name: "Borealis"}}

	calls := 0
	op := func(ctx context.Context) ([]testResponse, error) {
		calls++
		return want, nil
	}

	got, err := Execute(ctx, suite.interceptor, req, op)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), want, got)

	got, err = Execute(ctx, suite.interceptor, req, op)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), want, got)
	assert.Equal(suite.T(), 1, calls)
}

func TestInterceptorWithInMemoryStore(t *testing.T) {
	ctx := context.Background()
	interceptor := NewInterceptor(store.NewInMemoryPayloadStore(),
		Expirations{Sliding: time.Minute, Absolute: time.Hour})

	calls := 0
	op := func(ctx context.Context) (*testResponse, error) {
		calls++
		return &testResponse{Name: "Aurora", Count: calls}, nil
	}

	req := CacheableRequest{CacheKey: "key-1"}

	first, err := Execute(ctx, interceptor, req, op)
	assert.NoError(t, err)
	assert.Equal(t, 1, first.Count)

	second, err := Execute(ctx, interceptor, req, op)
	assert.NoError(t, err)
	assert.Equal(t, 1, second.Count)
	assert.Equal(t, 1, calls)
}

func TestInterceptorDefaultExpirations(t *testing.T) {
	interceptor := NewInterceptor(store.NewInMemoryPayloadStore(), Expirations{})

	assert.Equal(t, DefaultSlidingExpiry, interceptor.defaults.Sliding)
	assert.Equal(t, DefaultAbsoluteExpiry, interceptor.defaults.Absolute)
}
