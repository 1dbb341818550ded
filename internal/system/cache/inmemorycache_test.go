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

package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type InMemoryCacheTestSuite struct {
	suite.Suite
	cache internalCacheInterface[string]
}

func TestInMemoryCacheSuite(t *testing.T) {
	suite.Run(t, new(InMemoryCacheTestSuite))
}

func (suite *InMemoryCacheTestSuite) SetupTest() {
	suite.cache = newInMemoryCache[string]("TestCache", true, 3, time.Hour)
}

func (suite *InMemoryCacheTestSuite) TestSetAndGet() {
	key := CacheKey{Key: "key-1"}

	err := suite.cache.Set(key, "value-1")
	assert.NoError(suite.T(), err)

	value, found := suite.cache.Get(key)
	assert.True(suite.T(), found)
	assert.Equal(suite.T(), "value-1", value)
}

func (suite *InMemoryCacheTestSuite) TestGetMissingKey() {
	_, found := suite.cache.Get(CacheKey{Key: "missing"})
	assert.False(suite.T(), found)
}

func (suite *InMemoryCacheTestSuite) TestSetWithTTLExpiry() {
	key := CacheKey{Key: "short-lived"}

	err := suite.cache.SetWithTTL(key, "value", 10*time.Millisecond)
	assert.NoError(suite.T(), err)

	_, found := suite.cache.Get(key)
	assert.True(suite.T(), found)

	time.Sleep(20 * time.Millisecond)

	_, found = suite.cache.Get(key)
	assert.False(suite.T(), found)
}

func (suite *InMemoryCacheTestSuite) TestSetWithTTLOverridesDefault() {
	shortKey := CacheKey{Key: "short"}
	longKey := CacheKey{Key: "long"}

	assert.NoError(suite.T(), suite.cache.SetWithTTL(shortKey, "short", 10*time.Millisecond))
	assert.NoError(suite.T(), suite.cache.SetWithTTL(longKey, "long", time.Hour))

	time.Sleep(20 * time.Millisecond)

	_, found := suite.cache.Get(shortKey)
	assert.False(suite.T(), found)

	value, found := suite.cache.Get(longKey)
	assert.True(suite.T(), found)
	assert.Equal(suite.T(), "long", value)
}

func (suite *InMemoryCacheTestSuite) TestUpdateExistingEntry() {
	key := CacheKey{Key: "key-1"}

	assert.NoError(suite.T(), suite.cache.Set(key, "first"))
	assert.NoError(suite.T(), suite.cache.Set(key, "second"))

	value, found := suite.cache.Get(key)
	assert.True(suite.T(), found)
	assert.Equal(suite.T(), "second", value)

	stats := suite.cache.GetStats()
	assert.Equal(suite.T(), 1, stats.Size)
}

func (suite *InMemoryCacheTestSuite) TestLRUEviction() {
	for i := 1; i <= 3; i++ {
		key := CacheKey{Key: fmt.Sprintf("key-%d", i)}
		assert.NoError(suite.T(), suite.cache.Set(key, "value"))
	}

	// Touch key-1 so key-2 becomes the least recently used.
	_, found := suite.cache.Get(CacheKey{Key: "key-1"})
	assert.True(suite.T(), found)

	assert.NoError(suite.T(), suite.cache.Set(CacheKey{Key: "key-4"}, "value"))

	_, found = suite.cache.Get(CacheKey{Key: "key-2"})
	assert.False(suite.T(), found)

	_, found = suite.cache.Get(CacheKey{Key: "key-1"})
	assert.True(suite.T(), found)

	stats := suite.cache.GetStats()
	assert.Equal(suite.T(), int64(1), stats.EvictCount)
	assert.Equal(suite.T(), 3, stats.Size)
}

func (suite *InMemoryCacheTestSuite) TestDelete() {
	key := CacheKey{Key: "key-1"}

	assert.NoError(suite.T(), suite.cache.Set(key, "value"))
	assert.NoError(suite.T(), suite.cache.Delete(key))

	_, found := suite.cache.Get(key)
	assert.False(suite.T(), found)
}

func (suite *InMemoryCacheTestSuite) TestClear() {
	assert.NoError(suite.T(), suite.cache.Set(CacheKey{Key: "key-1"}, "value"))
	assert.NoError(suite.T(), suite.cache.Set(CacheKey{Key: "key-2"}, "value"))

	assert.NoError(suite.T(), suite.cache.Clear())

	stats := suite.cache.GetStats()
	assert.Equal(suite.T(), 0, stats.Size)
	assert.Equal(suite.T(), int64(0), stats.HitCount)
}

func (suite *InMemoryCacheTestSuite) TestCleanupExpired() {
	assert.NoError(suite.T(), suite.cache.SetWithTTL(CacheKey{Key: "expired"}, "value", 10*time.Millisecond))
	assert.NoError(suite.T(), suite.cache.SetWithTTL(CacheKey{Key: "alive"}, "value", time.Hour))

	time.Sleep(20 * time.Millisecond)
	suite.cache.CleanupExpired()

	stats := suite.cache.GetStats()
	assert.Equal(suite.T(), 1, stats.Size)
}

func (suite *InMemoryCacheTestSuite) TestStatsHitRate() {
	key := CacheKey{Key: "key-1"}
	assert.NoError(suite.T(), suite.cache.Set(key, "value"))

	_, _ = suite.cache.Get(key)
	_, _ = suite.cache.Get(key)
	_, _ = suite.cache.Get(CacheKey{Key: "missing"})

	stats := suite.cache.GetStats()
	assert.Equal(suite.T(), int64(2), stats.HitCount)
	assert.Equal(suite.T(), int64(1), stats.MissCount)
	assert.InDelta(suite.T(), 2.0/3.0, stats.HitRate, 0.001)
}

func (suite *InMemoryCacheTestSuite) TestDisabledCache() {
	disabled := newInMemoryCache[string]("DisabledCache", false, 10, time.Hour)

	assert.NoError(suite.T(), disabled.Set(CacheKey{Key: "key"}, "value"))
	_, found := disabled.Get(CacheKey{Key: "key"})
	assert.False(suite.T(), found)

	stats := disabled.GetStats()
	assert.False(suite.T(), stats.Enabled)
}
