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

package service

import (
	"context"
	"testing"
	"time"

	"github.com/openmesa/scaffold/internal/caching"
	cachingstore "github.com/openmesa/scaffold/internal/caching/store"
	"github.com/openmesa/scaffold/internal/sampledata/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type mockSampleStore struct {
	mock.Mock
}

func (m *mockSampleStore) ListSamples(ctx context.Context) ([]model.Sample, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Sample), args.Error(1)
}

func (m *mockSampleStore) GetSample(ctx context.Context, id string) (model.Sample, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Sample), args.Error(1)
}

func (m *mockSampleStore) CreateSample(ctx context.Context, sample model.Sample) (model.Sample, error) {
	args := m.Called(ctx, sample)
	return args.Get(0).(model.Sample), args.Error(1)
}

type SampleServiceTestSuite struct {
	suite.Suite
	sampleStore *mockSampleStore
	service     SampleServiceInterface
}

func TestSampleServiceSuite(t *testing.T) {
	suite.Run(t, new(SampleServiceTestSuite))
}

func (suite *SampleServiceTestSuite) SetupTest() {
	suite.sampleStore = new(mockSampleStore)
	interceptor := caching.NewInterceptor(cachingstore.NewInMemoryPayloadStore(),
		caching.Expirations{Sliding: time.Minute, Absolute: time.Hour})
	suite.service = NewSampleService(suite.sampleStore, interceptor, false)
}

func (suite *SampleServiceTestSuite) TestGetSampleListCachesResult() {
	ctx := context.Background()
	samples := []model.Sample{
		{ID: "id-1", Name: "Aurora"},
		{ID: "id-2", Name: "Borealis"},
	}
	suite.sampleStore.On("ListSamples", ctx).Return(samples, nil).Once()

	first, err := suite.service.GetSampleList(ctx, false)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, first.TotalResults)

	// The second read is served from the cache even though the store mock
	// only allows a single call.
	second, err := suite.service.GetSampleList(ctx, false)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), first, second)

	suite.sampleStore.AssertExpectations(suite.T())
}

func (suite *SampleServiceTestSuite) TestGetSampleListBypassCache() {
	ctx := context.Background()
	samples := []model.Sample{{ID: "id-1", Name: "Aurora"}}
	suite.sampleStore.On("ListSamples", ctx).Return(samples, nil).Twice()

	_, err := suite.service.GetSampleList(ctx, true)
	assert.NoError(suite.T(), err)

	_, err = suite.service.GetSampleList(ctx, true)
	assert.NoError(suite.T(), err)

	suite.sampleStore.AssertExpectations(suite.T())
}

func (suite *SampleServiceTestSuite) TestGetSampleListStoreError() {
	ctx := context.Background()
	suite.sampleStore.On("ListSamples", ctx).Return(nil, assert.AnError)

	_, err := suite.service.GetSampleList(ctx, false)
	assert.Error(suite.T(), err)
}

func (suite *SampleServiceTestSuite) TestGetSampleCachesByID() {
	ctx := context.Background()
	sample := model.Sample{ID: "id-1", Name: "Aurora"}
	suite.sampleStore.On("GetSample", ctx, "id-1").Return(sample, nil).Once()

	first, err := suite.service.GetSample(ctx, "id-1", false)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Aurora", first.Name)

	second, err := suite.service.GetSample(ctx, "id-1", false)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), first, second)

	suite.sampleStore.AssertExpectations(suite.T())
}

func (suite *SampleServiceTestSuite) TestGetSampleNotFound() {
	ctx := context.Background()
	suite.sampleStore.On("GetSample", ctx, "missing").Return(model.Sample{}, model.ErrSampleNotFound)

	_, err := suite.service.GetSample(ctx, "missing", false)
	assert.ErrorIs(suite.T(), err, model.ErrSampleNotFound)
}

func (suite *SampleServiceTestSuite) TestCacheDisabledServiceAlwaysHitsStore() {
	ctx := context.Background()
	interceptor := caching.NewInterceptor(cachingstore.NewInMemoryPayloadStore(), caching.Expirations{})
	service := NewSampleService(suite.sampleStore, interceptor, true)

	samples := []model.Sample{{ID: "id-1", Name: "Aurora"}}
	suite.sampleStore.On("ListSamples", ctx).Return(samples, nil).Twice()

	_, err := service.GetSampleList(ctx, false)
	assert.NoError(suite.T(), err)

	_, err = service.GetSampleList(ctx, false)
	assert.NoError(suite.T(), err)

	suite.sampleStore.AssertExpectations(suite.T())
}

func (suite *SampleServiceTestSuite) TestCreateSample() {
	ctx := context.Background()
	input := model.Sample{Name: "Cascade", Category: "demo"}
	created := model.Sample{ID: "id-3", Name: "Cascade", Category: "demo"}
	suite.sampleStore.On("CreateSample", ctx, input).Return(created, nil)

	got, err := suite.service.CreateSample(ctx, input)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "id-3", got.ID)
}

func (suite *SampleServiceTestSuite) TestCreateSampleDoesNotInvalidateCachedList() {
	ctx := context.Background()
	samples := []model.Sample{{ID: "id-1", Name: "Aurora"}}
	suite.sampleStore.On("ListSamples", ctx).Return(samples, nil).Once()

	first, err := suite.service.GetSampleList(ctx, false)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, first.TotalResults)

	created := model.Sample{ID: "id-2", Name: "Borealis"}
	suite.sampleStore.On("CreateSample", ctx, mock.Anything).Return(created, nil)
	_, err = suite.service.CreateSample(ctx, model.Sample{Name: "Borealis"})
	assert.NoError(suite.T(), err)

	// The cached list stays as-is until its expirations lapse.
	second, err := suite.service.GetSampleList(ctx, false)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, second.TotalResults)

	suite.sampleStore.AssertExpectations(suite.T())
}
