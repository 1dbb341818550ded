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

// Package service provides the business logic for the sample data API.
//
// Read operations run through the response cache interceptor so repeated
// requests for the same data avoid hitting the backing store.
package service

import (
	"context"

	"github.com/openmesa/scaffold/internal/caching"
	"github.com/openmesa/scaffold/internal/sampledata/model"
	"github.com/openmesa/scaffold/internal/sampledata/store"
)

const (
	sampleListCacheKey = "samples:list"
	sampleCacheKeyBase = "samples:id:"
)

// SampleServiceInterface defines the interface for the sample data service.
type SampleServiceInterface interface {
	GetSampleList(ctx context.Context, bypassCache bool) (*model.SampleList, error)
	GetSample(ctx context.Context, id string, bypassCache bool) (*model.Sample, error)
	CreateSample(ctx context.Context, sample model.Sample) (*model.Sample, error)
}

// SampleService is the default implementation of SampleServiceInterface.
type SampleService struct {
	sampleStore   store.SampleStoreInterface
	interceptor   *caching.Interceptor
	cacheDisabled bool
}

// NewSampleService creates a new instance of SampleService.
func NewSampleService(sampleStore store.SampleStoreInterface, interceptor *caching.Interceptor,
	cacheDisabled bool) SampleServiceInterface {
	return &SampleService{
		sampleStore:   sampleStore,
		interceptor:   interceptor,
		cacheDisabled: cacheDisabled,
	}
}

// GetSampleList returns all sample records, served from cache when possible.
func (s *SampleService) GetSampleList(ctx context.Context, bypassCache bool) (*model.SampleList, error) {
	req := caching.CacheableRequest{
		CacheKey: sampleListCacheKey,
		Bypass:   bypassCache || s.cacheDisabled,
	}

	return caching.Execute(ctx, s.interceptor, req,
		func(ctx context.Context) (*model.SampleList, error) {
			samples, err := s.sampleStore.ListSamples(ctx)
			if err != nil {
				return nil, err
			}
			return &model.SampleList{
				TotalResults: len(samples),
				Samples:      samples,
			}, nil
		})
}

// GetSample returns the sample record for the given identifier, served from cache when possible.
func (s *SampleService) GetSample(ctx context.Context, id string, bypassCache bool) (*model.Sample, error) {
	req := caching.CacheableRequest{
		CacheKey: sampleCacheKeyBase + id,
		Bypass:   bypassCache || s.cacheDisabled,
	}

	return caching.Execute(ctx, s.interceptor, req,
		func(ctx context.Context) (*model.Sample, error) {
			sample, err := s.sampleStore.GetSample(ctx, id)
			if err != nil {
				return nil, err
			}
			return &sample, nil
		})
}

// CreateSample adds a new sample record. Writes never touch the response cache;
// stale list entries age out through their expirations.
func (s *SampleService) CreateSample(ctx context.Context, sample model.Sample) (*model.Sample, error) {
	created, err := s.sampleStore.CreateSample(ctx, sample)
	if err != nil {
		return nil, err
	}
	return &created, nil
}
