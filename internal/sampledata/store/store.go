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

// Package store provides the in-memory backing store for the sample data API.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openmesa/scaffold/internal/sampledata/model"
)

// SampleStoreInterface defines the store contract for sample records.
type SampleStoreInterface interface {
	ListSamples(ctx context.Context) ([]model.Sample, error)
	GetSample(ctx context.Context, id string) (model.Sample, error)
	CreateSample(ctx context.Context, sample model.Sample) (model.Sample, error)
}

// SampleStore is an in-memory implementation of SampleStoreInterface seeded
// with demonstration data.
type SampleStore struct {
	mu      sync.RWMutex
	samples map[string]model.Sample
}

// NewSampleStore creates a new instance of SampleStore with seed data.
func NewSampleStore() SampleStoreInterface {
	store := &SampleStore{
		samples: make(map[string]model.Sample),
	}
	store.seed()
	return store
}

func (s *SampleStore) seed() {
	now := time.Now()
	seeds := []model.Sample{
		{Name: "Aurora", Description: "A sample record for the demo read API", Category: "demo"},
		{Name: "Borealis", Description: "Another sample record", Category: "demo"},
		{Name: "Cascade", Description: "A sample record in a different category", Category: "reference"},
	}
	for _, sample := range seeds {
		sample.ID = uuid.New().String()
		sample.CreatedAt = now
		s.samples[sample.ID] = sample
	}
}

// ListSamples returns all sample records ordered by name.
func (s *SampleStore) ListSamples(ctx context.Context) ([]model.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	samples := make([]model.Sample, 0, len(s.samples))
	for _, sample := range s.samples {
		samples = append(samples, sample)
	}
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].Name < samples[j].Name
	})
	return samples, nil
}

// GetSample returns the sample record for the given identifier.
func (s *SampleStore) GetSample(ctx context.Context, id string) (model.Sample, error) {
	if err := ctx.Err(); err != nil {
		return model.Sample{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sample, exists := s.samples[id]
	if !exists {
		return model.Sample{}, model.ErrSampleNotFound
	}
	return sample, nil
}

// CreateSample adds a new sample record and returns it with its generated identifier.
func (s *SampleStore) CreateSample(ctx context.Context, sample model.Sample) (model.Sample, error) {
	if err := ctx.Err(); err != nil {
		return model.Sample{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sample.ID = uuid.New().String()
	sample.CreatedAt = time.Now()
	s.samples[sample.ID] = sample
	return sample, nil
}
