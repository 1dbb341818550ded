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

// Package service provides the token revocation registry.
//
// The registry answers whether a token has been invalidated before its natural
// expiry. The durable store is the single source of truth; the fast tier only
// holds snapshots with a bounded lifetime. Every fault path degrades to the
// safe default for its operation: the registry fails open rather than locking
// out traffic during an outage. Operators should be aware that a durable store
// outage can make previously revoked tokens transiently appear valid.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/openmesa/scaffold/internal/blacklist/model"
	"github.com/openmesa/scaffold/internal/blacklist/store"
	"github.com/openmesa/scaffold/internal/system/cache"
	"github.com/openmesa/scaffold/internal/system/jwt"
	"github.com/openmesa/scaffold/internal/system/log"
)

const loggerComponentName = "BlacklistService"

// DefaultFastTierBuffer is added on top of a token's remaining lifetime when a
// snapshot is placed in the fast tier, so an entry never outlives the token's
// natural expiry by more than this buffer.
const DefaultFastTierBuffer = time.Minute

// TokenRecordCacheName is the name of the fast-tier cache holding token record snapshots.
const TokenRecordCacheName = "TokenRecordCache"

// BlacklistServiceInterface defines the interface for the token revocation registry.
type BlacklistServiceInterface interface {
	Revoke(ctx context.Context, rawToken, reason string)
	IsRevoked(ctx context.Context, rawToken string) bool
	CleanupExpired(ctx context.Context) int
	GetStatistics(ctx context.Context) model.BlacklistStatistics
}

// BlacklistService is the default implementation of BlacklistServiceInterface.
type BlacklistService struct {
	tokenStore store.TokenStoreInterface
	codec      jwt.TokenCodecInterface
	fastTier   cache.CacheInterface[model.TokenRecord]
	buffer     time.Duration
}

// NewBlacklistService creates a new instance of BlacklistService.
// A non-positive buffer falls back to DefaultFastTierBuffer.
func NewBlacklistService(
	tokenStore store.TokenStoreInterface,
	codec jwt.TokenCodecInterface,
	fastTier cache.CacheInterface[model.TokenRecord],
	buffer time.Duration,
) BlacklistServiceInterface {
	if buffer <= 0 {
		buffer = DefaultFastTierBuffer
	}
	return &BlacklistService{
		tokenStore: tokenStore,
		codec:      codec,
		fastTier:   fastTier,
		buffer:     buffer,
	}
}

// Revoke invalidates the given token before its natural expiry.
//
// Revocation is idempotent: revoking an already revoked token is a no-op that
// keeps the metadata of the first successful call. Tokens without an
// extractable identifier cannot be indexed and are never revocable. All faults
// are logged and swallowed.
func (s *BlacklistService) Revoke(ctx context.Context, rawToken, reason string) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	tokenID, err := s.codec.ExtractTokenID(rawToken)
	if err != nil {
		logger.Warn("Token has no extractable identifier and cannot be revoked", log.Error(err))
		return
	}

	record, err := s.tokenStore.GetTokenRecord(ctx, tokenID)
	if err != nil {
		if errors.Is(err, model.ErrRecordNotFound) {
			logger.Warn("No token record found for revocation", log.String(log.LoggerKeyTokenID, tokenID))
		} else {
			logger.Error("Failed to look up token record for revocation",
				log.String(log.LoggerKeyTokenID, tokenID), log.Error(err))
		}
		return
	}

	now := time.Now()
	if record.IsExpired(now) {
		logger.Info("Token is already expired, skipping revocation",
			log.String(log.LoggerKeyTokenID, tokenID))
		return
	}
	if record.Status == model.TokenStatusRevoked {
		logger.Info("Token is already revoked", log.String(log.LoggerKeyTokenID, tokenID))
		return
	}

	if err := s.tokenStore.MarkRevoked(ctx, tokenID, reason, now); err != nil {
		logger.Error("Failed to persist token revocation",
			log.String(log.LoggerKeyTokenID, tokenID), log.Error(err))
		return
	}

	record.Status = model.TokenStatusRevoked
	record.RevokedAt = &now
	record.RevocationReason = &reason

	s.cacheSnapshot(record, now)

	logger.Info("Token revoked", log.String(log.LoggerKeyTokenID, tokenID),
		log.String(log.LoggerKeyUserID, record.UserID), log.String("reason", reason))
}

// IsRevoked reports whether the token is currently revoked.
//
// An unidentifiable token cannot be confirmed revoked and is reported as
// not-revoked, and any unexpected fault maps to false as well: the registry
// fails open.
func (s *BlacklistService) IsRevoked(ctx context.Context, rawToken string) bool {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	tokenID, err := s.codec.ExtractTokenID(rawToken)
	if err != nil {
		logger.Debug("Token has no extractable identifier, treating as not revoked")
		return false
	}

	now := time.Now()
	cacheKey := cache.CacheKey{Key: tokenID}

	if snapshot, found := s.fastTier.Get(cacheKey); found {
		if snapshot.IsRevoked(now) {
			return true
		}
		// Stale snapshot, or one that does not report as revoked: evict and
		// fall through to the durable store.
		if err := s.fastTier.Delete(cacheKey); err != nil {
			logger.Warn("Failed to evict stale fast tier entry",
				log.String(log.LoggerKeyTokenID, tokenID), log.Error(err))
		}
	}

	record, err := s.tokenStore.GetTokenRecord(ctx, tokenID)
	if err != nil {
		if errors.Is(err, model.ErrRecordNotFound) {
			logger.Debug("No token record found", log.String(log.LoggerKeyTokenID, tokenID))
		} else {
			logger.Error("Failed to look up token record, failing open",
				log.String(log.LoggerKeyTokenID, tokenID), log.Error(err))
		}
		return false
	}

	if record.IsRevoked(now) {
		s.cacheSnapshot(record, now)
		return true
	}

	return false
}

// CleanupExpired removes all naturally expired token records from the durable
// store and evicts any matching fast tier entries. It returns the number of
// records removed, or zero on any fault.
func (s *BlacklistService) CleanupExpired(ctx context.Context) int {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	now := time.Now()

	expiredIDs, err := s.tokenStore.GetExpiredTokenIDs(ctx, now)
	if err != nil {
		logger.Error("Failed to query expired token records", log.Error(err))
		return 0
	}
	if len(expiredIDs) == 0 {
		return 0
	}

	removed, err := s.tokenStore.DeleteExpired(ctx, now)
	if err != nil {
		logger.Error("Failed to delete expired token records", log.Error(err))
		return 0
	}

	for _, tokenID := range expiredIDs {
		if err := s.fastTier.Delete(cache.CacheKey{Key: tokenID}); err != nil {
			logger.Warn("Failed to evict fast tier entry during cleanup",
				log.String(log.LoggerKeyTokenID, tokenID), log.Error(err))
		}
	}

	logger.Info("Cleaned up expired token records", log.Int64("removed", removed))
	return int(removed)
}

// GetStatistics computes a fresh rollup over the durable record store.
// On any fault it returns a zeroed snapshot; statistics are observability,
// never a hard dependency.
func (s *BlacklistService) GetStatistics(ctx context.Context) model.BlacklistStatistics {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	now := time.Now()

	totalRevoked, err := s.tokenStore.CountRevoked(ctx)
	if err != nil {
		logger.Warn("Failed to count revoked token records", log.Error(err))
		return model.BlacklistStatistics{LastUpdated: now}
	}

	expiredPending, err := s.tokenStore.CountExpired(ctx, now)
	if err != nil {
		logger.Warn("Failed to count expired token records", log.Error(err))
		return model.BlacklistStatistics{LastUpdated: now}
	}

	stats := model.BlacklistStatistics{
		TotalRevoked:          totalRevoked,
		ExpiredPendingCleanup: expiredPending,
		EstimatedMemoryBytes:  int64(totalRevoked) * model.EstimatedRecordSizeBytes,
		LastUpdated:           now,
	}

	if cacheStats := s.fastTier.GetStats(); cacheStats.Enabled && cacheStats.HitCount+cacheStats.MissCount > 0 {
		hitRatePercent := cacheStats.HitRate * 100
		stats.CacheHitRatePercent = &hitRatePercent
	}

	return stats
}

// cacheSnapshot places a copy of the record in the fast tier with a lifetime
// bounded by the token's natural expiry plus the configured buffer. Once a
// token is naturally expired it needs no further blacklisting, so entries
// self-prune.
func (s *BlacklistService) cacheSnapshot(record model.TokenRecord, now time.Time) {
	ttl := record.ExpiresAt.Sub(now) + s.buffer
	if ttl <= 0 {
		return
	}

	if err := s.fastTier.SetWithTTL(cache.CacheKey{Key: record.TokenID}, record, ttl); err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Warn("Failed to cache token record snapshot",
				log.String(log.LoggerKeyTokenID, record.TokenID), log.Error(err))
	}
}
