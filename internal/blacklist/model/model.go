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

// Package model defines the data structures for the token revocation registry.
package model

import (
	"errors"
	"time"
)

// TokenType defines the type of an issued token.
type TokenType string

const (
	// TokenTypeAccess represents an access token.
	TokenTypeAccess TokenType = "access"
	// TokenTypeRefresh represents a refresh token.
	TokenTypeRefresh TokenType = "refresh"
)

// TokenStatus defines the stored status of a token record.
// "Expired" is a derived condition evaluated against ExpiresAt, never a stored status.
type TokenStatus string

const (
	// TokenStatusActive represents a token that has not been revoked.
	TokenStatusActive TokenStatus = "ACTIVE"
	// TokenStatusRevoked represents a token that was invalidated before its natural expiry.
	TokenStatusRevoked TokenStatus = "REVOKED"
)

// ErrRecordNotFound is returned when no token record exists for a token identifier.
var ErrRecordNotFound = errors.New("token record not found")

// EstimatedRecordSizeBytes is a rough per-record memory estimate used for
// statistics. It is a documented approximation, not a measured value.
const EstimatedRecordSizeBytes = 256

// TokenRecord represents the authoritative record of an issued token.
// The durable store exclusively owns the record lifetime; the fast tier only
// ever holds copies.
type TokenRecord struct {
	TokenID          string      `json:"token_id"`
	UserID           string      `json:"user_id"`
	Username         string      `json:"username"`
	TokenType        TokenType   `json:"token_type"`
	Status           TokenStatus `json:"status"`
	IssuedAt         time.Time   `json:"issued_at"`
	ExpiresAt        time.Time   `json:"expires_at"`
	RevokedAt        *time.Time  `json:"revoked_at,omitempty"`
	RevocationReason *string     `json:"revocation_reason,omitempty"`
}

// IsExpired reports whether the token's natural expiry has passed at the given time.
func (r TokenRecord) IsExpired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// IsRevoked reports whether the record is revoked and not yet naturally expired.
func (r TokenRecord) IsRevoked(now time.Time) bool {
	return r.Status == TokenStatusRevoked && !r.IsExpired(now)
}

// BlacklistStatistics is a read-only rollup over the durable record store.
// It is recomputed on every request and never cached.
type BlacklistStatistics struct {
	TotalRevoked          int       `json:"total_revoked"`
	ExpiredPendingCleanup int       `json:"expired_pending_cleanup"`
	EstimatedMemoryBytes  int64     `json:"estimated_memory_bytes"`
	CacheHitRatePercent   *float64  `json:"cache_hit_rate_percent,omitempty"`
	LastUpdated           time.Time `json:"last_updated"`
}
