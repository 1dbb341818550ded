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

// Package store provides the implementation for token record persistence operations.
//
// Timestamps are persisted as Unix seconds so the same queries work across the
// supported database drivers.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/openmesa/scaffold/internal/blacklist/model"
	dbmodel "github.com/openmesa/scaffold/internal/system/database/model"
	"github.com/openmesa/scaffold/internal/system/database/provider"
)

const runtimeDBName = "runtime"

// TokenStoreInterface defines the durable store contract for token records.
type TokenStoreInterface interface {
	CreateTokenRecord(ctx context.Context, record model.TokenRecord) error
	GetTokenRecord(ctx context.Context, tokenID string) (model.TokenRecord, error)
	MarkRevoked(ctx context.Context, tokenID, reason string, revokedAt time.Time) error
	GetExpiredTokenIDs(ctx context.Context, now time.Time) ([]string, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	CountRevoked(ctx context.Context) (int, error)
	CountExpired(ctx context.Context, now time.Time) (int, error)
}

// TokenStore is the default implementation of TokenStoreInterface backed by the runtime database.
type TokenStore struct {
	DBProvider provider.DBProviderInterface
}

// NewTokenStore creates a new instance of TokenStore.
func NewTokenStore(dbProvider provider.DBProviderInterface) TokenStoreInterface {
	return &TokenStore{
		DBProvider: dbProvider,
	}
}

// CreateTokenRecord persists a new token record.
func (s *TokenStore) CreateTokenRecord(ctx context.Context, record model.TokenRecord) error {
	dbClient, err := s.DBProvider.GetDBClient(runtimeDBName)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	_, err = dbClient.Execute(
		ctx,
		QueryCreateTokenRecord,
		record.TokenID,
		record.UserID,
		record.Username,
		string(record.TokenType),
		string(record.Status),
		record.IssuedAt.Unix(),
		record.ExpiresAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

// GetTokenRecord retrieves a token record by its token identifier.
func (s *TokenStore) GetTokenRecord(ctx context.Context, tokenID string) (model.TokenRecord, error) {
	dbClient, err := s.DBProvider.GetDBClient(runtimeDBName)
	if err != nil {
		return model.TokenRecord{}, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(ctx, QueryGetTokenRecordByTokenID, tokenID)
	if err != nil {
		return model.TokenRecord{}, fmt.Errorf("failed to execute query: %w", err)
	}

	if len(results) == 0 {
		return model.TokenRecord{}, model.ErrRecordNotFound
	}

	if len(results) != 1 {
		return model.TokenRecord{}, fmt.Errorf("unexpected number of results: %d", len(results))
	}

	record, err := buildTokenRecordFromResultRow(results[0])
	if err != nil {
		return model.TokenRecord{}, fmt.Errorf("failed to build token record from result row: %w", err)
	}
	return record, nil
}

// MarkRevoked marks an active token record as revoked. Records that are
// already revoked are left untouched, keeping the first revocation metadata.
func (s *TokenStore) MarkRevoked(ctx context.Context, tokenID, reason string, revokedAt time.Time) error {
	dbClient, err := s.DBProvider.GetDBClient(runtimeDBName)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	rowsAffected, err := dbClient.Execute(ctx, QueryMarkTokenRecordRevoked, tokenID, revokedAt.Unix(), reason)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	if rowsAffected == 0 {
		return model.ErrRecordNotFound
	}

	return nil
}

// GetExpiredTokenIDs returns the identifiers of all records whose natural expiry has passed.
func (s *TokenStore) GetExpiredTokenIDs(ctx context.Context, now time.Time) ([]string, error) {
	dbClient, err := s.DBProvider.GetDBClient(runtimeDBName)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(ctx, QueryGetExpiredTokenIDs, now.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	tokenIDs := make([]string, 0, len(results))
	for _, row := range results {
		tokenID, ok := row["token_id"].(string)
		if !ok {
			return nil, fmt.Errorf("unexpected type for token_id: %T", row["token_id"])
		}
		tokenIDs = append(tokenIDs, tokenID)
	}

	return tokenIDs, nil
}

// DeleteExpired deletes all records whose natural expiry has passed as a single batch.
func (s *TokenStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	dbClient, err := s.DBProvider.GetDBClient(runtimeDBName)
	if err != nil {
		return 0, fmt.Errorf("failed to get database client: %w", err)
	}

	rowsAffected, err := dbClient.Execute(ctx, QueryDeleteExpiredTokenRecords, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}

	return rowsAffected, nil
}

// CountRevoked returns the total count of revoked token records.
func (s *TokenStore) CountRevoked(ctx context.Context) (int, error) {
	return s.count(ctx, QueryCountRevokedTokenRecords)
}

// CountExpired returns the count of expired records pending cleanup.
func (s *TokenStore) CountExpired(ctx context.Context, now time.Time) (int, error) {
	return s.count(ctx, QueryCountExpiredTokenRecords, now.Unix())
}

// count executes a counting query and returns the total.
func (s *TokenStore) count(ctx context.Context, query dbmodel.DBQuery, args ...interface{}) (int, error) {
	dbClient, err := s.DBProvider.GetDBClient(runtimeDBName)
	if err != nil {
		return 0, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute count query: %w", err)
	}

	var total int
	if len(results) > 0 {
		if count, ok := results[0]["total"].(int64); ok {
			total = int(count)
		} else {
			return 0, fmt.Errorf("unexpected type for total: %T", results[0]["total"])
		}
	}

	return total, nil
}

// buildTokenRecordFromResultRow constructs a token record from a database result row.
func buildTokenRecordFromResultRow(row map[string]interface{}) (model.TokenRecord, error) {
	tokenID, ok := row["token_id"].(string)
	if !ok {
		return model.TokenRecord{}, fmt.Errorf("unexpected type for token_id: %T", row["token_id"])
	}
	userID, ok := row["user_id"].(string)
	if !ok {
		return model.TokenRecord{}, fmt.Errorf("unexpected type for user_id: %T", row["user_id"])
	}
	username, ok := row["username"].(string)
	if !ok {
		return model.TokenRecord{}, fmt.Errorf("unexpected type for username: %T", row["username"])
	}
	tokenType, ok := row["token_type"].(string)
	if !ok {
		return model.TokenRecord{}, fmt.Errorf("unexpected type for token_type: %T", row["token_type"])
	}
	status, ok := row["status"].(string)
	if !ok {
		return model.TokenRecord{}, fmt.Errorf("unexpected type for status: %T", row["status"])
	}

	issuedAt, err := unixFromRow(row, "issued_at")
	if err != nil {
		return model.TokenRecord{}, err
	}
	expiresAt, err := unixFromRow(row, "expires_at")
	if err != nil {
		return model.TokenRecord{}, err
	}

	record := model.TokenRecord{
		TokenID:   tokenID,
		UserID:    userID,
		Username:  username,
		TokenType: model.TokenType(tokenType),
		Status:    model.TokenStatus(status),
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}

	if row["revoked_at"] != nil {
		revokedAt, err := unixFromRow(row, "revoked_at")
		if err != nil {
			return model.TokenRecord{}, err
		}
		record.RevokedAt = &revokedAt
	}
	if reason, ok := row["revocation_reason"].(string); ok {
		record.RevocationReason = &reason
	}

	return record, nil
}

// unixFromRow reads a Unix-seconds timestamp column from a result row.
func unixFromRow(row map[string]interface{}, column string) (time.Time, error) {
	value, ok := row[column].(int64)
	if !ok {
		return time.Time{}, fmt.Errorf("unexpected type for %s: %T", column, row[column])
	}
	return time.Unix(value, 0), nil
}
