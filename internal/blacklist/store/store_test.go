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

package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/openmesa/scaffold/internal/blacklist/model"
	"github.com/openmesa/scaffold/internal/system/database/client"
	dbmodel "github.com/openmesa/scaffold/internal/system/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// mockDBProvider returns a fixed database client for every database name.
type mockDBProvider struct {
	client client.DBClientInterface
	err    error
}

func (m *mockDBProvider) GetDBClient(dbName string) (client.DBClientInterface, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.client, nil
}

type TokenStoreTestSuite struct {
	suite.Suite
	mockDB     *sql.DB
	mock       sqlmock.Sqlmock
	tokenStore TokenStoreInterface
}

func TestTokenStoreSuite(t *testing.T) {
	suite.Run(t, new(TokenStoreTestSuite))
}

func (suite *TokenStoreTestSuite) SetupTest() {
	var err error
	suite.mockDB, suite.mock, err = sqlmock.New()
	if err != nil {
		suite.T().Fatalf("Failed to create mock database: %v", err)
	}

	dbClient := client.NewDBClient(dbmodel.NewDB(suite.mockDB), "mock")
	suite.tokenStore = NewTokenStore(&mockDBProvider{client: dbClient})
}

func (suite *TokenStoreTestSuite) TearDownTest() {
	if suite.mock != nil {
		if err := suite.mock.ExpectationsWereMet(); err != nil {
			suite.T().Fatalf("There were unfulfilled expectations: %v", err)
		}
	}
}

func (suite *TokenStoreTestSuite) TestCreateTokenRecord() {
	now := time.Now()
	record := model.TokenRecord{
		TokenID:   "token-1",
		UserID:    "user-1",
		Username:  "admin",
		TokenType: model.TokenTypeAccess,
		Status:    model.TokenStatusActive,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}

	suite.mock.ExpectExec(regexp.QuoteMeta(QueryCreateTokenRecord.Query)).
		WithArgs("token-1", "user-1", "admin", "access", "ACTIVE", now.Unix(), now.Add(time.Hour).Unix()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := suite.tokenStore.CreateTokenRecord(context.Background(), record)

	assert.NoError(suite.T(), err)
}

func (suite *TokenStoreTestSuite) TestGetTokenRecordFound() {
	now := time.Now().Truncate(time.Second)

	rows := sqlmock.NewRows([]string{
		"TOKEN_ID", "USER_ID", "USERNAME", "TOKEN_TYPE", "STATUS",
		"ISSUED_AT", "EXPIRES_AT", "REVOKED_AT", "REVOCATION_REASON",
	}).AddRow("token-1", "user-1", "admin", "access", "ACTIVE",
		now.Unix(), now.Add(time.Hour).Unix(), nil, nil)

	suite.mock.ExpectQuery(regexp.QuoteMeta(QueryGetTokenRecordByTokenID.Query)).
		WithArgs("token-1").
		WillReturnRows(rows)

	record, err := suite.tokenStore.GetTokenRecord(context.Background(), "token-1")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "token-1", record.TokenID)
	assert.Equal(suite.T(), model.TokenStatusActive, record.Status)
	assert.Equal(suite.T(), now.Unix(), record.IssuedAt.Unix())
	assert.Nil(suite.T(), record.RevokedAt)
	assert.Nil(suite.T(), record.RevocationReason)
}

func (suite *TokenStoreTestSuite) TestGetTokenRecordRevoked() {
	now := time.Now().Truncate(time.Second)

	rows := sqlmock.NewRows([]string{
		"TOKEN_ID", "USER_ID", "USERNAME", "TOKEN_TYPE", "STATUS",
		"ISSUED_AT", "EXPIRES_AT", "REVOKED_AT", "REVOCATION_REASON",
	}).AddRow("token-2", "user-1", "admin", "refresh", "REVOKED",
		now.Unix(), now.Add(time.Hour).Unix(), now.Unix(), "logout")

	suite.mock.ExpectQuery(regexp.QuoteMeta(QueryGetTokenRecordByTokenID.Query)).
		WithArgs("token-2").
		WillReturnRows(rows)

	record, err := suite.tokenStore.GetTokenRecord(context.Background(), "token-2")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), model.TokenStatusRevoked, record.Status)
	if assert.NotNil(suite.T(), record.RevokedAt) {
		assert.Equal(suite.T(), now.Unix(), record.RevokedAt.Unix())
	}
	if assert.NotNil(suite.T(), record.RevocationReason) {
		assert.Equal(suite.T(), "logout", *record.RevocationReason)
	}
}

func (suite *TokenStoreTestSuite) TestGetTokenRecordNotFound() {
	rows := sqlmock.NewRows([]string{
		"TOKEN_ID", "USER_ID", "USERNAME", "TOKEN_TYPE", "STATUS",
		"ISSUED_AT", "EXPIRES_AT", "REVOKED_AT", "REVOCATION_REASON",
	})

	suite.mock.ExpectQuery(regexp.QuoteMeta(QueryGetTokenRecordByTokenID.Query)).
		WithArgs("missing").
		WillReturnRows(rows)

	_, err := suite.tokenStore.GetTokenRecord(context.Background(), "missing")

	assert.ErrorIs(suite.T(), err, model.ErrRecordNotFound)
}

func (suite *TokenStoreTestSuite) TestMarkRevoked() {
	revokedAt := time.Now()

	suite.mock.ExpectExec(regexp.QuoteMeta(QueryMarkTokenRecordRevoked.Query)).
		WithArgs("token-1", revokedAt.Unix(), "logout").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := suite.tokenStore.MarkRevoked(context.Background(), "token-1", "logout", revokedAt)

	assert.NoError(suite.T(), err)
}

func (suite *TokenStoreTestSuite) TestMarkRevokedNoActiveRecord() {
	revokedAt := time.Now()

	suite.mock.ExpectExec(regexp.QuoteMeta(QueryMarkTokenRecordRevoked.Query)).
		WithArgs("token-1", revokedAt.Unix(), "logout").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := suite.tokenStore.MarkRevoked(context.Background(), "token-1", "logout", revokedAt)

	assert.ErrorIs(suite.T(), err, model.ErrRecordNotFound)
}

func (suite *TokenStoreTestSuite) TestGetExpiredTokenIDs() {
	now := time.Now()

	rows := sqlmock.NewRows([]string{"TOKEN_ID"}).
		AddRow("token-1").
		AddRow("token-2")

	suite.mock.ExpectQuery(regexp.QuoteMeta(QueryGetExpiredTokenIDs.Query)).
		WithArgs(now.Unix()).
		WillReturnRows(rows)

	tokenIDs, err := suite.tokenStore.GetExpiredTokenIDs(context.Background(), now)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"token-1", "token-2"}, tokenIDs)
}

func (suite *TokenStoreTestSuite) TestDeleteExpired() {
	now := time.Now()

	suite.mock.ExpectExec(regexp.QuoteMeta(QueryDeleteExpiredTokenRecords.Query)).
		WithArgs(now.Unix()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	removed, err := suite.tokenStore.DeleteExpired(context.Background(), now)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), removed)
}

func (suite *TokenStoreTestSuite) TestCountRevoked() {
	rows := sqlmock.NewRows([]string{"total"}).AddRow(int64(7))

	suite.mock.ExpectQuery(regexp.QuoteMeta(QueryCountRevokedTokenRecords.Query)).
		WillReturnRows(rows)

	total, err := suite.tokenStore.CountRevoked(context.Background())

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 7, total)
}

func (suite *TokenStoreTestSuite) TestCountExpired() {
	now := time.Now()
	rows := sqlmock.NewRows([]string{"total"}).AddRow(int64(2))

	suite.mock.ExpectQuery(regexp.QuoteMeta(QueryCountExpiredTokenRecords.Query)).
		WithArgs(now.Unix()).
		WillReturnRows(rows)

	total, err := suite.tokenStore.CountExpired(context.Background(), now)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, total)
}
