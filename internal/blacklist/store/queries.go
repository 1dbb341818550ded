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

import "github.com/openmesa/scaffold/internal/system/database/model"

var (
	// QueryCreateTokenRecord is the query to create a new token record.
	QueryCreateTokenRecord = model.DBQuery{
		ID: "OMQ-TOKEN_BLK-01",
		Query: "INSERT INTO TOKEN_RECORD (TOKEN_ID, USER_ID, USERNAME, TOKEN_TYPE, STATUS, ISSUED_AT, EXPIRES_AT) " +
			"VALUES ($1, $2, $3, $4, $5, $6, $7)",
	}
	// QueryGetTokenRecordByTokenID is the query to get a token record by token ID.
	QueryGetTokenRecordByTokenID = model.DBQuery{
		ID: "OMQ-TOKEN_BLK-02",
		Query: "SELECT TOKEN_ID, USER_ID, USERNAME, TOKEN_TYPE, STATUS, ISSUED_AT, EXPIRES_AT, REVOKED_AT, " +
			"REVOCATION_REASON FROM TOKEN_RECORD WHERE TOKEN_ID = $1",
	}
	// QueryMarkTokenRecordRevoked is the query to mark an active token record as revoked.
	QueryMarkTokenRecordRevoked = model.DBQuery{
		ID: "OMQ-TOKEN_BLK-03",
		Query: "UPDATE TOKEN_RECORD SET STATUS = 'REVOKED', REVOKED_AT = $2, REVOCATION_REASON = $3 " +
			"WHERE TOKEN_ID = $1 AND STATUS = 'ACTIVE'",
	}
	// QueryGetExpiredTokenIDs is the query to get the identifiers of all naturally expired token records.
	QueryGetExpiredTokenIDs = model.DBQuery{
		ID:    "OMQ-TOKEN_BLK-04",
		Query: "SELECT TOKEN_ID FROM TOKEN_RECORD WHERE EXPIRES_AT < $1",
	}
	// QueryDeleteExpiredTokenRecords is the query to delete all naturally expired token records.
	QueryDeleteExpiredTokenRecords = model.DBQuery{
		ID:    "OMQ-TOKEN_BLK-05",
		Query: "DELETE FROM TOKEN_RECORD WHERE EXPIRES_AT < $1",
	}
	// QueryCountRevokedTokenRecords is the query to count revoked token records.
	QueryCountRevokedTokenRecords = model.DBQuery{
		ID:    "OMQ-TOKEN_BLK-06",
		Query: "SELECT COUNT(*) AS total FROM TOKEN_RECORD WHERE STATUS = 'REVOKED'",
	}
	// QueryCountExpiredTokenRecords is the query to count expired records pending cleanup.
	QueryCountExpiredTokenRecords = model.DBQuery{
		ID:    "OMQ-TOKEN_BLK-07",
		Query: "SELECT COUNT(*) AS total FROM TOKEN_RECORD WHERE EXPIRES_AT < $1",
	}
)
