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

// Package service provides health check-related business logic and operations.
package service

import (
	"context"
	"sync"
	"time"

	dbmodel "github.com/openmesa/scaffold/internal/system/database/model"
	"github.com/openmesa/scaffold/internal/system/database/provider"
	"github.com/openmesa/scaffold/internal/system/healthcheck/model"
	"github.com/openmesa/scaffold/internal/system/log"
	redisprovider "github.com/openmesa/scaffold/internal/system/redis"
)

const redisPingTimeout = 2 * time.Second

var (
	instance *HealthCheckService
	once     sync.Once
)

// HealthCheckServiceInterface defines the interface for the health check service.
type HealthCheckServiceInterface interface {
	CheckReadiness(ctx context.Context) model.ServerStatus
}

// HealthCheckService is the default implementation of the HealthCheckServiceInterface.
type HealthCheckService struct {
	DBProvider    provider.DBProviderInterface
	RedisProvider redisprovider.RedisProviderInterface
}

// GetHealthCheckService returns a singleton instance of HealthCheckService.
func GetHealthCheckService() HealthCheckServiceInterface {
	once.Do(func() {
		instance = &HealthCheckService{
			DBProvider:    provider.GetDBProvider(),
			RedisProvider: redisprovider.GetRedisProvider(),
		}
	})
	return instance
}

// CheckReadiness checks the readiness of the server and its dependencies.
func (hcs *HealthCheckService) CheckReadiness(ctx context.Context) model.ServerStatus {
	runtimeDBStatus := model.ServiceStatus{
		ServiceName: "RuntimeDB",
		Status:      hcs.checkDatabaseStatus(ctx, "runtime", queryRuntimeDBTable),
	}

	redisStatus := model.ServiceStatus{
		ServiceName: "Redis",
		Status:      hcs.checkRedisStatus(ctx),
	}

	status := model.StatusUp
	if runtimeDBStatus.Status == model.StatusDown || redisStatus.Status == model.StatusDown {
		status = model.StatusDown
	}
	return model.ServerStatus{
		Status: status,
		ServiceStatus: []model.ServiceStatus{
			runtimeDBStatus,
			redisStatus,
		},
	}
}

// checkDatabaseStatus checks the status of the specified database with the specified query.
func (hcs *HealthCheckService) checkDatabaseStatus(ctx context.Context, dbname string,
	query dbmodel.DBQuery) model.Status {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "HealthCheckService"))

	dbClient, err := hcs.DBProvider.GetDBClient(dbname)
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return model.StatusDown
	}

	if _, err := dbClient.Query(ctx, query); err != nil {
		logger.Error("Failed to execute query", log.Error(err))
		return model.StatusDown
	}
	return model.StatusUp
}

// checkRedisStatus pings the shared Redis instance.
func (hcs *HealthCheckService) checkRedisStatus(ctx context.Context) model.Status {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "HealthCheckService"))

	client, err := hcs.RedisProvider.GetClient()
	if err != nil {
		logger.Error("Failed to get redis client", log.Error(err))
		return model.StatusDown
	}

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Error("Redis ping failed", log.Error(err))
		return model.StatusDown
	}
	return model.StatusUp
}
