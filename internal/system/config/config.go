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

// Package config provides structures and functions for loading and managing server configurations.
package config

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	yaml "gopkg.in/yaml.v3"

	"github.com/openmesa/scaffold/internal/system/log"
)

// ServerConfig holds the server configuration details.
type ServerConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
}

// DataSource holds the individual database connection details.
type DataSource struct {
	Type            string `yaml:"type"`
	Hostname        string `yaml:"hostname"`
	Port            int    `yaml:"port"`
	Name            string `yaml:"name"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	SSLMode         string `yaml:"sslmode"`
	Path            string `yaml:"path"`
	Options         string `yaml:"options"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
}

// DatabaseConfig holds the different database configuration details.
type DatabaseConfig struct {
	Runtime DataSource `yaml:"runtime"`
}

// RedisConfig holds the connection details for the shared Redis instance.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"`
}

// CacheProperty holds the configuration details for an individual cache.
type CacheProperty struct {
	Name           string `yaml:"name"`
	Disabled       bool   `yaml:"disabled"`
	Size           int    `yaml:"size"`
	TTL            int    `yaml:"ttl"`
	EvictionPolicy string `yaml:"eviction_policy"`
}

// CacheConfig holds the configuration details for the in-process cache tier.
type CacheConfig struct {
	Disabled       bool            `yaml:"disabled"`
	Type           string          `yaml:"type"`
	EvictionPolicy string          `yaml:"eviction_policy"`
	Properties     []CacheProperty `yaml:"properties"`
}

// ResponseCacheConfig holds the defaults for the response-caching interceptor.
// Zero values fall back to the documented defaults (30/60 minutes).
type ResponseCacheConfig struct {
	Disabled              bool `yaml:"disabled"`
	SlidingExpiryMinutes  int  `yaml:"sliding_expiry_minutes"`
	AbsoluteExpiryMinutes int  `yaml:"absolute_expiry_minutes"`
}

// BlacklistConfig holds the configuration details for the token revocation registry.
type BlacklistConfig struct {
	// FastTierBufferSeconds is added on top of a token's remaining lifetime
	// when a revocation snapshot is placed in the fast tier.
	FastTierBufferSeconds int `yaml:"fast_tier_buffer_seconds"`
}

// JWTConfig holds the JWT configuration details.
type JWTConfig struct {
	Issuer               string `yaml:"issuer"`
	ValidityPeriod       int64  `yaml:"validity_period"`
	RefreshTokenValidity int64  `yaml:"refresh_token_validity"`
	Secret               string `yaml:"secret" env:"JWT_SECRET"`
}

// DefaultUser holds the default user configuration details.
type DefaultUser struct {
	Username string `yaml:"username"`
	Password string `yaml:"password" env:"DEFAULT_USER_PASSWORD"`
}

// UserStore holds the user store configuration details.
type UserStore struct {
	DefaultUser DefaultUser `yaml:"default_user"`
}

// CORSConfig holds the allowed origins for cross-origin requests.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Config holds the complete configuration details of the server.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Redis         RedisConfig         `yaml:"redis"`
	Cache         CacheConfig         `yaml:"cache"`
	ResponseCache ResponseCacheConfig `yaml:"response_cache"`
	Blacklist     BlacklistConfig     `yaml:"blacklist"`
	JWT           JWTConfig           `yaml:"jwt"`
	UserStore     UserStore           `yaml:"user_store"`
	CORS          CORSConfig          `yaml:"cors"`
}

// LoadConfig loads the configurations from the specified YAML file and applies
// environment variable overrides on top of the file values.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if ferr := file.Close(); ferr != nil {
			log.GetLogger().Error("Failed to close config file", log.Error(ferr))
		}
	}()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
