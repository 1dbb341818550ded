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

// Package main is the entry point for starting the Scaffold server.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/openmesa/scaffold/internal/system/config"
	"github.com/openmesa/scaffold/internal/system/jwt"
	"github.com/openmesa/scaffold/internal/system/log"
	"github.com/openmesa/scaffold/internal/system/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := log.GetLogger()

	scaffoldHome := getScaffoldHome(logger)

	cfg := initScaffoldConfigurations(logger, scaffoldHome)
	if cfg == nil {
		logger.Fatal("Failed to initialize configurations")
	}

	mux, err := server.BuildMux()
	if err != nil {
		logger.Fatal("Failed to initialize multiplexer", log.Error(err))
	}

	startHTTPServer(logger, cfg, mux)
}

// getScaffoldHome retrieves and returns the Scaffold home directory.
func getScaffoldHome(logger *log.Logger) string {
	projectHome := ""
	projectHomeFlag := flag.String("scaffoldHome", "", "Path to Scaffold home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		logger.Info("Using scaffoldHome from command line argument",
			log.String("scaffoldHome", *projectHomeFlag))
		projectHome = *projectHomeFlag
	} else {
		// If no command line argument is provided, use the current working directory.
		dir, dirErr := os.Getwd()
		if dirErr != nil {
			logger.Fatal("Failed to get current working directory", log.Error(dirErr))
		}
		projectHome = dir
	}

	return projectHome
}

// initScaffoldConfigurations initializes the Scaffold configurations.
func initScaffoldConfigurations(logger *log.Logger, scaffoldHome string) *config.Config {
	configFilePath := path.Join(scaffoldHome, "repository/conf/deployment.yaml")
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		logger.Fatal("Failed to load configurations", log.Error(err))
	}

	if err := config.InitializeScaffoldRuntime(scaffoldHome, cfg); err != nil {
		logger.Fatal("Failed to initialize scaffold runtime", log.Error(err))
	}

	// Load the signing secret for issuing JWTs.
	jwtService := jwt.GetJWTService()
	if err := jwtService.Init(); err != nil {
		logger.Fatal("Failed to initialize JWT service", log.Error(err))
	}

	return cfg
}

// startHTTPServer starts the HTTP server and blocks until shutdown.
func startHTTPServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux) {
	httpServer := server.NewHTTPServer(cfg, mux)

	shutdownDone := make(chan struct{})
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown failed", log.Error(err))
		}
		close(shutdownDone)
	}()

	logger.Info("Scaffold server started (HTTP)...", log.String("address", httpServer.Addr))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to serve HTTP requests", log.Error(err))
	}
	<-shutdownDone
}
