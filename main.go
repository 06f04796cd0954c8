//    Copyright 2017 Ewout Prangsma
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package main

import (
	"context"
	"fmt"
	"os"

	terminate "github.com/pulcy/go-terminate"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/binkynet/radiod/pkg/config"
	"github.com/binkynet/radiod/pkg/environment"
	"github.com/binkynet/radiod/pkg/logging"
	"github.com/binkynet/radiod/pkg/server"
	"github.com/binkynet/radiod/pkg/service"
	"github.com/binkynet/radiod/pkg/service/bridge"
)

const (
	projectName     = "radiod"
	defaultLogFile  = "/var/log/radiod.log"
	defaultHostname = "0.0.0.0"
)

var (
	projectVersion = "dev"
	projectBuild   = "dev"
)

func main() {
	var configPath string
	var logFile string
	var bridgeType string
	var metricsHost string
	var metricsPort int
	var showVersion bool

	pflag.StringVarP(&configPath, "config", "c", config.DefaultPath, "Path of the configuration file")
	pflag.StringVar(&logFile, "log-file", defaultLogFile, "Path of the log file")
	pflag.StringVarP(&bridgeType, "bridge", "b", "cdev", "Type of bridge to use (cdev|virtual)")
	pflag.StringVar(&metricsHost, "metrics-host", defaultHostname, "Host address the metrics server will listen on")
	pflag.IntVar(&metricsPort, "metrics-port", 0, "Port the metrics server will listen on (0 disables it)")
	pflag.BoolVar(&showVersion, "version", false, "Show version and exit")
	pflag.Parse()

	if showVersion {
		fmt.Printf("%s %s (build %s)\n", projectName, projectVersion, projectBuild)
		return
	}

	// Load configuration, before logging is configured
	cfg, created, err := config.Load(afero.NewOsFs(), configPath, logging.NewConsoleLogger())
	if err != nil {
		Exitf("Failed to load configuration: %v\n", err)
	}

	logger, err := logging.Init(cfg.LogLevel, logFile)
	if err != nil {
		Exitf("Failed to initialize logging: %v\n", err)
	}
	logger.Info().
		Str("version", projectVersion).
		Str("build", projectBuild).
		Str("kernel", environment.KernelRelease()).
		Msgf("Starting %s", projectName)
	if created {
		logger.Info().Str("path", configPath).Msg("Using default configuration")
	}
	sanitized := cfg.Sanitize()
	logger.Debug().
		Interface("input_binding", sanitized.InputBinding).
		Interface("output_binding", sanitized.OutputBinding).
		Msg("Configured bindings")

	inputs, outputs, err := cfg.Bindings()
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	logger.Info().Str("chip", cfg.MasterChip).Str("bridge", bridgeType).Msg("Using GPIO chip")
	br, err := newBridge(bridgeType, cfg.MasterChip, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize bridge")
	}
	defer br.Close()

	svc, err := service.NewService(service.Config{
		Inputs:  inputs,
		Outputs: outputs,
	}, service.Dependencies{
		Logger:   logger,
		Bridge:   br,
		Executor: service.NewExecutor(logger, br, environment.NewLogin1PowerManager()),
		OnReady:  func() { environment.NotifyReady(logger) },
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize service")
	}

	// Prepare to shutdown in a controlled manor
	ctx, cancel := context.WithCancel(context.Background())
	t := terminate.NewTerminator(func(template string, args ...interface{}) {
		logger.Info().Msgf(template, args...)
	}, cancel)
	go t.ListenSignals()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return svc.Run(ctx) })
	if metricsPort != 0 {
		srv := server.New(server.Config{
			Host:     metricsHost,
			HTTPPort: metricsPort,
		}, logger)
		g.Go(func() error { return srv.Run(ctx) })
	}
	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("Service run failed")
	}
}

// newBridge creates the bridge of given type.
func newBridge(bridgeType, chip string, log zerolog.Logger) (bridge.API, error) {
	switch bridgeType {
	case "cdev":
		return bridge.NewCdevBridge(chip, log)
	case "virtual":
		return bridge.NewVirtualBridge(log), nil
	default:
		return nil, fmt.Errorf("unknown bridge type '%s' (cdev|virtual)", bridgeType)
	}
}

// Print the given error message and exit with code 1
func Exitf(message string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, message, args...)
	os.Exit(1)
}
