// Copyright 2023 Ewout Prangsma
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Author Ewout Prangsma
//

package server

import (
	"context"
	"net"
	"net/http"
	"net/http/pprof"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Config for the HTTP server.
type Config struct {
	// Host interface to listen on
	Host string
	// Port to listen on for HTTP requests
	HTTPPort int
}

// Server runs the HTTP server that exposes metrics.
type Server struct {
	Config
	log zerolog.Logger
}

// New configures a new Server.
func New(cfg Config, log zerolog.Logger) *Server {
	return &Server{
		Config: cfg,
		log:    log.With().Str("component", "server").Logger(),
	}
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	httpRouter := echo.New()
	httpRouter.HideBanner = true
	httpRouter.HidePort = true
	httpRouter.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	httpRouter.GET("/health", echo.WrapHandler(http.HandlerFunc(healthHandler)))
	httpRouter.GET("/debug/pprof/*", echo.WrapHandler(http.HandlerFunc(pprof.Index)))
	return httpRouter
}

// Run the server until the given context is canceled.
func (s *Server) Run(ctx context.Context) error {
	log := s.log
	httpAddr := net.JoinHostPort(s.Host, strconv.Itoa(s.HTTPPort))
	httpLis, err := net.Listen("tcp", httpAddr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on address %s", httpAddr)
	}
	httpSrv := http.Server{
		Handler: s.Handler(),
	}

	log.Debug().Str("address", httpAddr).Msg("Serving HTTP")
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpSrv.Serve(httpLis)
	}()

	select {
	case <-ctx.Done():
		// Context canceled
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "failed to serve HTTP server")
		}
		return nil
	}

	log.Info().Msg("Closing server")
	httpSrv.Shutdown(context.Background())
	return nil
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK\n"))
}
