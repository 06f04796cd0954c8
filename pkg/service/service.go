//    Copyright 2017-2022 Ewout Prangsma
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
package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/binkynet/radiod/pkg/binding"
	"github.com/binkynet/radiod/pkg/service/bridge"
)

var (
	maskAny = errors.WithStack
)

type Service interface {
	// Run the service until the given context is cancelled
	// or a fatal error occurs.
	Run(ctx context.Context) error
}

type Config struct {
	// Bindings of lines that trigger an action on a falling edge
	Inputs []binding.Binding
	// Bindings of lines that are set once at startup
	Outputs []binding.Binding
}

type Dependencies struct {
	Logger   zerolog.Logger
	Bridge   bridge.API
	Executor ActionExecutor
	// Called once all inputs are subscribed (optional)
	OnReady func()
}

type service struct {
	Config
	Dependencies
}

// NewService creates a Service instance and returns it.
func NewService(conf Config, deps Dependencies) (Service, error) {
	if deps.Bridge == nil {
		return nil, errors.New("Bridge is required")
	}
	if deps.Executor == nil {
		return nil, errors.New("Executor is required")
	}
	deps.Logger = deps.Logger.With().Str("component", "service").Logger()
	return &service{
		Config:       conf,
		Dependencies: deps,
	}, nil
}

// Run sets up all outputs, subscribes to all inputs and then
// dispatches edge events until the given context is canceled.
func (s *service) Run(ctx context.Context) error {
	log := s.Logger

	log.Info().Int("count", len(s.Outputs)).Msg("Setup outputs")
	if err := s.setupOutputs(log); err != nil {
		return err
	}

	log.Info().Int("count", len(s.Inputs)).Msg("Setup inputs")
	subs, err := s.subscribeInputs(log)
	if err != nil {
		return err
	}
	subscriptionsGauge.Set(float64(len(subs)))

	if s.OnReady != nil {
		s.OnReady()
	}

	log.Info().Msg("Start event handler")
	return Dispatch(ctx, log, subs, s.Executor)
}

// setupOutputs applies all output bindings once.
func (s *service) setupOutputs(log zerolog.Logger) error {
	for _, b := range s.Outputs {
		if !b.Kind.IsStaticOutput() {
			// Output bindings are meant for static levels, yet other
			// actions are executed right away, including power actions.
			log.Warn().
				Uint32("line", b.Line).
				Str("action", b.Name).
				Msg("Output binding is not a static output; executing it now")
		}
		if err := s.Executor.Execute(b); err != nil {
			return errors.Wrapf(err, "failed to setup output GPIO %d", b.Line)
		}
	}
	return nil
}

// subscribeInputs requests all input lines for edge events.
// The subscriptions have the same order as the input bindings.
func (s *service) subscribeInputs(log zerolog.Logger) ([]Subscription, error) {
	subs := make([]Subscription, 0, len(s.Inputs))
	for _, b := range s.Inputs {
		stream, err := s.Bridge.Input(b.Line, b.EventConsumer())
		if err != nil {
			return nil, errors.Wrapf(err, "failed to setup input GPIO %d", b.Line)
		}
		log.Debug().
			Uint32("line", b.Line).
			Str("action", b.Name).
			Msg("Subscribed to input")
		subs = append(subs, Subscription{Binding: b, Stream: stream})
	}
	return subs, nil
}
