//    Copyright 2026 Ewout Prangsma
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
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/binkynet/radiod/pkg/binding"
	"github.com/binkynet/radiod/pkg/environment"
	"github.com/binkynet/radiod/pkg/service/bridge"
)

const (
	// DefaultGracePeriod is the time between syncing the filesystem
	// and calling the power manager.
	DefaultGracePeriod = time.Second * 2
)

// ActionExecutor performs the action of a binding.
type ActionExecutor interface {
	// Execute the action of the given binding.
	// Returns when the action has completed.
	Execute(b binding.Binding) error
}

// Executor performs the side effects of actions.
type Executor struct {
	log         zerolog.Logger
	bridge      bridge.API
	power       environment.PowerManager
	sync        func()
	sleep       func(time.Duration)
	gracePeriod time.Duration
}

var _ ActionExecutor = &Executor{}

// NewExecutor creates an Executor that drives lines through the given
// bridge and changes the power state through the given power manager.
func NewExecutor(log zerolog.Logger, br bridge.API, power environment.PowerManager) *Executor {
	return &Executor{
		log:         log.With().Str("component", "executor").Logger(),
		bridge:      br,
		power:       power,
		sync:        environment.Sync,
		sleep:       time.Sleep,
		gracePeriod: DefaultGracePeriod,
	}
}

// Execute the action of the given binding.
// Power actions block for the grace period before the power manager
// is called.
// Unrecognized actions are logged and otherwise ignored.
func (e *Executor) Execute(b binding.Binding) error {
	log := e.log.With().
		Uint32("line", b.Line).
		Str("action", b.Name).
		Logger()
	line := strconv.Itoa(int(b.Line))
	switch b.Kind {
	case binding.PowerOff, binding.Reboot, binding.Halt:
		actionsTotal.WithLabelValues(line, b.Kind.String()).Inc()
		if err := e.powerAction(log, b.Kind); err != nil {
			actionErrorsTotal.WithLabelValues(line, b.Kind.String()).Inc()
			return err
		}
	case binding.SetOutputHigh, binding.SetOutputLow:
		actionsTotal.WithLabelValues(line, b.Kind.String()).Inc()
		value := 0
		if b.Kind == binding.SetOutputHigh {
			value = 1
		}
		log.Info().Int("value", value).Msg("Setup GPIO output")
		if err := e.bridge.Output(b.Line, value, b.StaticConsumer()); err != nil {
			actionErrorsTotal.WithLabelValues(line, b.Kind.String()).Inc()
			return errors.Wrapf(err, "failed to set GPIO %d", b.Line)
		}
	case binding.Unrecognized:
		unknownActionsTotal.WithLabelValues(line).Inc()
		log.Error().Msg("Unknown function")
	default:
		return errors.Errorf("unsupported action kind %d", b.Kind)
	}
	return nil
}

func (e *Executor) powerAction(log zerolog.Logger, kind binding.ActionKind) error {
	log.Debug().Msg("Sync file system...")
	e.sync()
	e.sleep(e.gracePeriod)

	var err error
	switch kind {
	case binding.PowerOff:
		log.Warn().Msg("The system will power off NOW")
		err = e.power.PowerOff(false)
	case binding.Reboot:
		log.Warn().Msg("The system will reboot NOW")
		err = e.power.Reboot(false)
	case binding.Halt:
		log.Warn().Msg("The system will halt NOW")
		err = e.power.Halt(false)
	}
	if err != nil {
		return errors.Wrapf(err, "%s failed", kind)
	}
	return nil
}
