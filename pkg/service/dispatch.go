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
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/binkynet/radiod/pkg/binding"
	"github.com/binkynet/radiod/pkg/service/bridge"
)

// Subscription of a single input line.
type Subscription struct {
	Binding binding.Binding
	Stream  bridge.EdgeStream
}

// Dispatch visits all subscriptions in order, waiting for the next edge
// of each, and executes the bound action on every falling edge.
// Waiting for a line blocks all lines after it, so a quiet line can
// starve the lines that follow it.
// Ended streams are skipped on every pass.
// Returns nil when the context is canceled, or the first stream
// or action error.
func Dispatch(ctx context.Context, log zerolog.Logger, subs []Subscription, exec ActionExecutor) error {
	log.Debug().Int("subscriptions", len(subs)).Msg("Event loop started")
	if len(subs) == 0 {
		<-ctx.Done()
		return nil
	}
	for {
		dispatchPassesTotal.Inc()
		for _, sub := range subs {
			line := sub.Binding.Line
			log.Trace().Uint32("line", line).Msg("Checking GPIO for events")
			evt, err := sub.Stream.Next(ctx)
			if ctx.Err() != nil {
				log.Debug().Msg("Event loop stopped")
				return nil
			}
			if errors.Is(err, bridge.ErrEndOfStream) {
				continue
			} else if err != nil {
				return errors.Wrapf(err, "edge stream of GPIO %d failed", line)
			}
			if evt.Edge != bridge.EdgeFalling {
				continue
			}
			log.Debug().Uint32("line", line).Str("action", sub.Binding.Name).Msg("Execute")
			if err := exec.Execute(sub.Binding); err != nil {
				return maskAny(err)
			}
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}
