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
package bridge

import (
	"context"
	"errors"
	"time"
)

// API of the bridge, the GPIO controller (chip) that lines are requested from.
type API interface {
	// Output requests the line with given offset as output and drives
	// it to the given value (0|1).
	// If the line is already held as output, its value is set.
	Output(line uint32, value int, consumer string) error
	// Input requests the line with given offset as input with
	// detection of both rising and falling edges.
	Input(line uint32, consumer string) (EdgeStream, error)
	// Close releases all requested lines and the chip.
	Close() error
}

// EdgeStream is the sequence of edge events of a single input line.
type EdgeStream interface {
	// Next blocks until the next edge event is available.
	// Returns ErrEndOfStream when no more events will arrive,
	// or the context error when the context is canceled first.
	Next(ctx context.Context) (EdgeEvent, error)
}

// Edge is the type of transition of a line.
type Edge uint8

const (
	// EdgeRising is a low to high transition.
	EdgeRising Edge = iota + 1
	// EdgeFalling is a high to low transition.
	EdgeFalling
)

func (e Edge) String() string {
	switch e {
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	default:
		return "unknown"
	}
}

// EdgeEvent is a single edge detected on an input line.
type EdgeEvent struct {
	Line uint32
	Edge Edge
	// Time of the event, relative to an unspecified start.
	Timestamp time.Duration
}

var (
	// ErrEndOfStream is returned by EdgeStream.Next when no
	// further events will be produced.
	ErrEndOfStream = errors.New("end of edge event stream")
)
