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
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// OutputRequest is a request to drive a line, as recorded by VirtualBridge.
type OutputRequest struct {
	Line     uint32
	Value    int
	Consumer string
}

// VirtualBridge is an in-memory chip.
// It records output requests and delivers edges that are injected into it.
type VirtualBridge struct {
	mutex    sync.Mutex
	log      zerolog.Logger
	requests []OutputRequest
	values   map[uint32]int
	streams  map[uint32]*channelStream
	failures map[uint32]error
	closed   bool
}

var _ API = &VirtualBridge{}

// NewVirtualBridge implements the bridge without any hardware.
func NewVirtualBridge(log zerolog.Logger) *VirtualBridge {
	return &VirtualBridge{
		log:      log.With().Str("component", "virtual-bridge").Logger(),
		values:   make(map[uint32]int),
		streams:  make(map[uint32]*channelStream),
		failures: make(map[uint32]error),
	}
}

// Output records the request and the new value of the line.
func (p *VirtualBridge) Output(line uint32, value int, consumer string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	lineLabel := strconv.Itoa(int(line))
	outputRequestsTotal.WithLabelValues(lineLabel, strconv.Itoa(value)).Inc()
	if err := p.checkLine(line); err != nil {
		outputErrorsTotal.WithLabelValues(lineLabel).Inc()
		return err
	}
	p.requests = append(p.requests, OutputRequest{Line: line, Value: value, Consumer: consumer})
	p.values[line] = value
	p.log.Info().
		Uint32("line", line).
		Int("value", value).
		Str("consumer", consumer).
		Msg("Virtual output")
	return nil
}

// Input creates a stream that delivers edges injected for the given line.
func (p *VirtualBridge) Input(line uint32, consumer string) (EdgeStream, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if err := p.checkLine(line); err != nil {
		return nil, err
	}
	if _, found := p.streams[line]; found {
		return nil, errors.Errorf("GPIO %d is already requested as input", line)
	}
	s := newChannelStream(line)
	p.streams[line] = s
	p.log.Debug().
		Uint32("line", line).
		Str("consumer", consumer).
		Msg("Virtual input")
	return s, nil
}

func (p *VirtualBridge) checkLine(line uint32) error {
	if p.closed {
		return errors.New("bridge is closed")
	}
	if err := p.failures[line]; err != nil {
		return errors.Wrapf(err, "failed to request GPIO %d", line)
	}
	return nil
}

// Close ends all streams.
func (p *VirtualBridge) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	for _, s := range p.streams {
		s.end()
	}
	p.closed = true
	return nil
}

// FailLine makes all future requests of the given line fail with given error.
func (p *VirtualBridge) FailLine(line uint32, err error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.failures[line] = err
}

// InjectEdge delivers an edge on the given input line.
// Blocks while the stream buffer is full.
func (p *VirtualBridge) InjectEdge(line uint32, edge Edge) error {
	s, err := p.stream(line)
	if err != nil {
		return err
	}
	if !s.push(EdgeEvent{Line: line, Edge: edge}) {
		return ErrEndOfStream
	}
	return nil
}

// InjectError delivers an error on the given input line.
func (p *VirtualBridge) InjectError(line uint32, injected error) error {
	s, err := p.stream(line)
	if err != nil {
		return err
	}
	if !s.fail(injected) {
		return ErrEndOfStream
	}
	return nil
}

// EndStream ends the event stream of the given input line.
func (p *VirtualBridge) EndStream(line uint32) error {
	s, err := p.stream(line)
	if err != nil {
		return err
	}
	s.end()
	return nil
}

func (p *VirtualBridge) stream(line uint32) (*channelStream, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	s, found := p.streams[line]
	if !found {
		return nil, errors.Errorf("GPIO %d is not requested as input", line)
	}
	return s, nil
}

// OutputRequests returns all recorded output requests.
func (p *VirtualBridge) OutputRequests() []OutputRequest {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]OutputRequest(nil), p.requests...)
}

// Value returns the last value the given line was driven to.
func (p *VirtualBridge) Value(line uint32) (int, bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	v, found := p.values[line]
	return v, found
}
