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
	"github.com/warthog618/go-gpiocdev"
)

type cdevBridge struct {
	mutex   sync.Mutex
	log     zerolog.Logger
	chip    *gpiocdev.Chip
	outputs map[uint32]*gpiocdev.Line
	inputs  map[uint32]*cdevInput
}

type cdevInput struct {
	line   *gpiocdev.Line
	stream *channelStream
}

// NewCdevBridge implements the bridge for a GPIO character device.
// The chip is given by name (gpiochip0) or path (/dev/gpiochip0).
func NewCdevBridge(chipName string, log zerolog.Logger) (API, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open GPIO chip %s", chipName)
	}
	log = log.With().Str("component", "cdev-bridge").Str("chip", chip.Name).Logger()
	log.Debug().Int("lines", chip.Lines()).Msg("Opened GPIO chip")
	return &cdevBridge{
		log:     log,
		chip:    chip,
		outputs: make(map[uint32]*gpiocdev.Line),
		inputs:  make(map[uint32]*cdevInput),
	}, nil
}

// Output requests the line as output and drives it to the given value.
func (b *cdevBridge) Output(line uint32, value int, consumer string) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	lineLabel := strconv.Itoa(int(line))
	outputRequestsTotal.WithLabelValues(lineLabel, strconv.Itoa(value)).Inc()
	if l, found := b.outputs[line]; found {
		if err := l.SetValue(value); err != nil {
			outputErrorsTotal.WithLabelValues(lineLabel).Inc()
			return errors.Wrapf(err, "failed to set GPIO %d to %d", line, value)
		}
		return nil
	}
	l, err := b.chip.RequestLine(int(line), gpiocdev.AsOutput(value), gpiocdev.WithConsumer(consumer))
	if err != nil {
		outputErrorsTotal.WithLabelValues(lineLabel).Inc()
		return errors.Wrapf(err, "failed to request GPIO %d as output", line)
	}
	b.outputs[line] = l
	b.log.Debug().
		Uint32("line", line).
		Int("value", value).
		Str("consumer", consumer).
		Msg("Requested output line")
	return nil
}

// Input requests the line as input with both edge detection.
func (b *cdevBridge) Input(line uint32, consumer string) (EdgeStream, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if _, found := b.inputs[line]; found {
		return nil, errors.Errorf("GPIO %d is already requested as input", line)
	}
	stream := newChannelStream(line)
	handler := func(evt gpiocdev.LineEvent) {
		var edge Edge
		switch evt.Type {
		case gpiocdev.LineEventRisingEdge:
			edge = EdgeRising
		case gpiocdev.LineEventFallingEdge:
			edge = EdgeFalling
		default:
			return
		}
		stream.push(EdgeEvent{
			Line:      line,
			Edge:      edge,
			Timestamp: evt.Timestamp,
		})
	}
	l, err := b.chip.RequestLine(int(line),
		gpiocdev.AsInput,
		gpiocdev.WithBothEdges,
		gpiocdev.WithConsumer(consumer),
		gpiocdev.WithEventHandler(handler))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to request GPIO %d as input", line)
	}
	b.inputs[line] = &cdevInput{line: l, stream: stream}
	b.log.Debug().
		Uint32("line", line).
		Str("consumer", consumer).
		Msg("Requested input line")
	return stream, nil
}

// Close releases all lines and the chip.
func (b *cdevBridge) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	for _, in := range b.inputs {
		// End the stream first, so a blocked event handler returns
		in.stream.end()
		in.line.Close()
	}
	b.inputs = make(map[uint32]*cdevInput)
	for _, l := range b.outputs {
		l.Close()
	}
	b.outputs = make(map[uint32]*gpiocdev.Line)
	if err := b.chip.Close(); err != nil {
		return errors.Wrap(err, "Close failed")
	}
	return nil
}
