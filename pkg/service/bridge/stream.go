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
package bridge

import (
	"context"
	"strconv"
	"sync"
)

const (
	streamBufferSize = 64
)

type streamItem struct {
	event EdgeEvent
	err   error
}

// channelStream is an EdgeStream fed by a producer goroutine.
type channelStream struct {
	line      uint32
	items     chan streamItem
	done      chan struct{}
	closeOnce sync.Once
}

func newChannelStream(line uint32) *channelStream {
	return &channelStream{
		line:  line,
		items: make(chan streamItem, streamBufferSize),
		done:  make(chan struct{}),
	}
}

// push an event into the stream.
// Blocks while the buffer is full.
// Returns false if the stream has ended.
func (s *channelStream) push(evt EdgeEvent) bool {
	return s.send(streamItem{event: evt})
}

// fail pushes an error into the stream.
func (s *channelStream) fail(err error) bool {
	return s.send(streamItem{err: err})
}

func (s *channelStream) send(item streamItem) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.items <- item:
		return true
	case <-s.done:
		return false
	}
}

// end the stream. Buffered items are still delivered.
func (s *channelStream) end() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// Next blocks until the next edge event is available.
func (s *channelStream) Next(ctx context.Context) (EdgeEvent, error) {
	select {
	case item := <-s.items:
		return s.deliver(item)
	case <-s.done:
		// Deliver what is still buffered first
		select {
		case item := <-s.items:
			return s.deliver(item)
		default:
			return EdgeEvent{}, ErrEndOfStream
		}
	case <-ctx.Done():
		return EdgeEvent{}, ctx.Err()
	}
}

func (s *channelStream) deliver(item streamItem) (EdgeEvent, error) {
	if item.err != nil {
		edgeErrorsTotal.WithLabelValues(strconv.Itoa(int(s.line))).Inc()
		return EdgeEvent{}, item.err
	}
	edgesTotal.WithLabelValues(strconv.Itoa(int(s.line)), item.event.Edge.String()).Inc()
	return item.event, nil
}
