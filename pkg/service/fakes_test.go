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
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/binkynet/radiod/pkg/binding"
	"github.com/binkynet/radiod/pkg/service/bridge"
)

// callLog records calls in the order they are made.
type callLog struct {
	mutex sync.Mutex
	calls []string
}

func (l *callLog) add(format string, args ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

func (l *callLog) get() []string {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return append([]string(nil), l.calls...)
}

type fakePowerManager struct {
	calls *callLog
	err   error
}

func (p *fakePowerManager) PowerOff(interactive bool) error {
	p.calls.add("poweroff interactive=%v", interactive)
	return p.err
}

func (p *fakePowerManager) Reboot(interactive bool) error {
	p.calls.add("reboot interactive=%v", interactive)
	return p.err
}

func (p *fakePowerManager) Halt(interactive bool) error {
	p.calls.add("halt interactive=%v", interactive)
	return p.err
}

// newTestExecutor creates an executor that records sync & sleep calls
// instead of performing them.
func newTestExecutor(log zerolog.Logger, br bridge.API, powerErr error) (*Executor, *callLog) {
	calls := &callLog{}
	e := NewExecutor(log, br, &fakePowerManager{calls: calls, err: powerErr})
	e.sync = func() { calls.add("sync") }
	e.sleep = func(d time.Duration) { calls.add("sleep %s", d) }
	return e, calls
}

// recordingExecutor records executed bindings.
type recordingExecutor struct {
	mutex    sync.Mutex
	executed []binding.Binding
	err      error
}

func (e *recordingExecutor) Execute(b binding.Binding) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.executed = append(e.executed, b)
	return e.err
}

func (e *recordingExecutor) get() []binding.Binding {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return append([]binding.Binding(nil), e.executed...)
}

var errTest = errors.New("test failure")
