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
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binkynet/radiod/pkg/binding"
	"github.com/binkynet/radiod/pkg/service/bridge"
)

func TestExecutorPowerActions(t *testing.T) {
	tests := []struct {
		action string
		call   string
	}{
		{"poweroff", "poweroff interactive=false"},
		{"shutdown", "poweroff interactive=false"},
		{"restart", "reboot interactive=false"},
		{"halt", "halt interactive=false"},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			br := bridge.NewVirtualBridge(zerolog.Nop())
			e, calls := newTestExecutor(zerolog.Nop(), br, nil)

			require.NoError(t, e.Execute(binding.New(3, tt.action)))
			assert.Equal(t, []string{"sync", "sleep 2s", tt.call}, calls.get())
			assert.Empty(t, br.OutputRequests())
		})
	}
}

func TestExecutorPowerOffFailureAfterGracePeriod(t *testing.T) {
	br := bridge.NewVirtualBridge(zerolog.Nop())
	e, calls := newTestExecutor(zerolog.Nop(), br, errTest)

	err := e.Execute(binding.New(3, "poweroff"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errTest)
	assert.Equal(t, []string{"sync", "sleep 2s", "poweroff interactive=false"}, calls.get())
}

func TestExecutorStaticOutputs(t *testing.T) {
	br := bridge.NewVirtualBridge(zerolog.Nop())
	e, calls := newTestExecutor(zerolog.Nop(), br, nil)

	require.NoError(t, e.Execute(binding.New(22, "seton")))
	require.NoError(t, e.Execute(binding.New(23, "setoff")))

	assert.Equal(t, []bridge.OutputRequest{
		{Line: 22, Value: 1, Consumer: "static_gpio_22"},
		{Line: 23, Value: 0, Consumer: "static_gpio_23"},
	}, br.OutputRequests())
	assert.Empty(t, calls.get())
}

func TestExecutorStaticOutputFailure(t *testing.T) {
	br := bridge.NewVirtualBridge(zerolog.Nop())
	br.FailLine(22, errTest)
	e, _ := newTestExecutor(zerolog.Nop(), br, nil)

	assert.Error(t, e.Execute(binding.New(22, "seton")))
}

func TestExecutorUnrecognized(t *testing.T) {
	var buf bytes.Buffer
	br := bridge.NewVirtualBridge(zerolog.Nop())
	e, calls := newTestExecutor(zerolog.New(&buf), br, nil)

	require.NoError(t, e.Execute(binding.New(9, "blink")))
	assert.Empty(t, br.OutputRequests())
	assert.Empty(t, calls.get())
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), `"action":"blink"`)
}
