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
package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binkynet/radiod/pkg/binding"
)

func TestLoadWritesDefaultWhenMissing(t *testing.T) {
	fs := afero.NewMemMapFs()

	cfg, created, err := Load(fs, DefaultPath, zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, Default(), cfg)

	exists, err := afero.Exists(fs, DefaultPath)
	require.NoError(t, err)
	assert.True(t, exists)

	// Round trip
	reloaded, created, err := Load(fs, DefaultPath, zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, Default(), reloaded)
}

func TestLoadExistingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/radio.conf", []byte(`
master_chip = "gpiochip1"
log_level = 4

[input_binding]
gpio17 = "setoff"
"3" = "poweroff"

[output_binding]
GPIO22 = "seton"
`), 0644))

	cfg, created, err := Load(fs, "/etc/radio.conf", zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, Config{
		MasterChip:    "gpiochip1",
		LogLevel:      4,
		InputBinding:  map[string]string{"gpio17": "setoff", "3": "poweroff"},
		OutputBinding: map[string]string{"GPIO22": "seton"},
	}, cfg)
}

func TestLoadMissingTablesAreEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/radio.conf", []byte(`master_chip = "/dev/gpiochip0"
log_level = 2
`), 0644))

	cfg, _, err := Load(fs, "/radio.conf", zerolog.Nop())
	require.NoError(t, err)
	assert.NotNil(t, cfg.InputBinding)
	assert.NotNil(t, cfg.OutputBinding)
	assert.Empty(t, cfg.InputBinding)
}

func TestLoadMalformedFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/radio.conf", []byte("master_chip = \n[[["), 0644))

	_, _, err := Load(fs, "/radio.conf", zerolog.Nop())
	assert.Error(t, err)
}

func TestLoadReadOnlyFilesystem(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	_, _, err := Load(fs, DefaultPath, zerolog.Nop())
	assert.Error(t, err)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := Config{
		MasterChip:    "gpiochip2",
		LogLevel:      5,
		InputBinding:  map[string]string{"5": "halt", "6": "restart"},
		OutputBinding: map[string]string{"12": "seton"},
	}
	require.NoError(t, Save(fs, "/radio.conf", cfg))

	loaded, _, err := Load(fs, "/radio.conf", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSanitize(t *testing.T) {
	cfg := Config{
		MasterChip:    DefaultChip,
		LogLevel:      3,
		InputBinding:  map[string]string{"gpio17": "setoff", " GPIO 4 ": "halt", "5": "seton"},
		OutputBinding: map[string]string{"gpio22 ": "seton", "led": "setoff"},
	}
	s := cfg.Sanitize()
	assert.Equal(t, map[string]string{"17": "setoff", "4": "halt", "5": "seton"}, s.InputBinding)
	assert.Equal(t, map[string]string{"22": "seton", "led": "setoff"}, s.OutputBinding)
	assert.Equal(t, cfg.MasterChip, s.MasterChip)
	assert.Equal(t, cfg.LogLevel, s.LogLevel)

	// Original is left untouched
	assert.Contains(t, cfg.InputBinding, "gpio17")
}

func TestBindings(t *testing.T) {
	cfg := Config{
		InputBinding:  map[string]string{"gpio6": "poweroff", "gpio5": "setoff"},
		OutputBinding: map[string]string{"22": "seton"},
	}
	inputs, outputs, err := cfg.Bindings()
	require.NoError(t, err)
	assert.Equal(t, []binding.Binding{
		binding.New(5, "setoff"),
		binding.New(6, "poweroff"),
	}, inputs)
	assert.Equal(t, []binding.Binding{binding.New(22, "seton")}, outputs)
}

func TestBindingsReportsBothTables(t *testing.T) {
	cfg := Config{
		InputBinding:  map[string]string{"button": "poweroff"},
		OutputBinding: map[string]string{"led": "seton"},
	}
	_, _, err := cfg.Bindings()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'button'")
	assert.Contains(t, err.Error(), "'led'")
	assert.Contains(t, err.Error(), "input_binding")
	assert.Contains(t, err.Error(), "output_binding")
}
