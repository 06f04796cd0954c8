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
	"os"

	"github.com/dustin/go-humanize"
	aerr "github.com/ewoutp/go-aggregate-error"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/binkynet/radiod/pkg/binding"
)

const (
	// DefaultPath is the location of the configuration file.
	DefaultPath = "/etc/radio.conf"
	// DefaultChip is the GPIO controller used when none is configured.
	DefaultChip = "/dev/gpiochip0"
	// DefaultLogLevel is the log level used when none is configured (info).
	DefaultLogLevel = 3

	inputTable  = "input_binding"
	outputTable = "output_binding"
)

var (
	maskAny = errors.WithStack
)

// Config of the daemon, as stored in the configuration file.
type Config struct {
	// Device name or path of the GPIO controller
	MasterChip string `toml:"master_chip"`
	// Log level 0 (off) .. 5 (trace)
	LogLevel int `toml:"log_level"`
	// Line identifier -> action name of lines that trigger an action
	InputBinding map[string]string `toml:"input_binding"`
	// Line identifier -> action name of lines set once at startup
	OutputBinding map[string]string `toml:"output_binding"`
}

// Default returns the configuration used when no configuration file exists.
func Default() Config {
	return Config{
		MasterChip:    DefaultChip,
		LogLevel:      DefaultLogLevel,
		InputBinding:  map[string]string{},
		OutputBinding: map[string]string{},
	}
}

// Load the configuration from the file at given path.
// If that file does not exist, the default configuration is written
// to it and returned, with created set to true.
func Load(fs afero.Fs, path string, log zerolog.Logger) (cfg Config, created bool, err error) {
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Str("path", path).Msg("Configuration file not found")
		cfg = Default()
		log.Info().Str("path", path).Msg("Writing default configuration")
		if err := Save(fs, path, cfg); err != nil {
			return Config{}, false, maskAny(err)
		}
		return cfg, true, nil
	} else if err != nil {
		return Config{}, false, errors.Wrapf(err, "failed to read %s", path)
	}
	log.Debug().
		Str("path", path).
		Str("size", humanize.Bytes(uint64(len(data)))).
		Msg("Read configuration file")
	cfg, err = Parse(data)
	if err != nil {
		return Config{}, false, errors.Wrapf(err, "failed to parse %s", path)
	}
	return cfg, false, nil
}

// Parse the given TOML encoded configuration.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, maskAny(err)
	}
	if cfg.InputBinding == nil {
		cfg.InputBinding = map[string]string{}
	}
	if cfg.OutputBinding == nil {
		cfg.OutputBinding = map[string]string{}
	}
	return cfg, nil
}

// Save the given configuration in the file at given path.
func Save(fs afero.Fs, path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return maskAny(err)
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// Sanitize returns a copy of the configuration with all line identifiers
// normalized (e.g. "gpio17" -> "17").
// Keys that still are not numeric are reported by Bindings.
func (c Config) Sanitize() Config {
	result := c
	result.InputBinding = sanitizeTable(c.InputBinding)
	result.OutputBinding = sanitizeTable(c.OutputBinding)
	return result
}

func sanitizeTable(table map[string]string) map[string]string {
	result := make(map[string]string, len(table))
	for k, v := range table {
		result[binding.SanitizeKey(k)] = v
	}
	return result
}

// Bindings resolves both binding tables.
// All problems in both tables are reported in a single error.
func (c Config) Bindings() (inputs, outputs []binding.Binding, err error) {
	var errs aerr.AggregateError
	inputs, inErr := binding.Resolve(inputTable, c.InputBinding)
	outputs, outErr := binding.Resolve(outputTable, c.OutputBinding)
	if err := errs.Add(inErr).Add(outErr).AsError(); err != nil {
		return nil, nil, err
	}
	return inputs, outputs, nil
}
