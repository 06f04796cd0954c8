// Copyright 2026 Ewout Prangsma
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Author Ewout Prangsma
//

package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	initOnce   sync.Once
	initLogger zerolog.Logger
	initErr    error
)

// Level converts a configured log level (0..5) into a zerolog level.
// Unknown levels result in errors only.
func Level(configured int) zerolog.Level {
	switch configured {
	case 0:
		return zerolog.Disabled
	case 1:
		return zerolog.ErrorLevel
	case 2:
		return zerolog.WarnLevel
	case 3:
		return zerolog.InfoLevel
	case 4:
		return zerolog.DebugLevel
	case 5:
		return zerolog.TraceLevel
	default:
		return zerolog.ErrorLevel
	}
}

// NewConsoleLogger creates a logger that only writes to the terminal.
// It is used before the configuration has been loaded.
func NewConsoleLogger() zerolog.Logger {
	return zerolog.New(newConsoleWriter(colorable.NewColorableStderr(), false)).With().Timestamp().Logger()
}

// Init configures the process wide logger to write to the terminal
// and the given log file, filtered by the configured level.
// Only the first call has effect, later calls return the same logger.
func Init(configured int, logFile string) (zerolog.Logger, error) {
	initOnce.Do(func() {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
		if err != nil {
			initErr = errors.Wrapf(err, "failed to create log file %s", logFile)
			return
		}
		level := Level(configured)
		zerolog.SetGlobalLevel(level)
		out := NewMultiWriter(
			newConsoleWriter(colorable.NewColorableStdout(), false),
			newConsoleWriter(f, true),
		)
		initLogger = zerolog.New(out).Level(level).With().Timestamp().Logger()
		log.Logger = initLogger
	})
	return initLogger, initErr
}

func newConsoleWriter(w io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.RFC3339,
	}
}
