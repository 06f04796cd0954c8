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
package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		configured int
		want       zerolog.Level
	}{
		{0, zerolog.Disabled},
		{1, zerolog.ErrorLevel},
		{2, zerolog.WarnLevel},
		{3, zerolog.InfoLevel},
		{4, zerolog.DebugLevel},
		{5, zerolog.TraceLevel},
		{6, zerolog.ErrorLevel},
		{-1, zerolog.ErrorLevel},
		{255, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Level(tt.configured), "configured %d", tt.configured)
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("broken")
}

func TestMultiWriter(t *testing.T) {
	var a, b bytes.Buffer
	w := NewMultiWriter(&a, failingWriter{}, &b)
	n, err := w.Write([]byte("hello"))
	assert.Equal(t, 5, n)
	assert.Error(t, err)
	assert.Equal(t, "hello", a.String())
	assert.Equal(t, "hello", b.String())
}

func TestInitOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "radiod.log")

	logger, err := Init(3, path)
	require.NoError(t, err)
	logger.Info().Msg("first message")
	logger.Debug().Msg("filtered message")

	// Second call does not reconfigure
	again, err := Init(5, filepath.Join(dir, "other.log"))
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, again.GetLevel())
	_, err = os.Stat(filepath.Join(dir, "other.log"))
	assert.True(t, os.IsNotExist(err))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "first message")
	assert.NotContains(t, string(content), "filtered message")
}
