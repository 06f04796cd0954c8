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

package binding

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	aerr "github.com/ewoutp/go-aggregate-error"
	"github.com/samber/lo"
)

// Binding associates a single GPIO line with an action.
type Binding struct {
	// Line offset on the chip
	Line uint32
	// Kind of action, classified from Name
	Kind ActionKind
	// Name of the action as configured
	Name string
}

// New creates a binding for the given line and action name.
func New(line uint32, name string) Binding {
	return Binding{
		Line: line,
		Kind: Classify(name),
		Name: name,
	}
}

// EventConsumer returns the label used when requesting the line for events.
func (b Binding) EventConsumer() string {
	return fmt.Sprintf("gpio_event_%d", b.Line)
}

// StaticConsumer returns the label used when driving the line as output.
func (b Binding) StaticConsumer() string {
	return StaticConsumer(b.Line)
}

// StaticConsumer returns the label used when driving the given line as output.
func StaticConsumer(line uint32) string {
	return fmt.Sprintf("static_gpio_%d", line)
}

var gpioPrefix = regexp.MustCompile(`(?i)gpio`)

// SanitizeKey removes any "gpio" (in any case) from the given line
// identifier and trims surrounding whitespace.
// E.g. " gpio17 " becomes "17".
func SanitizeKey(key string) string {
	return strings.TrimSpace(gpioPrefix.ReplaceAllString(key, ""))
}

// ParseLine parses a sanitized line identifier into a line offset.
func ParseLine(key string) (uint32, error) {
	v, err := strconv.ParseUint(key, 10, 32)
	if err != nil {
		return 0, &ParseError{Key: key, Err: err}
	}
	return uint32(v), nil
}

// Resolve turns a line->action table into bindings, sorted by line.
// Keys are sanitized before parsing.
// All invalid or duplicate keys are reported in a single error.
func Resolve(table string, entries map[string]string) ([]Binding, error) {
	keys := lo.Keys(entries)
	sort.Strings(keys)

	var errs aerr.AggregateError
	result := make([]Binding, 0, len(entries))
	seen := make(map[uint32]string, len(entries))
	for _, key := range keys {
		line, err := ParseLine(SanitizeKey(key))
		if err != nil {
			errs.Add(fmt.Errorf("%s: %w", table, err))
			continue
		}
		if prev, found := seen[line]; found {
			errs.Add(DuplicateLineError{Table: table, Line: line, Keys: [2]string{prev, key}})
			continue
		}
		seen[line] = key
		result = append(result, New(line, entries[key]))
	}
	if err := errs.AsError(); err != nil {
		return nil, err
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Line < result[j].Line })
	return result, nil
}
