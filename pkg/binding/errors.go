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
)

// ParseError is returned when a line identifier is not a valid line number.
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid GPIO line '%s': %v", e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DuplicateLineError is returned when two keys in the same table
// resolve to the same line.
type DuplicateLineError struct {
	Table string
	Line  uint32
	Keys  [2]string
}

func (e DuplicateLineError) Error() string {
	return fmt.Sprintf("%s: GPIO line %d is bound twice ('%s' and '%s')", e.Table, e.Line, e.Keys[0], e.Keys[1])
}
