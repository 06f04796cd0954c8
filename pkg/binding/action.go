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

// ActionKind identifies the action that is bound to a GPIO line.
type ActionKind uint8

const (
	// Unrecognized is the kind of any action name that is not known.
	// It is reported when executed, never when classified.
	Unrecognized ActionKind = iota
	PowerOff
	Reboot
	Halt
	SetOutputHigh
	SetOutputLow
)

// Classify maps the given action name onto its kind.
// Names are matched case sensitive.
func Classify(name string) ActionKind {
	switch name {
	case "poweroff", "shutdown":
		return PowerOff
	case "restart":
		return Reboot
	case "halt":
		return Halt
	case "seton":
		return SetOutputHigh
	case "setoff":
		return SetOutputLow
	default:
		return Unrecognized
	}
}

// IsPowerAction returns true for actions handled by the system manager.
func (k ActionKind) IsPowerAction() bool {
	switch k {
	case PowerOff, Reboot, Halt:
		return true
	default:
		return false
	}
}

// IsStaticOutput returns true for actions that drive a line to a fixed level.
func (k ActionKind) IsStaticOutput() bool {
	return k == SetOutputHigh || k == SetOutputLow
}

// String returns a human readable name of the kind.
func (k ActionKind) String() string {
	switch k {
	case PowerOff:
		return "poweroff"
	case Reboot:
		return "reboot"
	case Halt:
		return "halt"
	case SetOutputHigh:
		return "set-output-high"
	case SetOutputLow:
		return "set-output-low"
	default:
		return "unrecognized"
	}
}
