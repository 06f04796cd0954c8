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
package environment

import (
	"github.com/godbus/dbus/v5"
	"github.com/pkg/errors"
)

const (
	login1Destination = "org.freedesktop.login1"
	login1Path        = dbus.ObjectPath("/org/freedesktop/login1")
	login1Manager     = "org.freedesktop.login1.Manager"
)

// PowerManager is the system service that changes the power state
// of the machine.
type PowerManager interface {
	// PowerOff the system.
	PowerOff(interactive bool) error
	// Reboot the system.
	Reboot(interactive bool) error
	// Halt the system.
	Halt(interactive bool) error
}

type login1 struct{}

// NewLogin1PowerManager returns a PowerManager that calls systemd-logind
// over the system bus.
// Every call uses a new bus connection.
func NewLogin1PowerManager() PowerManager {
	return login1{}
}

// PowerOff the system.
func (login1) PowerOff(interactive bool) error {
	return callManager("PowerOff", interactive)
}

// Reboot the system.
func (login1) Reboot(interactive bool) error {
	return callManager("Reboot", interactive)
}

// Halt the system.
func (login1) Halt(interactive bool) error {
	return callManager("Halt", interactive)
}

func callManager(method string, interactive bool) error {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return errors.Wrap(err, "failed to connect to system bus")
	}
	defer conn.Close()

	obj := conn.Object(login1Destination, login1Path)
	if call := obj.Call(login1Manager+"."+method, 0, interactive); call.Err != nil {
		return errors.Wrapf(call.Err, "%s failed", method)
	}
	return nil
}
