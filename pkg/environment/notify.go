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
	"github.com/coreos/go-systemd/daemon"
	"github.com/rs/zerolog"
)

// NotifyReady tells systemd (if running as a notify service) that
// startup has completed.
func NotifyReady(log zerolog.Logger) {
	sent, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to notify systemd")
	} else if sent {
		log.Debug().Msg("Notified systemd of readiness")
	}
}
