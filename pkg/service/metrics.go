//    Copyright 2021 Ewout Prangsma
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
	"github.com/binkynet/radiod/pkg/metrics"
)

const (
	subSystem = "service"
)

var (
	// Total number of executed actions per line
	actionsTotal = metrics.MustRegisterCounterVec(subSystem,
		"actions_total",
		"Total number of executed actions per line",
		"line", "action")
	// Total number of failed actions per line
	actionErrorsTotal = metrics.MustRegisterCounterVec(subSystem,
		"action_errors_total",
		"Total number of failed actions per line",
		"line", "action")
	// Total number of unknown actions triggered per line
	unknownActionsTotal = metrics.MustRegisterCounterVec(subSystem,
		"unknown_actions_total",
		"Total number of unknown actions triggered per line",
		"line")
	// Total number of passes over all subscriptions
	dispatchPassesTotal = metrics.MustRegisterCounter(subSystem,
		"dispatch_passes_total",
		"Total number of passes over all subscriptions")
	// Number of subscribed input lines
	subscriptionsGauge = metrics.MustRegisterGauge(subSystem,
		"subscriptions",
		"Number of subscribed input lines")
)
