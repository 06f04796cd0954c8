//    Copyright 2023 Ewout Prangsma
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
package bridge

import (
	"github.com/binkynet/radiod/pkg/metrics"
)

const (
	subSystem = "bridge"
)

var (
	// Total number of edges received per line
	edgesTotal = metrics.MustRegisterCounterVec(subSystem,
		"edges_total",
		"Total number of edges received per line",
		"line", "edge")
	// Total number of errors received from edge streams per line
	edgeErrorsTotal = metrics.MustRegisterCounterVec(subSystem,
		"edge_errors_total",
		"Total number of errors received from edge streams per line",
		"line")
	// Total number of output requests per line
	outputRequestsTotal = metrics.MustRegisterCounterVec(subSystem,
		"output_requests_total",
		"Total number of output requests per line",
		"line", "value")
	// Total number of failed output requests per line
	outputErrorsTotal = metrics.MustRegisterCounterVec(subSystem,
		"output_errors_total",
		"Total number of failed output requests per line",
		"line")
)
