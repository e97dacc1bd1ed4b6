// Copyright 2025 Alibaba Group Holding Ltd.
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

package flag

import "time"

const (
	BackendSSH   = "ssh"
	BackendLocal = "local"
)

var (
	// ServerPort controls the HTTP listener port.
	ServerPort int

	// ServerLogLevel is one of debug, info, warn or error.
	ServerLogLevel string

	// ServerAccessToken guards API entrypoints when set.
	ServerAccessToken string

	// CORSAllowedOrigin is echoed in Access-Control-Allow-Origin.
	CORSAllowedOrigin string

	// ApiGracefulShutdownTimeout waits before tearing down SSE streams.
	ApiGracefulShutdownTimeout time.Duration

	// ConfigFile holds the ssh block and the common-path table.
	ConfigFile string

	// TransferBackend selects ssh or local delivery.
	TransferBackend string

	// LocalTransferRoot is the destination root for the local backend.
	LocalTransferRoot string

	// HistoryDSN switches transfer history to MySQL when set.
	HistoryDSN string

	// HistoryLimit bounds the in-memory history and list responses.
	HistoryLimit int
)
