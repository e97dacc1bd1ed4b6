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

import (
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"time"

	"github.com/devsync/syncd/pkg/log"
)

const (
	accessTokenEnv             = "SYNCD_ACCESS_TOKEN"
	configFileEnv              = "SYNCD_CONFIG"
	historyDSNEnv              = "SYNCD_HISTORY_DSN"
	gracefulShutdownTimeoutEnv = "SYNCD_API_GRACE_SHUTDOWN"
)

// InitFlags registers CLI flags and env overrides.
func InitFlags() {
	if err := parse(flag.CommandLine, os.Args[1:]); err != nil {
		stdlog.Panic(err)
	}

	log.Info("config file is: %s", ConfigFile)
	log.Info("transfer backend is: %s", TransferBackend)
}

func setDefaults() {
	ServerPort = 8080
	ServerLogLevel = "info"
	ServerAccessToken = ""
	CORSAllowedOrigin = "http://localhost:5173"
	ApiGracefulShutdownTimeout = time.Second * 1
	ConfigFile = "config.json"
	TransferBackend = BackendSSH
	LocalTransferRoot = ""
	HistoryDSN = ""
	HistoryLimit = 100
}

func parse(fs *flag.FlagSet, args []string) error {
	setDefaults()

	// Environment first, flags override.
	if v := os.Getenv(accessTokenEnv); v != "" {
		ServerAccessToken = v
	}
	if v := os.Getenv(configFileEnv); v != "" {
		ConfigFile = v
	}
	if v := os.Getenv(historyDSNEnv); v != "" {
		HistoryDSN = v
	}
	if v := os.Getenv(gracefulShutdownTimeoutEnv); v != "" {
		duration, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("failed to parse graceful shutdown timeout from env: %w", err)
		}
		ApiGracefulShutdownTimeout = duration
	}

	fs.IntVar(&ServerPort, "port", ServerPort, "Server listening port (default: 8080)")
	fs.StringVar(&ServerLogLevel, "log-level", ServerLogLevel, "Server log level (debug, info, warn, error)")
	fs.StringVar(&ServerAccessToken, "access-token", ServerAccessToken, "Server access token for API authentication")
	fs.StringVar(&CORSAllowedOrigin, "cors-origin", CORSAllowedOrigin, "Allowed CORS origin, empty to disable CORS headers")
	fs.DurationVar(&ApiGracefulShutdownTimeout, "graceful-shutdown-timeout", ApiGracefulShutdownTimeout, "API graceful shutdown timeout duration (default: 1s)")
	fs.StringVar(&ConfigFile, "config", ConfigFile, "Path to the JSON config file")
	fs.StringVar(&TransferBackend, "transfer-backend", TransferBackend, "Transfer backend (ssh, local)")
	fs.StringVar(&LocalTransferRoot, "local-root", LocalTransferRoot, "Destination root directory for the local backend")
	fs.StringVar(&HistoryDSN, "history-dsn", HistoryDSN, "MySQL DSN for transfer history, in-memory when empty")
	fs.IntVar(&HistoryLimit, "history-limit", HistoryLimit, "Maximum transfer history entries kept in memory and returned")

	if err := fs.Parse(args); err != nil {
		return err
	}

	switch TransferBackend {
	case BackendSSH:
	case BackendLocal:
		if LocalTransferRoot == "" {
			return fmt.Errorf("--local-root is required for the %s backend", BackendLocal)
		}
	default:
		return fmt.Errorf("unknown transfer backend %q", TransferBackend)
	}
	return nil
}
