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

package main

import (
	"context"
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs/maxprocs"

	"github.com/devsync/syncd/pkg/flag"
	"github.com/devsync/syncd/pkg/history"
	"github.com/devsync/syncd/pkg/log"
	"github.com/devsync/syncd/pkg/transfer"
	"github.com/devsync/syncd/pkg/util/safego"
	"github.com/devsync/syncd/pkg/web"
	"github.com/devsync/syncd/pkg/web/controller"
)

// main initializes and starts the syncd server.
func main() {
	flag.InitFlags()

	log.SetLevel(flag.ServerLogLevel)
	defer log.Sync()
	safego.InitPanicLogger(context.Background())

	cfg, err := flag.LoadConfig(flag.ConfigFile, flag.TransferBackend)
	if err != nil {
		log.Error("failed to load configuration: %v", err)
		os.Exit(1)
	}
	log.Info("common paths: %v", cfg.CommonPaths.Locals())

	var dialer transfer.Dialer
	switch flag.TransferBackend {
	case flag.BackendLocal:
		dialer = transfer.LocalDialer(flag.LocalTransferRoot)
		log.Info("transferring into local directory %s", flag.LocalTransferRoot)
	default:
		dialer = transfer.SSHDialer(cfg.SSH)
		log.Info("transferring to %s@%s", cfg.SSH.Username, cfg.SSH.Addr())
	}

	var store history.Store = history.NewMemoryStore(flag.HistoryLimit)
	if flag.HistoryDSN != "" {
		mysqlStore, err := history.NewMySQLStore(flag.HistoryDSN)
		if err != nil {
			log.Error("failed to configure transfer history: %v", err)
			os.Exit(1)
		}
		defer mysqlStore.Close()
		store = mysqlStore
	}

	controller.InitServices(transfer.NewService(dialer), store, cfg.CommonPaths)
	engine := web.NewRouter(flag.ServerAccessToken, flag.CORSAllowedOrigin)
	addr := fmt.Sprintf(":%d", flag.ServerPort)
	log.Info("syncd listening on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Error("failed to start syncd server: %v", err)
	}
}
