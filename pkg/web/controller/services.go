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

package controller

import (
	"context"
	"time"

	"github.com/devsync/syncd/pkg/history"
	"github.com/devsync/syncd/pkg/log"
	"github.com/devsync/syncd/pkg/pathmatch"
	"github.com/devsync/syncd/pkg/planner"
	"github.com/devsync/syncd/pkg/session"
	"github.com/devsync/syncd/pkg/stats"
	"github.com/devsync/syncd/pkg/transfer"
)

var (
	sessions        *session.Manager
	transferService *transfer.Service
	historyStore    history.Store
	counters        *stats.Counters
	commonPaths     pathmatch.Table
)

// InitServices wires the collaborators every controller shares.
func InitServices(svc *transfer.Service, store history.Store, table pathmatch.Table) {
	sessions = session.NewManager()
	transferService = svc
	historyStore = store
	counters = &stats.Counters{}
	commonPaths = table
}

// runTransfer sends items and records the attempt in stats and history.
func runTransfer(ctx context.Context, items []planner.Item, devEnvironment bool, baseRemotePath string, hooks transfer.Hooks) (transfer.Result, error) {
	rec := history.NewRecord(time.Now(), devEnvironment, baseRemotePath)

	counters.TransferStarted()
	result, err := transferService.Transfer(ctx, items, hooks)
	counters.TransferFinished(result.Files, result.Bytes, err != nil)

	rec.FinishedAt = time.Now()
	rec.Files = result.Files
	rec.Bytes = result.Bytes
	logger := log.With("transfer", rec.ID, "dev", devEnvironment, "base", baseRemotePath)
	if err != nil {
		rec.Error = err.Error()
		logger.Errorf("transfer failed after %d files: %v", result.Files, err)
	} else {
		logger.Infof("sent %d files (%d bytes) in %v", result.Files, result.Bytes, result.Duration)
	}

	if serr := historyStore.Save(context.WithoutCancel(ctx), rec); serr != nil {
		logger.Warnf("failed to record transfer: %v", serr)
	}
	return result, err
}
