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

// Package stats counts service activity for the metrics endpoint.
package stats

import "sync/atomic"

// Counters is safe for concurrent use.
type Counters struct {
	scans            atomic.Int64
	scannedFiles     atomic.Int64
	transfers        atomic.Int64
	failedTransfers  atomic.Int64
	transferredFiles atomic.Int64
	transferredBytes atomic.Int64
	activeTransfers  atomic.Int64
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Scans            int64 `json:"scans"`
	ScannedFiles     int64 `json:"scanned_files"`
	Transfers        int64 `json:"transfers"`
	FailedTransfers  int64 `json:"failed_transfers"`
	TransferredFiles int64 `json:"transferred_files"`
	TransferredBytes int64 `json:"transferred_bytes"`
	ActiveTransfers  int64 `json:"active_transfers"`
}

func (c *Counters) RecordScan(files int) {
	c.scans.Add(1)
	c.scannedFiles.Add(int64(files))
}

// TransferStarted must be paired with TransferFinished.
func (c *Counters) TransferStarted() {
	c.activeTransfers.Add(1)
}

func (c *Counters) TransferFinished(files int, bytes int64, failed bool) {
	c.activeTransfers.Add(-1)
	c.transfers.Add(1)
	c.transferredFiles.Add(int64(files))
	c.transferredBytes.Add(bytes)
	if failed {
		c.failedTransfers.Add(1)
	}
}

func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Scans:            c.scans.Load(),
		ScannedFiles:     c.scannedFiles.Load(),
		Transfers:        c.transfers.Load(),
		FailedTransfers:  c.failedTransfers.Load(),
		TransferredFiles: c.transferredFiles.Load(),
		TransferredBytes: c.transferredBytes.Load(),
		ActiveTransfers:  c.activeTransfers.Load(),
	}
}
