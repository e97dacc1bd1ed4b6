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

package stats

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	var c Counters
	c.RecordScan(4)
	c.RecordScan(1)

	c.TransferStarted()
	assert.EqualValues(t, 1, c.Snapshot().ActiveTransfers)
	c.TransferFinished(3, 300, false)
	c.TransferStarted()
	c.TransferFinished(1, 10, true)

	assert.Equal(t, Snapshot{
		Scans:            2,
		ScannedFiles:     5,
		Transfers:        2,
		FailedTransfers:  1,
		TransferredFiles: 4,
		TransferredBytes: 310,
	}, c.Snapshot())
}

func TestCountersConcurrent(t *testing.T) {
	var c Counters
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RecordScan(2)
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 50, c.Snapshot().Scans)
	assert.EqualValues(t, 100, c.Snapshot().ScannedFiles)
}
