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

// Package history records finished transfers.
package history

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record is one transfer attempt, successful or not.
type Record struct {
	ID             string    `json:"id"`
	StartedAt      time.Time `json:"startedAt"`
	FinishedAt     time.Time `json:"finishedAt"`
	Files          int       `json:"files"`
	Bytes          int64     `json:"bytes"`
	DevEnvironment bool      `json:"isDevEnvironment"`
	BaseRemotePath string    `json:"baseRemotePath"`
	Error          string    `json:"error,omitempty"`
}

// NewRecord stamps a fresh id.
func NewRecord(startedAt time.Time, devEnvironment bool, baseRemotePath string) Record {
	return Record{
		ID:             uuid.NewString(),
		StartedAt:      startedAt,
		DevEnvironment: devEnvironment,
		BaseRemotePath: baseRemotePath,
	}
}

// Store persists records. List returns the newest first.
type Store interface {
	Save(ctx context.Context, rec Record) error
	List(ctx context.Context, limit int) ([]Record, error)
}

const DefaultMemoryCapacity = 100

// MemoryStore keeps the most recent records in a ring.
type MemoryStore struct {
	mu      sync.Mutex
	records []Record
	next    int
	full    bool
}

func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryStore{records: make([]Record, capacity)}
}

func (m *MemoryStore) Save(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[m.next] = rec
	m.next = (m.next + 1) % len(m.records)
	if m.next == 0 {
		m.full = true
	}
	return nil
}

func (m *MemoryStore) List(_ context.Context, limit int) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	size := m.next
	if m.full {
		size = len(m.records)
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	out := make([]Record, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (m.next - i + len(m.records)) % len(m.records)
		out = append(out, m.records[idx])
	}
	return out, nil
}
