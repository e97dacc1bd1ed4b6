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

package history

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/go-sql-driver/mysql"

	"github.com/devsync/syncd/pkg/log"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS transfer_history (
	id VARCHAR(36) PRIMARY KEY,
	started_at DATETIME(6) NOT NULL,
	finished_at DATETIME(6) NOT NULL,
	files INT NOT NULL,
	bytes BIGINT NOT NULL,
	dev_environment BOOLEAN NOT NULL,
	base_remote_path VARCHAR(1024) NOT NULL,
	error TEXT NOT NULL,
	INDEX idx_started_at (started_at)
)`

// MySQLStore keeps history in a MySQL table, created on first use. A failed
// connection or table setup is retried on the next call.
type MySQLStore struct {
	dsn string

	once    sync.Once
	db      *sql.DB
	openErr error

	mu          sync.Mutex
	initialized bool
}

// NewMySQLStore checks dsn without connecting.
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid history dsn: %w", err)
	}
	cfg.ParseTime = true
	return &MySQLStore{dsn: cfg.FormatDSN()}, nil
}

func (s *MySQLStore) initDB(ctx context.Context) error {
	s.once.Do(func() {
		s.db, s.openErr = sql.Open("mysql", s.dsn)
	})
	if s.openErr != nil {
		return fmt.Errorf("history db open failed: %w", s.openErr)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("history db init failed: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("history db init failed: %w", err)
	}
	s.initialized = true
	return nil
}

func (s *MySQLStore) Save(ctx context.Context, rec Record) error {
	if err := s.initDB(ctx); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transfer_history
			(id, started_at, finished_at, files, bytes, dev_environment, base_remote_path, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.StartedAt, rec.FinishedAt, rec.Files, rec.Bytes,
		rec.DevEnvironment, rec.BaseRemotePath, rec.Error,
	)
	if err != nil {
		log.Error("failed to save transfer history %s: %v", rec.ID, err)
		return err
	}
	return nil
}

func (s *MySQLStore) List(ctx context.Context, limit int) ([]Record, error) {
	if err := s.initDB(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultMemoryCapacity
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, files, bytes, dev_environment, base_remote_path, error
		FROM transfer_history ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.StartedAt, &rec.FinishedAt, &rec.Files, &rec.Bytes,
			&rec.DevEnvironment, &rec.BaseRemotePath, &rec.Error); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *MySQLStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
