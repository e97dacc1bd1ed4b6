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

// Package transfer copies planned files to their destination, one at a time.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/util/retry"

	"github.com/devsync/syncd/pkg/log"
	"github.com/devsync/syncd/pkg/planner"
)

// Sender delivers single files over one open connection.
type Sender interface {
	Send(ctx context.Context, localPath, remotePath string) (int64, error)
	Close() error
}

// Dialer opens a Sender.
type Dialer func(ctx context.Context) (Sender, error)

// DefaultBackoff retries connection failures a few times before giving up.
var DefaultBackoff = wait.Backoff{
	Steps:    3,
	Duration: 500 * time.Millisecond,
	Factor:   2.0,
	Jitter:   0.1,
}

// ErrConnect wraps failures to reach the destination.
var ErrConnect = errors.New("failed to connect")

// FileError reports the file that stopped a transfer.
type FileError struct {
	Index int
	Item  planner.Item
	Err   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("failed to transfer file %s: %v", e.Item.LocalPath, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Result summarises a transfer.
type Result struct {
	Files    int           `json:"files"`
	Bytes    int64         `json:"bytes"`
	Duration time.Duration `json:"duration"`
}

// Hooks observe transfer progress. Any of them may be nil.
type Hooks struct {
	OnStart     func(total int)
	OnFileStart func(index int, item planner.Item)
	OnFileDone  func(index int, item planner.Item, bytes int64)
	OnFileError func(index int, item planner.Item, err error)
	OnComplete  func(result Result, err error)
}

// Service runs transfers through a Dialer.
type Service struct {
	dial    Dialer
	backoff wait.Backoff
}

func NewService(dial Dialer) *Service {
	return &Service{dial: dial, backoff: DefaultBackoff}
}

// WithBackoff overrides the connection retry policy.
func (s *Service) WithBackoff(backoff wait.Backoff) *Service {
	s.backoff = backoff
	return s
}

// Transfer sends items in order over a single connection and stops at the
// first failure. Files sent before the failure stay on the destination.
func (s *Service) Transfer(ctx context.Context, items []planner.Item, hooks Hooks) (result Result, err error) {
	start := time.Now()
	defer func() {
		result.Duration = time.Since(start)
		if hooks.OnComplete != nil {
			hooks.OnComplete(result, err)
		}
	}()

	if hooks.OnStart != nil {
		hooks.OnStart(len(items))
	}
	if len(items) == 0 {
		return result, nil
	}

	sender, err := s.connect(ctx)
	if err != nil {
		return result, err
	}
	defer func() {
		if cerr := sender.Close(); cerr != nil {
			log.Warn("failed to close transfer connection: %v", cerr)
		}
	}()

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if hooks.OnFileStart != nil {
			hooks.OnFileStart(i, item)
		}

		n, err := sender.Send(ctx, item.LocalPath, item.RemotePath)
		if err != nil {
			if hooks.OnFileError != nil {
				hooks.OnFileError(i, item, err)
			}
			return result, &FileError{Index: i, Item: item, Err: err}
		}

		result.Files++
		result.Bytes += n
		log.Debug("transferred %s -> %s (%d bytes)", item.LocalPath, item.RemotePath, n)
		if hooks.OnFileDone != nil {
			hooks.OnFileDone(i, item, n)
		}
	}
	return result, nil
}

func (s *Service) connect(ctx context.Context) (Sender, error) {
	var sender Sender
	err := retry.OnError(s.backoff, func(err error) bool {
		if ctx.Err() != nil {
			return false
		}
		var netErr net.Error
		retriable := errors.As(err, &netErr)
		if retriable {
			log.Warn("connection attempt failed, retrying: %v", err)
		}
		return retriable
	}, func() error {
		var err error
		sender, err = s.dial(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	return sender, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// contextReader aborts an in-flight copy once ctx is done.
func contextReader(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}
