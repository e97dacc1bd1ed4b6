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

package transfer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalDialer writes remote paths beneath root on the local disk. It backs
// dry runs and tests where no SSH host is reachable.
func LocalDialer(root string) Dialer {
	return func(context.Context) (Sender, error) {
		if root == "" {
			return nil, fmt.Errorf("local transfer root is not set")
		}
		if err := os.MkdirAll(root, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create local transfer root: %w", err)
		}
		return &localSender{root: root}, nil
	}
}

type localSender struct {
	root string
}

func (s *localSender) Send(ctx context.Context, localPath, remotePath string) (int64, error) {
	target := filepath.Join(s.root, filepath.FromSlash(remotePath))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create target directory: %w", err)
	}

	src, err := os.Open(localPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open local file: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, scpFileMode)
	if err != nil {
		return 0, fmt.Errorf("failed to create target file: %w", err)
	}

	n, err := io.Copy(dst, contextReader(ctx, src))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("failed to copy file: %w", err)
	}
	return n, nil
}

func (s *localSender) Close() error { return nil }
