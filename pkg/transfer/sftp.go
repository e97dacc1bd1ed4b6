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
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// remoteFS is the part of an SFTP session the sender needs.
type remoteFS interface {
	MkdirAll(path string) error
	Create(path string) (io.WriteCloser, error)
	Close() error
}

type sftpFS struct {
	*sftp.Client
}

func (fs sftpFS) Create(path string) (io.WriteCloser, error) {
	return fs.Client.Create(path)
}

type sftpSender struct {
	client *ssh.Client
	sftp   remoteFS
}

func (s *sftpSender) Send(ctx context.Context, localPath, remotePath string) (int64, error) {
	if err := s.sftp.MkdirAll(path.Dir(remotePath)); err != nil {
		return 0, fmt.Errorf("failed to create remote directory: %w", err)
	}

	localFile, err := os.Open(localPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open local file: %w", err)
	}
	defer localFile.Close()

	remoteFile, err := s.sftp.Create(remotePath)
	if err != nil {
		return 0, fmt.Errorf("failed to create remote file: %w", err)
	}

	n, err := io.Copy(remoteFile, contextReader(ctx, localFile))
	if err != nil {
		remoteFile.Close()
		return n, fmt.Errorf("failed to copy file: %w", err)
	}
	if err := remoteFile.Close(); err != nil {
		return n, fmt.Errorf("failed to close remote file: %w", err)
	}
	return n, nil
}

func (s *sftpSender) Close() error {
	err := s.sftp.Close()
	if s.client != nil {
		err = errors.Join(err, s.client.Close())
	}
	return err
}
