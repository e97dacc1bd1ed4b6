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
	"path"
	"strings"

	"golang.org/x/crypto/ssh"
)

const scpFileMode = 0o644

// scpSender drives the remote "scp -t" sink over a plain SSH session.
type scpSender struct {
	client *ssh.Client
}

func (s *scpSender) Send(ctx context.Context, localPath, remotePath string) (int64, error) {
	localFile, err := os.Open(localPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open local file: %w", err)
	}
	defer localFile.Close()

	stat, err := localFile.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat local file: %w", err)
	}

	if err := s.run("mkdir -p " + shellQuote(path.Dir(remotePath))); err != nil {
		return 0, fmt.Errorf("failed to create remote directory: %w", err)
	}

	session, err := s.client.NewSession()
	if err != nil {
		return 0, fmt.Errorf("failed to create SSH session: %w", err)
	}
	defer session.Close()

	stdin, err := session.StdinPipe()
	if err != nil {
		return 0, fmt.Errorf("failed to open scp stdin: %w", err)
	}
	if err := session.Start("scp -t " + shellQuote(remotePath)); err != nil {
		return 0, fmt.Errorf("failed to start scp: %w", err)
	}

	if _, err := io.WriteString(stdin, scpHeader(scpFileMode, stat.Size(), path.Base(remotePath))); err != nil {
		return 0, fmt.Errorf("failed to write scp header: %w", err)
	}
	n, err := io.Copy(stdin, contextReader(ctx, localFile))
	if err != nil {
		return n, fmt.Errorf("failed to copy file: %w", err)
	}
	if _, err := stdin.Write([]byte{0}); err != nil {
		return n, fmt.Errorf("failed to finish scp stream: %w", err)
	}
	stdin.Close()

	if err := session.Wait(); err != nil {
		return n, fmt.Errorf("scp failed: %w", err)
	}
	return n, nil
}

func (s *scpSender) run(cmd string) error {
	session, err := s.client.NewSession()
	if err != nil {
		return fmt.Errorf("failed to create SSH session: %w", err)
	}
	defer session.Close()
	return session.Run(cmd)
}

func (s *scpSender) Close() error {
	return s.client.Close()
}

// scpHeader is the single-file control line, e.g. "C0644 12 name.txt\n".
func scpHeader(mode os.FileMode, size int64, name string) string {
	return fmt.Sprintf("C%04o %d %s\n", mode.Perm(), size, name)
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
