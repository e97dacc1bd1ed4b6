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
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memFile struct {
	bytes.Buffer
	closeErr error
	closed   bool
}

func (f *memFile) Close() error {
	f.closed = true
	return f.closeErr
}

type memFS struct {
	dirs     []string
	files    map[string]*memFile
	closeErr error
}

func (fs *memFS) MkdirAll(path string) error {
	fs.dirs = append(fs.dirs, path)
	return nil
}

func (fs *memFS) Create(path string) (io.WriteCloser, error) {
	f := &memFile{closeErr: fs.closeErr}
	fs.files[path] = f
	return f, nil
}

func (fs *memFS) Close() error { return nil }

func writeLocal(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.py")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSFTPSenderWritesFile(t *testing.T) {
	fs := &memFS{files: map[string]*memFile{}}
	sender := &sftpSender{sftp: fs}

	n, err := sender.Send(context.Background(), writeLocal(t, "print(1)\n"), "/srv/app/main.py")
	require.NoError(t, err)
	assert.EqualValues(t, 9, n)
	assert.Equal(t, []string{"/srv/app"}, fs.dirs)
	require.Contains(t, fs.files, "/srv/app/main.py")
	assert.Equal(t, "print(1)\n", fs.files["/srv/app/main.py"].String())
	assert.True(t, fs.files["/srv/app/main.py"].closed)
	assert.NoError(t, sender.Close())
}

func TestSFTPSenderReportsCloseError(t *testing.T) {
	closeErr := errors.New("sftp: write failed on flush")
	fs := &memFS{files: map[string]*memFile{}, closeErr: closeErr}
	sender := &sftpSender{sftp: fs}

	_, err := sender.Send(context.Background(), writeLocal(t, "x"), "/srv/main.py")
	require.Error(t, err)
	assert.ErrorIs(t, err, closeErr)
}
