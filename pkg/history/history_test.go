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
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(i int) Record {
	r := NewRecord(time.Unix(int64(i), 0), i%2 == 0, fmt.Sprintf("/dest/%d", i))
	r.Files = i
	return r
}

func TestNewRecordHasID(t *testing.T) {
	a, b := rec(1), rec(2)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "/dest/1", a.BaseRemotePath)
}

func TestMemoryStoreNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(5)
	for i := 1; i <= 3; i++ {
		require.NoError(t, s.Save(ctx, rec(i)))
	}

	got, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{3, 2, 1}, []int{got[0].Files, got[1].Files, got[2].Files})

	got, err = s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 3, got[0].Files)
}

func TestMemoryStoreWrapsAround(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(3)
	for i := 1; i <= 7; i++ {
		require.NoError(t, s.Save(ctx, rec(i)))
	}

	got, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{7, 6, 5}, []int{got[0].Files, got[1].Files, got[2].Files})
}

func TestMemoryStoreEmpty(t *testing.T) {
	got, err := NewMemoryStore(0).List(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewMySQLStoreParsesDSN(t *testing.T) {
	s, err := NewMySQLStore("syncd:secret@tcp(127.0.0.1:3306)/syncd")
	require.NoError(t, err)
	assert.True(t, strings.Contains(s.dsn, "parseTime=true"), s.dsn)
	assert.NoError(t, s.Close())

	_, err = NewMySQLStore("not a dsn")
	assert.Error(t, err)
}

func TestMySQLStoreRetriesFailedInit(t *testing.T) {
	s, err := NewMySQLStore("syncd:secret@tcp(127.0.0.1:1)/syncd?timeout=1s")
	require.NoError(t, err)
	defer s.Close()

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.List(cancelled, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	ctx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	err = s.Save(ctx, rec(1))
	require.Error(t, err)
	assert.NotErrorIs(t, err, context.Canceled)
	assert.False(t, s.initialized)
}
