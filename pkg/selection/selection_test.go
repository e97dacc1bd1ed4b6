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

package selection

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devsync/syncd/pkg/filetree"
)

func buildTree(t *testing.T) (*filetree.Directory, *filetree.Directory) {
	t.Helper()
	root := filetree.Build([]filetree.ScannedFile{
		{Path: "/r/D/a"},
		{Path: "/r/D/b"},
		{Path: "/r/D/sub/c"},
		{Path: "/r/other.txt"},
	}, "/r")
	d, ok := filetree.FindByPath(root, "/r/D").(*filetree.Directory)
	require.True(t, ok)
	return root, d
}

func TestToggleFile(t *testing.T) {
	s := NewSet()
	s.ToggleFile("/r/D/a")
	assert.True(t, s.Has("/r/D/a"))
	assert.Equal(t, 1, s.Len())

	s.ToggleFile("/r/D/a")
	assert.False(t, s.Has("/r/D/a"))
	assert.Equal(t, 0, s.Len())
}

func TestPathsKeepInsertionOrder(t *testing.T) {
	s := NewSet()
	s.ToggleFile("c")
	s.ToggleFile("a")
	s.ToggleFile("b")
	s.ToggleFile("a")
	s.ToggleFile("a")
	assert.Equal(t, []string{"c", "b", "a"}, s.Paths())
}

func TestCollectFiles(t *testing.T) {
	root, d := buildTree(t)
	assert.Equal(t, []string{"/r/D/a", "/r/D/b", "/r/D/sub/c"}, CollectFiles(d))
	assert.Equal(t, []string{"/r/D/a", "/r/D/b", "/r/D/sub/c", "/r/other.txt"}, CollectFiles(root))
	assert.Equal(t, []string{"/r/other.txt"}, CollectFiles(filetree.FindByPath(root, "/r/other.txt")))
}

func TestTriState(t *testing.T) {
	_, d := buildTree(t)
	s := NewSet()

	assert.Equal(t, None, s.State(d))
	assert.False(t, s.IsFullySelected(d))
	assert.False(t, s.IsPartiallySelected(d))

	s.ToggleFile("/r/D/sub/c")
	assert.Equal(t, Partial, s.State(d))
	assert.True(t, s.IsPartiallySelected(d))
	assert.False(t, s.IsFullySelected(d))

	s.ToggleFile("/r/D/a")
	s.ToggleFile("/r/D/b")
	assert.Equal(t, Full, s.State(d))
	assert.True(t, s.IsFullySelected(d))
	assert.False(t, s.IsPartiallySelected(d))
}

func TestEmptyDirectoryIsNeitherFullNorPartial(t *testing.T) {
	s := NewSet()
	s.ToggleFile("/unrelated")
	empty := filetree.NewRoot()

	assert.False(t, s.IsFullySelected(empty))
	assert.False(t, s.IsPartiallySelected(empty))
	assert.Equal(t, None, s.State(empty))
}

func TestToggleSubtreeClosure(t *testing.T) {
	root, d := buildTree(t)
	s := NewSet()

	s.ToggleSubtree(d)
	assert.ElementsMatch(t, []string{"/r/D/a", "/r/D/b", "/r/D/sub/c"}, s.Paths())
	assert.Equal(t, Full, s.State(d))
	assert.Equal(t, Partial, s.State(root))

	s.ToggleSubtree(d)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, None, s.State(d))
}

func TestToggleSubtreePartialSelectsRest(t *testing.T) {
	_, d := buildTree(t)
	s := NewSet()
	s.ToggleFile("/r/D/b")

	s.ToggleSubtree(d)
	assert.Equal(t, Full, s.State(d))
	assert.Equal(t, []string{"/r/D/b", "/r/D/a", "/r/D/sub/c"}, s.Paths())
}

func TestToggleSubtreeLeavesOutsideSelection(t *testing.T) {
	_, d := buildTree(t)
	s := NewSet()
	s.ToggleFile("/r/other.txt")

	s.ToggleSubtree(d)
	s.ToggleSubtree(d)
	assert.Equal(t, []string{"/r/other.txt"}, s.Paths())
}

func TestToggleSubtreeOnFile(t *testing.T) {
	root, _ := buildTree(t)
	file := filetree.FindByPath(root, "/r/other.txt")
	s := NewSet()

	s.ToggleSubtree(file)
	assert.True(t, s.Has("/r/other.txt"))
	assert.Equal(t, Full, s.State(file))

	s.ToggleSubtree(file)
	assert.False(t, s.Has("/r/other.txt"))
}

func TestPrune(t *testing.T) {
	root, _ := buildTree(t)
	s := NewSet()
	s.ToggleFile("/gone/x")
	s.ToggleFile("/r/D/a")
	s.ToggleFile("/gone/y")

	removed := s.Prune(root)
	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"/r/D/a"}, s.Paths())
	assert.False(t, s.Has("/gone/x"))
}

func TestClear(t *testing.T) {
	s := NewSet()
	s.ToggleFile("a")
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Has("a"))
	s.ToggleFile("a")
	assert.Equal(t, []string{"a"}, s.Paths())
}

func TestRemove(t *testing.T) {
	s := NewSet()
	s.ToggleFile("a")
	s.ToggleFile("b")
	s.ToggleFile("c")
	s.Remove("a", "c", "missing")
	assert.Equal(t, []string{"b"}, s.Paths())
	assert.False(t, s.Has("a"))
}

func TestTriStateJSON(t *testing.T) {
	data, err := json.Marshal(map[string]TriState{"d": Partial})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"partial"}`, string(data))
}

func TestTriStateUnmarshal(t *testing.T) {
	var got struct {
		State TriState `json:"state"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"state":"full"}`), &got))
	assert.Equal(t, Full, got.State)

	assert.Error(t, json.Unmarshal([]byte(`{"state":"half"}`), &got))
}
