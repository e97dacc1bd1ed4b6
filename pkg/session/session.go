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

// Package session keeps the browsing state of one client: the latest scan,
// its tree and the file selection.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/devsync/syncd/pkg/filetree"
	"github.com/devsync/syncd/pkg/pathmatch"
	"github.com/devsync/syncd/pkg/planner"
	"github.com/devsync/syncd/pkg/selection"
)

var (
	ErrPathNotFound = errors.New("path not found in tree")
	ErrNotFile      = errors.New("path is not a file")
)

// Session is safe for concurrent use.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu          sync.Mutex
	directories []string
	baseRoot    string
	files       []filetree.ScannedFile
	scannedAt   time.Time
	tree        *filetree.Directory
	selected    *selection.Set
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		CreatedAt: now,
		tree:      filetree.NewRoot(),
		selected:  selection.NewSet(),
	}
}

// ApplyScan replaces the tree with one built from files, rooted at the first
// scanned directory. The selection is left as is; see PruneSelection.
func (s *Session) ApplyScan(directories []string, files []filetree.ScannedFile, now time.Time) {
	baseRoot := ""
	if len(directories) > 0 {
		baseRoot = directories[0]
	}
	tree := filetree.Build(files, baseRoot)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.directories = append([]string(nil), directories...)
	s.baseRoot = baseRoot
	s.files = files
	s.scannedAt = now
	s.tree = tree
}

// BaseRoot is the directory the current tree is relative to.
func (s *Session) BaseRoot() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseRoot
}

// Files returns the latest scan result.
func (s *Session) Files() []filetree.ScannedFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.files
}

// Summary describes a session without its tree.
type Summary struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	Directories []string  `json:"directories"`
	BaseRoot    string    `json:"baseRoot"`
	ScannedAt   time.Time `json:"scannedAt,omitzero"`
	FileCount   int       `json:"fileCount"`
	Selected    int       `json:"selected"`
}

func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summary{
		ID:          s.ID,
		CreatedAt:   s.CreatedAt,
		Directories: s.directories,
		BaseRoot:    s.baseRoot,
		ScannedAt:   s.scannedAt,
		FileCount:   len(s.files),
		Selected:    s.selected.Len(),
	}
}

// ToggleFile flips a single file of the current tree.
func (s *Session) ToggleFile(path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := filetree.FindByPath(s.tree, path)
	if n == nil {
		return false, fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	if _, ok := n.(*filetree.File); !ok {
		return false, fmt.Errorf("%w: %s", ErrNotFile, path)
	}
	s.selected.ToggleFile(path)
	return s.selected.Has(path), nil
}

// ToggleSubtree flips every file under path, or the whole tree for "".
func (s *Session) ToggleSubtree(path string) (selection.TriState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := filetree.FindByPath(s.tree, path)
	if n == nil {
		return selection.None, fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	s.selected.ToggleSubtree(n)
	return s.selected.State(n), nil
}

// State reports the tri-state of the node at path.
func (s *Session) State(path string) (selection.TriState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := filetree.FindByPath(s.tree, path)
	if n == nil {
		return selection.None, fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	return s.selected.State(n), nil
}

// Selected lists the selected paths in the order they were selected.
func (s *Session) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected.Paths()
}

// PruneSelection drops selected paths that the current tree no longer holds.
func (s *Session) PruneSelection() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected.Prune(s.tree)
}

func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected.Clear()
}

// Deselect drops paths from the selection, leaving everything else selected.
func (s *Session) Deselect(paths []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected.Remove(paths...)
}

// Plan maps the current selection onto destBase.
func (s *Session) Plan(mode planner.Mode, destBase string, table pathmatch.Table) ([]planner.Item, error) {
	if err := planner.CheckDestination(destBase); err != nil {
		return nil, err
	}
	return planner.Plan(s.Selected(), mode, destBase, table), nil
}

// NodeView is the JSON shape of the tree, annotated with selection state.
type NodeView struct {
	Name         string             `json:"name"`
	Path         string             `json:"path"`
	Type         string             `json:"type"`
	State        selection.TriState `json:"state"`
	Size         int64              `json:"size,omitempty"`
	LastModified *time.Time         `json:"lastModified,omitempty"`
	FileCount    int                `json:"fileCount,omitempty"`
	Children     []*NodeView        `json:"children,omitempty"`
}

const (
	TypeDirectory = "directory"
	TypeFile      = "file"
)

// Tree renders the current tree.
func (s *Session) Tree() *NodeView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(s.tree)
}

func (s *Session) view(n filetree.Node) *NodeView {
	v := &NodeView{
		Name:  n.Name(),
		Path:  n.Path(),
		State: s.selected.State(n),
	}
	switch node := n.(type) {
	case *filetree.File:
		v.Type = TypeFile
		v.Size = node.Size
		mod := node.ModTime
		v.LastModified = &mod
	case *filetree.Directory:
		v.Type = TypeDirectory
		v.FileCount = filetree.CountFiles(node)
		for _, child := range node.Children() {
			v.Children = append(v.Children, s.view(child))
		}
	}
	return v
}
