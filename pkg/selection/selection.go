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

// Package selection tracks selected file paths and derives tri-state
// selection for any subtree of a filetree.
package selection

import (
	"fmt"
	"slices"

	"github.com/devsync/syncd/pkg/filetree"
)

// TriState is the derived selection state of a subtree.
type TriState int

const (
	None TriState = iota
	Partial
	Full
)

func (s TriState) String() string {
	switch s {
	case Partial:
		return "partial"
	case Full:
		return "full"
	default:
		return "none"
	}
}

// MarshalText renders the state as its name in JSON payloads.
func (s TriState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *TriState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none":
		*s = None
	case "partial":
		*s = Partial
	case "full":
		*s = Full
	default:
		return fmt.Errorf("unknown selection state %q", text)
	}
	return nil
}

// Set holds selected file paths in the order they were added. It is not safe
// for concurrent use; callers own the synchronization.
type Set struct {
	order   []string
	members map[string]struct{}
}

// NewSet returns an empty selection.
func NewSet() *Set {
	return &Set{members: make(map[string]struct{})}
}

// Has reports whether path is selected.
func (s *Set) Has(path string) bool {
	_, ok := s.members[path]
	return ok
}

// Len returns the number of selected paths.
func (s *Set) Len() int {
	return len(s.order)
}

// Paths returns the selected paths in insertion order.
func (s *Set) Paths() []string {
	return slices.Clone(s.order)
}

func (s *Set) add(path string) {
	if s.Has(path) {
		return
	}
	s.members[path] = struct{}{}
	s.order = append(s.order, path)
}

func (s *Set) remove(path string) {
	if !s.Has(path) {
		return
	}
	delete(s.members, path)
	if i := slices.Index(s.order, path); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

// Remove deselects paths. Paths that are not selected are ignored.
func (s *Set) Remove(paths ...string) {
	for _, p := range paths {
		s.remove(p)
	}
}

// Clear drops every selected path.
func (s *Set) Clear() {
	s.order = nil
	clear(s.members)
}

// ToggleFile flips the membership of a single file path.
func (s *Set) ToggleFile(path string) {
	if s.Has(path) {
		s.remove(path)
		return
	}
	s.add(path)
}

// CollectFiles lists every file path under n in stored tree order.
func CollectFiles(n filetree.Node) []string {
	return slices.Collect(filetree.Files(n))
}

// IsFullySelected is true when n has at least one file and all of them are
// selected.
func (s *Set) IsFullySelected(n filetree.Node) bool {
	seen := false
	for p := range filetree.Files(n) {
		if !s.Has(p) {
			return false
		}
		seen = true
	}
	return seen
}

// IsPartiallySelected is true when some but not all files under n are
// selected.
func (s *Set) IsPartiallySelected(n filetree.Node) bool {
	return s.someSelected(n) && !s.IsFullySelected(n)
}

func (s *Set) someSelected(n filetree.Node) bool {
	for p := range filetree.Files(n) {
		if s.Has(p) {
			return true
		}
	}
	return false
}

// State combines the full and partial checks.
func (s *Set) State(n filetree.Node) TriState {
	switch {
	case s.IsFullySelected(n):
		return Full
	case s.IsPartiallySelected(n):
		return Partial
	default:
		return None
	}
}

// ToggleSubtree deselects every file under n when all are selected, and
// selects the rest otherwise.
func (s *Set) ToggleSubtree(n filetree.Node) {
	files := CollectFiles(n)
	if s.IsFullySelected(n) {
		for _, p := range files {
			s.remove(p)
		}
		return
	}
	for _, p := range files {
		s.add(p)
	}
}

// Prune drops selected paths that are not files of root and returns how many
// were removed.
func (s *Set) Prune(root filetree.Node) int {
	present := make(map[string]struct{})
	for p := range filetree.Files(root) {
		present[p] = struct{}{}
	}

	removed := 0
	kept := s.order[:0]
	for _, p := range s.order {
		if _, ok := present[p]; ok {
			kept = append(kept, p)
			continue
		}
		delete(s.members, p)
		removed++
	}
	s.order = kept
	return removed
}
