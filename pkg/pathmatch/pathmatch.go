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

// Package pathmatch locates known source-tree prefixes inside local paths.
package pathmatch

import (
	"errors"
	"fmt"
	"strings"
)

// CommonPath is one entry of the development remap table.
type CommonPath struct {
	Local  string `json:"local"`
	Remote string `json:"remote,omitempty"`
}

// Table is an ordered list of common paths. Order decides which entry wins.
type Table []CommonPath

// Match describes where a table entry was found inside a path.
type Match struct {
	Entry CommonPath
	// Index is the byte offset of the first occurrence of Entry.Local.
	Index int
	// Tail is path[Index:], the matched prefix included.
	Tail string
}

var ErrEmptyLocal = errors.New("common path has empty local value")

// FindCommonPrefix returns the first table entry whose Local occurs anywhere
// in path.
func FindCommonPrefix(path string, table Table) (Match, bool) {
	for _, entry := range table {
		idx := strings.Index(path, entry.Local)
		if idx < 0 {
			continue
		}
		return Match{
			Entry: entry,
			Index: idx,
			Tail:  path[idx:],
		}, true
	}
	return Match{}, false
}

// Validate rejects entries that would match every path.
func (t Table) Validate() error {
	for i, entry := range t {
		if entry.Local == "" {
			return fmt.Errorf("entry %d: %w", i, ErrEmptyLocal)
		}
	}
	return nil
}

// Locals returns the Local value of every entry, in order.
func (t Table) Locals() []string {
	locals := make([]string, 0, len(t))
	for _, entry := range t {
		locals = append(locals, entry.Local)
	}
	return locals
}
