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

// Package planner maps selected local files onto remote destination paths.
package planner

import (
	"errors"
	"strings"

	"github.com/devsync/syncd/pkg/pathmatch"
)

const separator = "/"

// Mode selects how remote paths are derived.
type Mode int

const (
	// Direct drops every file straight into the destination directory.
	Direct Mode = iota
	// DevRemap keeps the tree below the first matching common path.
	DevRemap
)

func (m Mode) String() string {
	if m == DevRemap {
		return "dev-remap"
	}
	return "direct"
}

// ModeFor maps the transfer request flag onto a Mode.
func ModeFor(isDevEnvironment bool) Mode {
	if isDevEnvironment {
		return DevRemap
	}
	return Direct
}

// Item is one local file and where it should land remotely.
type Item struct {
	LocalPath  string `json:"localPath"`
	RemotePath string `json:"remotePath"`
}

var ErrEmptyDestination = errors.New("remote destination path is empty")

// CheckDestination is the caller-side precondition for Plan.
func CheckDestination(destBase string) error {
	if strings.TrimSpace(destBase) == "" {
		return ErrEmptyDestination
	}
	return nil
}

// CleanBase strips trailing separators from a destination path.
func CleanBase(destBase string) string {
	return strings.TrimRight(destBase, separator)
}

// Plan produces one item per selected path, in the same order.
// An unmatched path in DevRemap mode falls back to Direct placement.
func Plan(selected []string, mode Mode, destBase string, table pathmatch.Table) []Item {
	base := CleanBase(destBase)
	items := make([]Item, 0, len(selected))
	for _, local := range selected {
		items = append(items, Item{
			LocalPath:  local,
			RemotePath: remotePath(local, mode, base, table),
		})
	}
	return items
}

func remotePath(local string, mode Mode, base string, table pathmatch.Table) string {
	if mode == DevRemap {
		if m, ok := pathmatch.FindCommonPrefix(local, table); ok {
			return base + separator + m.Tail
		}
	}
	return base + separator + lastSegment(local)
}

func lastSegment(p string) string {
	return p[strings.LastIndex(p, separator)+1:]
}

// Preview shows where files scanned under scanRoot would land in DevRemap
// mode, e.g. "/dest/fxos/cli/bin/...". It returns "" when destBase is empty.
func Preview(scanRoot, destBase string, table pathmatch.Table) string {
	if destBase == "" {
		return ""
	}
	base := CleanBase(destBase)
	for _, entry := range table {
		if entry.Local != "" && strings.Contains(scanRoot, entry.Local) {
			return base + separator + entry.Local + "/..."
		}
	}
	return base + "/..."
}
