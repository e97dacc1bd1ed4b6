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

// Package scanner walks directories for recently modified files.
package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/devsync/syncd/pkg/filetree"
	"github.com/devsync/syncd/pkg/log"
	"github.com/devsync/syncd/pkg/util/glob"
)

// DefaultDaysToLookBack applies when a request leaves the window unset.
const DefaultDaysToLookBack = 7

// Request describes one scan.
type Request struct {
	Directories    []string
	DaysToLookBack int
	Include        []string
	Exclude        []string
}

// Scan returns every non-directory entry under the requested directories that
// was modified within the look-back window, most recent first. A walk error
// is logged and ends that directory only; files found before it are kept.
func Scan(ctx context.Context, req Request, now time.Time) ([]filetree.ScannedFile, error) {
	filter, err := glob.NewFilter(req.Include, req.Exclude)
	if err != nil {
		return nil, err
	}

	days := req.DaysToLookBack
	if days <= 0 {
		days = DefaultDaysToLookBack
	}
	window := float64(days)

	files := make([]filetree.ScannedFile, 0, 64)
	for _, dir := range req.Directories {
		found, err := scanDir(ctx, dir, window, filter, now)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err != nil {
			log.Error("error scanning directory %s: %v", dir, err)
		}
		files = append(files, found...)
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].LastModified.After(files[j].LastModified)
	})
	return files, nil
}

func scanDir(ctx context.Context, dir string, window float64, filter *glob.Filter, now time.Time) ([]filetree.ScannedFile, error) {
	var found []filetree.ScannedFile
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		age := now.Sub(info.ModTime()).Hours() / 24
		if age > window {
			return nil
		}

		if !filter.Empty() {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			if !filter.Match(filepath.ToSlash(rel)) {
				return nil
			}
		}

		found = append(found, filetree.ScannedFile{
			Path:         path,
			LastModified: info.ModTime(),
			Size:         info.Size(),
		})
		return nil
	})
	return found, err
}
