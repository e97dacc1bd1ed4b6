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

package filetree

import "strings"

const separator = "/"

// segment is one non-empty path component and the byte offset, within the
// original file path, just past its end.
type segment struct {
	name string
	end  int
}

// Build converts scan results into a tree rooted at baseRoot. The result
// depends only on the input order and baseRoot.
func Build(files []ScannedFile, baseRoot string) *Directory {
	root := NewRoot()
	for _, file := range files {
		insert(root, file, baseRoot)
	}
	return root
}

func insert(root *Directory, file ScannedFile, baseRoot string) {
	segments := relativeSegments(file.Path, baseRoot)
	if len(segments) == 0 {
		return
	}

	current := root
	last := len(segments) - 1
	for _, seg := range segments[:last] {
		child, ok := current.children[seg.name]
		dir, isDir := child.(*Directory)
		if !ok || !isDir {
			dir = newDirectory(file.Path[:seg.end], seg.name)
			current.put(dir)
		}
		current = dir
	}

	current.put(&File{
		path:    file.Path,
		name:    segments[last].name,
		Size:    file.Size,
		ModTime: file.LastModified,
	})
}

// relativeSegments strips one leading baseRoot from path and returns the
// remaining non-empty components.
func relativeSegments(path, baseRoot string) []segment {
	rel := strings.TrimPrefix(path, baseRoot)
	offset := len(path) - len(rel)

	var segments []segment
	pos := 0
	for pos <= len(rel) {
		next := strings.Index(rel[pos:], separator)
		end := len(rel)
		if next >= 0 {
			end = pos + next
		}
		if end > pos {
			segments = append(segments, segment{name: rel[pos:end], end: offset + end})
		}
		pos = end + len(separator)
	}
	return segments
}

// CheckRoots lists paths that do not start with baseRoot. Build accepts them
// anyway; callers that want stricter input can reject or report these.
func CheckRoots(files []ScannedFile, baseRoot string) []string {
	var outside []string
	for _, file := range files {
		if !strings.HasPrefix(file.Path, baseRoot) {
			outside = append(outside, file.Path)
		}
	}
	return outside
}
