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

import "iter"

// Files yields the path of every file reachable from n, recursing through
// directory children in stored order. A *File yields its own path.
func Files(n Node) iter.Seq[string] {
	return func(yield func(string) bool) {
		walkFiles(n, yield)
	}
}

func walkFiles(n Node, yield func(string) bool) bool {
	switch node := n.(type) {
	case *File:
		return yield(node.path)
	case *Directory:
		for _, name := range node.names {
			if !walkFiles(node.children[name], yield) {
				return false
			}
		}
	}
	return true
}

// CountFiles returns the number of files under n.
func CountFiles(n Node) int {
	count := 0
	for range Files(n) {
		count++
	}
	return count
}

// FindByPath resolves a node by its path (recursive). The root matches "".
func FindByPath(root Node, path string) Node {
	if root == nil {
		return nil
	}
	if root.Path() == path {
		return root
	}
	dir, ok := root.(*Directory)
	if !ok {
		return nil
	}
	for _, name := range dir.names {
		if found := FindByPath(dir.children[name], path); found != nil {
			return found
		}
	}
	return nil
}
