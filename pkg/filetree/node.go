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

// Package filetree turns flat scan results into a directory tree.
package filetree

import "time"

// RootName is the name reserved for the tree root.
const RootName = "root"

// ScannedFile is one file reported by a scan.
type ScannedFile struct {
	Path         string    `json:"path"`
	LastModified time.Time `json:"lastModified"`
	Size         int64     `json:"size"`
}

// Node is either a *Directory or a *File.
type Node interface {
	Path() string
	Name() string
	isNode()
}

// Directory holds children keyed by name, in first-encountered order.
type Directory struct {
	path     string
	name     string
	names    []string
	children map[string]Node
}

// File is a leaf carrying the scanned metadata.
type File struct {
	path    string
	name    string
	Size    int64
	ModTime time.Time
}

func newDirectory(path, name string) *Directory {
	return &Directory{
		path:     path,
		name:     name,
		children: make(map[string]Node),
	}
}

// NewRoot returns an empty root directory.
func NewRoot() *Directory {
	return newDirectory("", RootName)
}

func (d *Directory) Path() string { return d.path }
func (d *Directory) Name() string { return d.name }
func (d *Directory) isNode()      {}

func (f *File) Path() string { return f.path }
func (f *File) Name() string { return f.name }
func (f *File) isNode()      {}

// Children returns the direct children in stored order.
func (d *Directory) Children() []Node {
	out := make([]Node, 0, len(d.names))
	for _, name := range d.names {
		out = append(out, d.children[name])
	}
	return out
}

// Child looks up a direct child by name.
func (d *Directory) Child(name string) (Node, bool) {
	n, ok := d.children[name]
	return n, ok
}

// Len returns the number of direct children.
func (d *Directory) Len() int {
	return len(d.names)
}

// put inserts or replaces a child. A replaced child keeps its position.
func (d *Directory) put(n Node) {
	if _, exists := d.children[n.Name()]; !exists {
		d.names = append(d.names, n.Name())
	}
	d.children[n.Name()] = n
}
