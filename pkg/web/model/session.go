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

package model

import (
	"github.com/go-playground/validator/v10"

	"github.com/devsync/syncd/pkg/selection"
)

// ToggleRequest names a tree node. For subtree toggles an empty path means
// the whole tree.
type ToggleRequest struct {
	Path string `json:"path"`
}

// ValidateFile requires a path, since the root is never a file.
func (r *ToggleRequest) ValidateFile() error {
	validate := validator.New()
	return validate.Var(r.Path, "required")
}

type ToggleFileResponse struct {
	Path     string `json:"path"`
	Selected bool   `json:"selected"`
}

type ToggleSubtreeResponse struct {
	Path  string             `json:"path"`
	State selection.TriState `json:"state"`
}

type SelectionResponse struct {
	Paths []string `json:"paths"`
	Count int      `json:"count"`
}

type PruneResponse struct {
	Removed   int `json:"removed"`
	Remaining int `json:"remaining"`
}
