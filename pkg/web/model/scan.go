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

	"github.com/devsync/syncd/pkg/filetree"
	"github.com/devsync/syncd/pkg/scanner"
	"github.com/devsync/syncd/pkg/session"
)

// ScanRequest asks for files modified in the last DaysToLookBack days.
type ScanRequest struct {
	Directories    []string `json:"directories" validate:"required,min=1,dive,required"`
	DaysToLookBack int      `json:"daysToLookBack,omitempty" validate:"gte=0"`
	Include        []string `json:"include,omitempty" validate:"omitempty,dive,required"`
	Exclude        []string `json:"exclude,omitempty" validate:"omitempty,dive,required"`
}

func (r *ScanRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

func (r *ScanRequest) ToScannerRequest() scanner.Request {
	return scanner.Request{
		Directories:    r.Directories,
		DaysToLookBack: r.DaysToLookBack,
		Include:        r.Include,
		Exclude:        r.Exclude,
	}
}

// SessionScanResponse is returned after a session rescan.
type SessionScanResponse struct {
	Session     session.Summary        `json:"session"`
	Files       []filetree.ScannedFile `json:"files"`
	OutsideRoot []string               `json:"outsideRoot,omitempty"`
}
