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
	"encoding/json"

	"github.com/go-playground/validator/v10"

	"github.com/devsync/syncd/pkg/planner"
	"github.com/devsync/syncd/pkg/transfer"
)

// TransferFile is one file to send. An empty RemotePath is planned from the
// request's base path and mode.
type TransferFile struct {
	LocalPath  string `json:"localPath" validate:"required"`
	RemotePath string `json:"remotePath,omitempty"`
}

// TransferRequest sends explicit files.
type TransferRequest struct {
	Files            []TransferFile `json:"files" validate:"dive"`
	IsDevEnvironment bool           `json:"isDevEnvironment"`
	BaseRemotePath   string         `json:"baseRemotePath" validate:"required"`
}

func (r *TransferRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

func (r *TransferRequest) Destination() string { return r.BaseRemotePath }

// SessionTransferRequest sends a session's current selection.
type SessionTransferRequest struct {
	IsDevEnvironment bool   `json:"isDevEnvironment"`
	BaseRemotePath   string `json:"baseRemotePath" validate:"required"`
}

func (r *SessionTransferRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

func (r *SessionTransferRequest) Destination() string { return r.BaseRemotePath }

// PlanRequest previews where paths would land.
type PlanRequest struct {
	Paths            []string `json:"paths" validate:"dive,required"`
	IsDevEnvironment bool     `json:"isDevEnvironment"`
	BaseRemotePath   string   `json:"baseRemotePath" validate:"required"`
}

func (r *PlanRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

func (r *PlanRequest) Destination() string { return r.BaseRemotePath }

type PlanResponse struct {
	Mode  string         `json:"mode"`
	Items []planner.Item `json:"items"`
}

type PreviewResponse struct {
	Example string `json:"example"`
}

type TransferResponse struct {
	Files      int   `json:"files"`
	Bytes      int64 `json:"bytes"`
	DurationMs int64 `json:"duration_ms"`
}

func NewTransferResponse(r transfer.Result) TransferResponse {
	return TransferResponse{
		Files:      r.Files,
		Bytes:      r.Bytes,
		DurationMs: r.Duration.Milliseconds(),
	}
}

type TransferEventType string

const (
	TransferEventTypeInit      TransferEventType = "init"
	TransferEventTypeFileStart TransferEventType = "file_start"
	TransferEventTypeFileDone  TransferEventType = "file_done"
	TransferEventTypeFileError TransferEventType = "file_error"
	TransferEventTypeComplete  TransferEventType = "transfer_complete"
	TransferEventTypeError     TransferEventType = "error"
	TransferEventTypePing      TransferEventType = "ping"
)

// TransferEvent is emitted to clients over SSE.
type TransferEvent struct {
	Type       TransferEventType `json:"type,omitempty"`
	Index      int               `json:"index,omitempty"`
	Total      int               `json:"total,omitempty"`
	LocalPath  string            `json:"localPath,omitempty"`
	RemotePath string            `json:"remotePath,omitempty"`
	Bytes      int64             `json:"bytes,omitempty"`
	Files      int               `json:"files,omitempty"`
	DurationMs int64             `json:"duration_ms,omitempty"`
	Error      string            `json:"error,omitempty"`
	Text       string            `json:"text,omitempty"`
	Timestamp  int64             `json:"timestamp,omitempty"`
}

// ToJSON serializes the event for streaming.
func (e TransferEvent) ToJSON() []byte {
	bytes, _ := json.Marshal(e)
	return bytes
}
