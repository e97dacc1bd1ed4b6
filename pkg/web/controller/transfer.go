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

package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devsync/syncd/pkg/flag"
	"github.com/devsync/syncd/pkg/planner"
	"github.com/devsync/syncd/pkg/transfer"
	"github.com/devsync/syncd/pkg/web/model"
)

// TransferController pushes files to the destination host.
type TransferController struct {
	*basicController

	// chunkWriter serializes SSE event writes to prevent interleaved output.
	chunkWriter sync.Mutex
	// pings tracks the keepalive goroutine of a stream.
	pings sync.WaitGroup
}

func NewTransferController(ctx *gin.Context) *TransferController {
	return &TransferController{
		basicController: newBasicController(ctx),
	}
}

// Transfer sends the requested files and answers once all are delivered or
// the first one fails.
func (c *TransferController) Transfer() {
	request, ok := c.bindTransferRequest()
	if !ok {
		return
	}
	c.respondTransfer(planRequestItems(request), request.IsDevEnvironment, request.BaseRemotePath, nil)
}

// TransferStream sends the requested files and streams per-file progress via
// SSE.
func (c *TransferController) TransferStream() {
	request, ok := c.bindTransferRequest()
	if !ok {
		return
	}
	c.streamTransfer(planRequestItems(request), request.IsDevEnvironment, request.BaseRemotePath, nil)
}

func (c *TransferController) bindTransferRequest() (*model.TransferRequest, bool) {
	var request model.TransferRequest
	if !c.bindRequest(&request) {
		return nil, false
	}
	return &request, true
}

// planRequestItems keeps remote paths the client already computed and plans
// the missing ones.
func planRequestItems(request *model.TransferRequest) []planner.Item {
	mode := planner.ModeFor(request.IsDevEnvironment)
	items := make([]planner.Item, 0, len(request.Files))
	for _, file := range request.Files {
		if file.RemotePath != "" {
			items = append(items, planner.Item{LocalPath: file.LocalPath, RemotePath: file.RemotePath})
			continue
		}
		items = append(items, planner.Plan([]string{file.LocalPath}, mode, request.BaseRemotePath, commonPaths)...)
	}
	return items
}

// respondTransfer runs the transfer in the request and calls onSuccess when
// every file arrived.
func (c *TransferController) respondTransfer(items []planner.Item, devEnvironment bool, baseRemotePath string, onSuccess func()) {
	result, err := runTransfer(c.ctx.Request.Context(), items, devEnvironment, baseRemotePath, transfer.Hooks{})
	if err != nil {
		c.respondTransferError(err)
		return
	}
	if onSuccess != nil {
		onSuccess()
	}
	c.RespondSuccess(model.NewTransferResponse(result))
}

func (c *TransferController) respondTransferError(err error) {
	var fileErr *transfer.FileError
	switch {
	case errors.As(err, &fileErr):
		c.RespondError(http.StatusInternalServerError, model.ErrorCodeTransferFailed, err.Error())
	case errors.Is(err, transfer.ErrConnect):
		c.RespondError(
			http.StatusInternalServerError,
			model.ErrorCodeConnectFailed,
			fmt.Sprintf("failed to create SSH client: %v", err),
		)
	default:
		c.RespondError(http.StatusInternalServerError, model.ErrorCodeRuntimeError, err.Error())
	}
}

func (c *TransferController) streamTransfer(items []planner.Item, devEnvironment bool, baseRemotePath string, onSuccess func()) {
	ctx, cancel := context.WithCancel(c.ctx.Request.Context())
	defer cancel()

	c.setupSSEResponse()
	_, err := runTransfer(ctx, items, devEnvironment, baseRemotePath, c.setServerEventsHandler(ctx))
	cancel()
	c.pings.Wait()
	if err == nil && onSuccess != nil {
		onSuccess()
	}

	time.Sleep(flag.ApiGracefulShutdownTimeout)
}
