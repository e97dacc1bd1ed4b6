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
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devsync/syncd/pkg/filetree"
	"github.com/devsync/syncd/pkg/scanner"
	"github.com/devsync/syncd/pkg/web/model"
)

// ScanController lists recently modified files.
type ScanController struct {
	*basicController
}

func NewScanController(ctx *gin.Context) *ScanController {
	return &ScanController{basicController: newBasicController(ctx)}
}

// Scan walks the requested directories and returns matching files, most
// recent first.
func (c *ScanController) Scan() {
	request, ok := c.bindScanRequest()
	if !ok {
		return
	}

	files, ok := c.scan(request)
	if !ok {
		return
	}
	c.RespondSuccess(files)
}

func (c *basicController) bindScanRequest() (*model.ScanRequest, bool) {
	var request model.ScanRequest
	if !c.bindRequest(&request) {
		return nil, false
	}
	return &request, true
}

func (c *basicController) scan(request *model.ScanRequest) ([]filetree.ScannedFile, bool) {
	files, err := scanner.Scan(c.ctx.Request.Context(), request.ToScannerRequest(), time.Now())
	if err != nil {
		c.RespondError(
			http.StatusBadRequest,
			model.ErrorCodeInvalidRequest,
			fmt.Sprintf("error scanning directories. %v", err),
		)
		return nil, false
	}
	counters.RecordScan(len(files))
	return files, true
}
