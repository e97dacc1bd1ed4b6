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

	"github.com/gin-gonic/gin"

	"github.com/devsync/syncd/pkg/flag"
	"github.com/devsync/syncd/pkg/history"
	"github.com/devsync/syncd/pkg/web/model"
)

// HistoryController lists past transfers.
type HistoryController struct {
	*basicController
}

func NewHistoryController(ctx *gin.Context) *HistoryController {
	return &HistoryController{basicController: newBasicController(ctx)}
}

// ListTransfers returns the most recent transfers, newest first.
func (c *HistoryController) ListTransfers() {
	limit := c.QueryInt64(c.ctx.Query("limit"), int64(flag.HistoryLimit))
	if limit < 0 {
		limit = 0
	}

	records, err := historyStore.List(c.ctx.Request.Context(), int(limit))
	if err != nil {
		c.RespondError(
			http.StatusInternalServerError,
			model.ErrorCodeRuntimeError,
			fmt.Sprintf("error reading transfer history. %v", err),
		)
		return
	}
	if records == nil {
		records = []history.Record{}
	}
	c.RespondSuccess(records)
}
