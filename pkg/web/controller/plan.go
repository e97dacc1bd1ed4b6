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
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devsync/syncd/pkg/planner"
	"github.com/devsync/syncd/pkg/web/model"
)

// PlanController computes remote paths without sending anything.
type PlanController struct {
	*basicController
}

func NewPlanController(ctx *gin.Context) *PlanController {
	return &PlanController{basicController: newBasicController(ctx)}
}

// Plan maps local paths to remote paths.
func (c *PlanController) Plan() {
	var request model.PlanRequest
	if !c.bindRequest(&request) {
		return
	}

	mode := planner.ModeFor(request.IsDevEnvironment)
	c.RespondSuccess(model.PlanResponse{
		Mode:  mode.String(),
		Items: planner.Plan(request.Paths, mode, request.BaseRemotePath, commonPaths),
	})
}

// Preview shows where files scanned under root would land in dev mode.
func (c *PlanController) Preview() {
	root := c.ctx.Query("root")
	if root == "" {
		c.RespondError(
			http.StatusBadRequest,
			model.ErrorCodeMissingQuery,
			"missing query parameter 'root'",
		)
		return
	}

	c.RespondSuccess(model.PreviewResponse{
		Example: planner.Preview(root, c.ctx.Query("base"), commonPaths),
	})
}
