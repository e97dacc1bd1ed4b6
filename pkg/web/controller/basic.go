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
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devsync/syncd/pkg/planner"
	"github.com/devsync/syncd/pkg/web/model"
)

type basicController struct {
	ctx *gin.Context
}

func newBasicController(ctx *gin.Context) *basicController {
	return &basicController{ctx: ctx}
}

// validatable is a request body that checks its own fields.
type validatable interface {
	Validate() error
}

// destined is a request that names a remote base path.
type destined interface {
	Destination() string
}

func (c *basicController) RespondError(status int, code model.ErrorCode, message ...string) {
	resp := model.ErrorResponse{Code: code}
	if len(message) > 0 {
		resp.Message = message[0]
	}
	c.ctx.JSON(status, resp)
}

// RespondSuccess writes data as JSON, or a bare 200 when data is nil.
func (c *basicController) RespondSuccess(data any) {
	if data == nil {
		c.ctx.Status(http.StatusOK)
		return
	}
	c.ctx.JSON(http.StatusOK, data)
}

func (c *basicController) QueryInt64(query string, defaultValue int64) int64 {
	val, err := strconv.ParseInt(query, 10, 64)
	if err != nil {
		return defaultValue
	}
	return val
}

func (c *basicController) bindJSON(target any) error {
	decoder := json.NewDecoder(c.ctx.Request.Body)
	return decoder.Decode(target)
}

// bindRequest decodes and validates the body. A missing destination is
// reported before any other validation error so clients see NO_DESTINATION.
func (c *basicController) bindRequest(target validatable) bool {
	if err := c.bindJSON(target); err != nil {
		c.respondParseError(err)
		return false
	}
	if d, ok := target.(destined); ok && !c.checkDestination(d.Destination()) {
		return false
	}
	if err := target.Validate(); err != nil {
		c.RespondError(
			http.StatusBadRequest,
			model.ErrorCodeInvalidRequest,
			fmt.Sprintf("invalid request, validation error %v", err),
		)
		return false
	}
	return true
}

func (c *basicController) respondParseError(err error) {
	c.RespondError(
		http.StatusBadRequest,
		model.ErrorCodeInvalidRequest,
		fmt.Sprintf("error parsing request, MAYBE invalid body format. %v", err),
	)
}

func (c *basicController) checkDestination(baseRemotePath string) bool {
	if err := planner.CheckDestination(baseRemotePath); err != nil {
		c.RespondError(http.StatusBadRequest, model.ErrorCodeNoDestination, err.Error())
		return false
	}
	return true
}

// PingHandler answers liveness probes.
func PingHandler(ctx *gin.Context) {
	ctx.String(http.StatusOK, "pong")
}
