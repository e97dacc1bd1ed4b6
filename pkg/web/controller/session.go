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
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devsync/syncd/pkg/filetree"
	"github.com/devsync/syncd/pkg/log"
	"github.com/devsync/syncd/pkg/planner"
	"github.com/devsync/syncd/pkg/session"
	"github.com/devsync/syncd/pkg/web/model"
)

// SessionController drives the scan, tree and selection state of a client.
type SessionController struct {
	*basicController
}

func NewSessionController(ctx *gin.Context) *SessionController {
	return &SessionController{basicController: newBasicController(ctx)}
}

func (c *SessionController) CreateSession() {
	s := sessions.Create()
	log.Info("created session %s", s.ID)
	c.ctx.JSON(http.StatusCreated, s.Summary())
}

func (c *SessionController) GetSession() {
	s, ok := c.session()
	if !ok {
		return
	}
	c.RespondSuccess(s.Summary())
}

func (c *SessionController) DeleteSession() {
	id := c.ctx.Param("sessionId")
	if err := sessions.Delete(id); err != nil {
		c.respondSessionError(err)
		return
	}
	c.RespondSuccess(nil)
}

// Scan rescans the directories and rebuilds the session tree. The selection
// survives the rescan.
func (c *SessionController) Scan() {
	s, ok := c.session()
	if !ok {
		return
	}
	request, ok := c.bindScanRequest()
	if !ok {
		return
	}
	files, ok := c.scan(request)
	if !ok {
		return
	}

	s.ApplyScan(request.Directories, files, time.Now())
	outside := filetree.CheckRoots(files, s.BaseRoot())
	if len(outside) > 0 {
		log.Warn("session %s: %d files lie outside %s", s.ID, len(outside), s.BaseRoot())
	}

	c.RespondSuccess(model.SessionScanResponse{
		Session:     s.Summary(),
		Files:       files,
		OutsideRoot: outside,
	})
}

func (c *SessionController) GetTree() {
	s, ok := c.session()
	if !ok {
		return
	}
	c.RespondSuccess(s.Tree())
}

func (c *SessionController) ToggleFile() {
	s, ok := c.session()
	if !ok {
		return
	}
	request, ok := c.bindToggleRequest()
	if !ok {
		return
	}
	if err := request.ValidateFile(); err != nil {
		c.RespondError(
			http.StatusBadRequest,
			model.ErrorCodeInvalidRequest,
			fmt.Sprintf("invalid request, validation error %v", err),
		)
		return
	}

	selected, err := s.ToggleFile(request.Path)
	if err != nil {
		c.respondSessionError(err)
		return
	}
	c.RespondSuccess(model.ToggleFileResponse{Path: request.Path, Selected: selected})
}

func (c *SessionController) ToggleSubtree() {
	s, ok := c.session()
	if !ok {
		return
	}
	request, ok := c.bindToggleRequest()
	if !ok {
		return
	}

	state, err := s.ToggleSubtree(request.Path)
	if err != nil {
		c.respondSessionError(err)
		return
	}
	c.RespondSuccess(model.ToggleSubtreeResponse{Path: request.Path, State: state})
}

func (c *SessionController) GetSelection() {
	s, ok := c.session()
	if !ok {
		return
	}
	paths := s.Selected()
	c.RespondSuccess(model.SelectionResponse{Paths: paths, Count: len(paths)})
}

func (c *SessionController) PruneSelection() {
	s, ok := c.session()
	if !ok {
		return
	}
	removed := s.PruneSelection()
	c.RespondSuccess(model.PruneResponse{Removed: removed, Remaining: len(s.Selected())})
}

func (c *SessionController) ClearSelection() {
	s, ok := c.session()
	if !ok {
		return
	}
	s.ClearSelection()
	c.RespondSuccess(nil)
}

// Transfer sends the current selection. Once every file arrived the sent
// paths are deselected; paths toggled on meanwhile stay selected.
func (c *SessionController) Transfer() {
	s, request, items, ok := c.planSelection()
	if !ok {
		return
	}
	NewTransferController(c.ctx).respondTransfer(items, request.IsDevEnvironment, request.BaseRemotePath, deselectSent(s, items))
}

// TransferStream is Transfer with SSE progress.
func (c *SessionController) TransferStream() {
	s, request, items, ok := c.planSelection()
	if !ok {
		return
	}
	NewTransferController(c.ctx).streamTransfer(items, request.IsDevEnvironment, request.BaseRemotePath, deselectSent(s, items))
}

func deselectSent(s *session.Session, items []planner.Item) func() {
	return func() {
		sent := make([]string, 0, len(items))
		for _, item := range items {
			sent = append(sent, item.LocalPath)
		}
		s.Deselect(sent)
	}
}

func (c *SessionController) planSelection() (*session.Session, *model.SessionTransferRequest, []planner.Item, bool) {
	s, ok := c.session()
	if !ok {
		return nil, nil, nil, false
	}

	var request model.SessionTransferRequest
	if !c.bindRequest(&request) {
		return nil, nil, nil, false
	}

	items, err := s.Plan(planner.ModeFor(request.IsDevEnvironment), request.BaseRemotePath, commonPaths)
	if err != nil {
		c.RespondError(http.StatusBadRequest, model.ErrorCodeNoDestination, err.Error())
		return nil, nil, nil, false
	}
	return s, &request, items, true
}

func (c *SessionController) session() (*session.Session, bool) {
	id := c.ctx.Param("sessionId")
	if id == "" {
		c.RespondError(
			http.StatusBadRequest,
			model.ErrorCodeMissingQuery,
			"missing path parameter 'sessionId'",
		)
		return nil, false
	}
	s, err := sessions.Get(id)
	if err != nil {
		c.respondSessionError(err)
		return nil, false
	}
	return s, true
}

func (c *SessionController) bindToggleRequest() (*model.ToggleRequest, bool) {
	var request model.ToggleRequest
	if err := c.bindJSON(&request); err != nil {
		c.respondParseError(err)
		return nil, false
	}
	return &request, true
}

func (c *SessionController) respondSessionError(err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, session.ErrPathNotFound):
		c.RespondError(http.StatusNotFound, model.ErrorCodeNotFound, err.Error())
	case errors.Is(err, session.ErrNotFile):
		c.RespondError(http.StatusBadRequest, model.ErrorCodeInvalidRequest, err.Error())
	default:
		c.RespondError(http.StatusInternalServerError, model.ErrorCodeUnknown, err.Error())
	}
}
