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
	"io"
	"net/http"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/devsync/syncd/pkg/log"
	"github.com/devsync/syncd/pkg/planner"
	"github.com/devsync/syncd/pkg/transfer"
	"github.com/devsync/syncd/pkg/util/safego"
	"github.com/devsync/syncd/pkg/web/model"
)

var sseHeaders = map[string]string{
	"Content-Type":      "text/event-stream",
	"Cache-Control":     "no-cache",
	"Connection":        "keep-alive",
	"X-Accel-Buffering": "no",
}

const pingInterval = 3 * time.Second

func (c *basicController) setupSSEResponse() {
	for key, value := range sseHeaders {
		c.ctx.Writer.Header().Set(key, value)
	}
	if flusher, ok := c.ctx.Writer.(http.Flusher); ok {
		flusher.Flush()
	}
}

// setServerEventsHandler adapts transfer hooks to SSE events.
func (c *TransferController) setServerEventsHandler(ctx context.Context) transfer.Hooks {
	return transfer.Hooks{
		OnStart: func(total int) {
			payload := model.TransferEvent{
				Type:      model.TransferEventTypeInit,
				Total:     total,
				Timestamp: time.Now().UnixMilli(),
			}.ToJSON()

			c.writeSingleEvent("OnStart", payload, true)

			c.pings.Add(1)
			safego.Go(func() {
				defer c.pings.Done()
				c.ping(ctx)
			})
		},
		OnFileStart: func(index int, item planner.Item) {
			payload := model.TransferEvent{
				Type:       model.TransferEventTypeFileStart,
				Index:      index,
				LocalPath:  item.LocalPath,
				RemotePath: item.RemotePath,
				Timestamp:  time.Now().UnixMilli(),
			}.ToJSON()

			c.writeSingleEvent("OnFileStart", payload, false)
		},
		OnFileDone: func(index int, item planner.Item, bytes int64) {
			payload := model.TransferEvent{
				Type:       model.TransferEventTypeFileDone,
				Index:      index,
				LocalPath:  item.LocalPath,
				RemotePath: item.RemotePath,
				Bytes:      bytes,
				Timestamp:  time.Now().UnixMilli(),
			}.ToJSON()

			c.writeSingleEvent("OnFileDone", payload, true)
		},
		OnFileError: func(index int, item planner.Item, err error) {
			payload := model.TransferEvent{
				Type:       model.TransferEventTypeFileError,
				Index:      index,
				LocalPath:  item.LocalPath,
				RemotePath: item.RemotePath,
				Error:      err.Error(),
				Timestamp:  time.Now().UnixMilli(),
			}.ToJSON()

			c.writeSingleEvent("OnFileError", payload, true)
		},
		OnComplete: func(result transfer.Result, err error) {
			event := model.TransferEvent{
				Type:       model.TransferEventTypeComplete,
				Files:      result.Files,
				Bytes:      result.Bytes,
				DurationMs: result.Duration.Milliseconds(),
				Timestamp:  time.Now().UnixMilli(),
			}
			if err != nil {
				event.Type = model.TransferEventTypeError
				event.Error = err.Error()
			}

			c.writeSingleEvent("OnComplete", event.ToJSON(), true)
		},
	}
}

// writeSingleEvent serializes one SSE frame. Hooks and the ping goroutine
// share the writer.
func (c *TransferController) writeSingleEvent(handler string, data []byte, verbose bool) {
	if c == nil || c.ctx == nil || c.ctx.Writer == nil {
		return
	}

	c.chunkWriter.Lock()
	defer c.chunkWriter.Unlock()
	c.writeFrame(handler, data, verbose)
}

// writeFrame writes data followed by a blank line and flushes. Callers
// serialize access to the writer.
func (c *basicController) writeFrame(handler string, data []byte, verbose bool) {
	select {
	case <-c.ctx.Request.Context().Done():
		log.Error("StreamEvent.%s: client disconnected", handler)
		return
	default:
	}

	defer func() {
		if flusher, ok := c.ctx.Writer.(http.Flusher); ok {
			flusher.Flush()
		}
	}()

	payload := append(data, '\n', '\n')
	n, err := c.ctx.Writer.Write(payload)
	if err == nil && n != len(payload) {
		err = io.ErrShortWrite
	}

	if err != nil {
		log.Error("StreamEvent.%s write data %s error: %v", handler, string(data), err)
	} else if verbose {
		log.Info("StreamEvent.%s write data %s", handler, string(data))
	}
}

// ping periodically keeps the SSE connection alive.
func (c *TransferController) ping(ctx context.Context) {
	wait.Until(func() {
		if c.ctx.Writer == nil {
			return
		}
		payload := model.TransferEvent{
			Type:      model.TransferEventTypePing,
			Text:      "pong",
			Timestamp: time.Now().UnixMilli(),
		}.ToJSON()
		c.writeSingleEvent("Ping", payload, false)
	}, pingInterval, ctx.Done())
}
