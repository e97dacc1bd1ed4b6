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
	"net/http"
	"testing"

	"github.com/devsync/syncd/pkg/web/model"
)

func TestRespondSuccessWithoutBody(t *testing.T) {
	ctx, w := newTestContext(http.MethodDelete, "/api/sessions/abc", nil)
	ctrl := newBasicController(ctx)

	ctrl.RespondSuccess(nil)
	ctx.Writer.WriteHeaderNow()

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", w.Body.String())
	}
}

func TestRespondErrorAddsCodeAndMessage(t *testing.T) {
	ctx, w := newTestContext(http.MethodPost, "/api/transfer", nil)
	ctrl := newBasicController(ctx)

	ctrl.RespondError(http.StatusInternalServerError, model.ErrorCodeConnectFailed, "dial tcp: refused")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
	var got model.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal error body: %v", err)
	}
	if got.Code != model.ErrorCodeConnectFailed || got.Message != "dial tcp: refused" {
		t.Fatalf("unexpected body: %#v", got)
	}
}

func TestBindRequest(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantOK   bool
		wantCode model.ErrorCode
	}{
		{
			name:     "malformed json",
			body:     `{"paths": [`,
			wantCode: model.ErrorCodeInvalidRequest,
		},
		{
			name:     "missing destination wins over other errors",
			body:     `{"paths": [""], "baseRemotePath": " "}`,
			wantCode: model.ErrorCodeNoDestination,
		},
		{
			name:     "validation error",
			body:     `{"paths": [""], "baseRemotePath": "/srv"}`,
			wantCode: model.ErrorCodeInvalidRequest,
		},
		{
			name:   "valid",
			body:   `{"paths": ["/src/a.py"], "baseRemotePath": "/srv"}`,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, w := newTestContext(http.MethodPost, "/api/plan", []byte(tt.body))
			ctrl := newBasicController(ctx)

			var request model.PlanRequest
			ok := ctrl.bindRequest(&request)
			if ok != tt.wantOK {
				t.Fatalf("bindRequest() = %v, want %v", ok, tt.wantOK)
			}
			if tt.wantOK {
				if request.BaseRemotePath != "/srv" {
					t.Fatalf("unexpected request: %#v", request)
				}
				return
			}
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", w.Code)
			}
			var got model.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatalf("failed to unmarshal error body: %v", err)
			}
			if got.Code != tt.wantCode {
				t.Fatalf("code = %s, want %s", got.Code, tt.wantCode)
			}
		})
	}
}

func TestQueryInt64(t *testing.T) {
	ctrl := &basicController{}

	tests := []struct {
		name     string
		query    string
		def      int64
		expected int64
	}{
		{name: "limit given", query: "25", def: 100, expected: 25},
		{name: "empty uses default", query: "", def: 100, expected: 100},
		{name: "invalid uses default", query: "all", def: 100, expected: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ctrl.QueryInt64(tt.query, tt.def)
			if got != tt.expected {
				t.Fatalf("QueryInt64(%q, %d) = %d, want %d", tt.query, tt.def, got, tt.expected)
			}
		})
	}
}
