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
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/devsync/syncd/pkg/history"
	"github.com/devsync/syncd/pkg/pathmatch"
	"github.com/devsync/syncd/pkg/transfer"
	"github.com/devsync/syncd/pkg/web/model"
)

const binPath = "fxos/management/boot-cli/cisco/cli/bin"

var testCommonPaths = pathmatch.Table{
	{
		Local:  "fxos/management/boot-cli/cisco/site-packages/cli/common/packaging",
		Remote: "fxos/management/boot-cli/cisco/site-packages/cli/common/packaging",
	},
	{Local: binPath, Remote: binPath},
}

// setupServices wires the controllers to a local destination directory and
// returns the source and destination roots.
func setupServices(t *testing.T) (string, string) {
	t.Helper()
	src := t.TempDir()
	dst := t.TempDir()
	InitServices(transfer.NewService(transfer.LocalDialer(dst)), history.NewMemoryStore(10), testCommonPaths)
	return src, dst
}

func writeSource(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	now := time.Now()
	require.NoError(t, os.Chtimes(path, now, now))
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func decodeError(t *testing.T, body []byte) model.ErrorResponse {
	t.Helper()
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func newTestContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		ctx.Request.Header.Set("Content-Type", "application/json")
	}
	return ctx, w
}

func withSessionParam(ctx *gin.Context, id string) {
	ctx.Params = gin.Params{{Key: "sessionId", Value: id}}
}
