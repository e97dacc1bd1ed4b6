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

package flag

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devsync/syncd/pkg/pathmatch"
	"github.com/devsync/syncd/pkg/transfer"
)

func newFlagSet() *flag.FlagSet {
	return flag.NewFlagSet("syncd", flag.ContinueOnError)
}

func TestParseDefaults(t *testing.T) {
	require.NoError(t, parse(newFlagSet(), nil))
	assert.Equal(t, 8080, ServerPort)
	assert.Equal(t, "info", ServerLogLevel)
	assert.Equal(t, "http://localhost:5173", CORSAllowedOrigin)
	assert.Equal(t, "config.json", ConfigFile)
	assert.Equal(t, BackendSSH, TransferBackend)
	assert.Equal(t, time.Second, ApiGracefulShutdownTimeout)
	assert.Equal(t, 100, HistoryLimit)
}

func TestParseEnvThenFlags(t *testing.T) {
	t.Setenv(accessTokenEnv, "from-env")
	t.Setenv(configFileEnv, "/etc/syncd.json")
	t.Setenv(gracefulShutdownTimeoutEnv, "5s")

	require.NoError(t, parse(newFlagSet(), []string{"--access-token", "from-flag", "--port", "9000"}))
	assert.Equal(t, "from-flag", ServerAccessToken)
	assert.Equal(t, "/etc/syncd.json", ConfigFile)
	assert.Equal(t, 5*time.Second, ApiGracefulShutdownTimeout)
	assert.Equal(t, 9000, ServerPort)
}

func TestParseRejectsBadInput(t *testing.T) {
	assert.Error(t, parse(newFlagSet(), []string{"--transfer-backend", "ftp"}))
	assert.Error(t, parse(newFlagSet(), []string{"--transfer-backend", "local"}))
	assert.NoError(t, parse(newFlagSet(), []string{"--transfer-backend", "local", "--local-root", t.TempDir()}))

	t.Setenv(gracefulShutdownTimeoutEnv, "soon")
	assert.Error(t, parse(newFlagSet(), nil))
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"ssh": {"host": "dev-box", "username": "root", "keyFile": "/k", "allowNewHost": true},
		"commonPaths": [
			{"local": "fxos/", "remote": "/usr/lib/python3/site-packages/fxos/"},
			{"local": "fxos_cli/"}
		]
	}`)

	cfg, err := LoadConfig(path, BackendSSH)
	require.NoError(t, err)
	assert.Equal(t, transfer.DefaultSSHPort, cfg.SSH.Port)
	assert.True(t, cfg.SSH.AllowNewHost)
	assert.Equal(t, []string{"fxos/", "fxos_cli/"}, cfg.CommonPaths.Locals())
}

func TestLoadConfigValidation(t *testing.T) {
	noHost := writeConfig(t, `{"ssh": {"username": "root", "keyFile": "/k"}}`)
	_, err := LoadConfig(noHost, BackendSSH)
	assert.ErrorIs(t, err, transfer.ErrIncompleteSSHConfig)

	cfg, err := LoadConfig(noHost, BackendLocal)
	require.NoError(t, err)
	assert.Empty(t, cfg.CommonPaths)

	emptyLocal := writeConfig(t, `{"commonPaths": [{"local": ""}]}`)
	_, err = LoadConfig(emptyLocal, BackendLocal)
	assert.ErrorIs(t, err, pathmatch.ErrEmptyLocal)

	_, err = LoadConfig(writeConfig(t, `{`), BackendLocal)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.json")

	_, err := LoadConfig(missing, BackendSSH)
	assert.Error(t, err)

	cfg, err := LoadConfig(missing, BackendLocal)
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}
