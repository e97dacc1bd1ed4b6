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
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/devsync/syncd/pkg/pathmatch"
	"github.com/devsync/syncd/pkg/transfer"
)

// Config is the JSON config file.
//
//	{
//	  "ssh": {"host": "dev-box", "username": "root", "keyFile": "/home/dev/.ssh/id_ed25519"},
//	  "commonPaths": [{"local": "fxos/", "remote": "/usr/lib/python3/site-packages/fxos/"}]
//	}
type Config struct {
	SSH         transfer.SSHConfig `json:"ssh"`
	CommonPaths pathmatch.Table    `json:"commonPaths"`
}

// LoadConfig reads path. The ssh block is validated only for the ssh backend,
// and a missing file is tolerated for the local backend.
func LoadConfig(path, backend string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && backend == BackendLocal:
	default:
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	if err := cfg.CommonPaths.Validate(); err != nil {
		return nil, err
	}
	if backend == BackendSSH {
		if err := cfg.SSH.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
