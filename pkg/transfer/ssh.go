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

package transfer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/devsync/syncd/pkg/log"
)

const (
	DefaultSSHPort = 22
	dialTimeout    = 30 * time.Second
)

// SSHConfig is the remote host the transfer service pushes to.
type SSHConfig struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	Username       string `json:"username"`
	KeyFile        string `json:"keyFile"`
	KnownHostsFile string `json:"knownHostsFile,omitempty"`
	AllowNewHost   bool   `json:"allowNewHost,omitempty"`
}

var ErrIncompleteSSHConfig = errors.New("incomplete ssh config")

// Validate checks required fields and fills the default port.
func (c *SSHConfig) Validate() error {
	switch {
	case c.Host == "":
		return fmt.Errorf("%w: host is required", ErrIncompleteSSHConfig)
	case c.Username == "":
		return fmt.Errorf("%w: username is required", ErrIncompleteSSHConfig)
	case c.KeyFile == "":
		return fmt.Errorf("%w: key file is required", ErrIncompleteSSHConfig)
	}
	if c.Port == 0 {
		c.Port = DefaultSSHPort
	}
	return nil
}

// Addr returns host:port.
func (c SSHConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c SSHConfig) knownHostsPath() (string, error) {
	if c.KnownHostsFile != "" {
		return c.KnownHostsFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".ssh", "known_hosts"), nil
}

// DialSSH opens an authenticated SSH connection.
func DialSSH(ctx context.Context, cfg SSHConfig) (*ssh.Client, error) {
	key, err := os.ReadFile(cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read private key from %s: %w", cfg.KeyFile, err)
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("unable to parse private key: %w", err)
	}

	hostKeyCallback, err := HostKeyCallback(cfg)
	if err != nil {
		return nil, err
	}

	clientCfg := &ssh.ClientConfig{
		User:            cfg.Username,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         dialTimeout,
	}

	addr := cfg.Addr()
	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	// The handshake is bounded by dialTimeout and aborted when ctx ends.
	if err := conn.SetDeadline(time.Now().Add(dialTimeout)); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set handshake deadline: %w", err)
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })

	c, chans, reqs, err := ssh.NewClientConn(conn, addr, clientCfg)
	if !stop() {
		if err == nil {
			c.Close()
		}
		return nil, fmt.Errorf("ssh handshake with %s failed: %w", addr, ctx.Err())
	}
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ssh handshake with %s failed: %w", addr, err)
	}
	if err := conn.SetDeadline(time.Time{}); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to clear handshake deadline: %w", err)
	}
	return ssh.NewClient(c, chans, reqs), nil
}

// HostKeyCallback verifies hosts against the known_hosts file. With
// AllowNewHost, unknown hosts are appended to the file; a changed key for a
// known host is still rejected.
func HostKeyCallback(cfg SSHConfig) (ssh.HostKeyCallback, error) {
	file, err := cfg.knownHostsPath()
	if err != nil {
		return nil, err
	}

	if !cfg.AllowNewHost {
		callback, err := knownhosts.New(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load known_hosts file %s: %w", file, err)
		}
		return callback, nil
	}

	return func(hostname string, remote net.Addr, key ssh.PublicKey) error {
		if _, err := os.Stat(file); err == nil {
			callback, err := knownhosts.New(file)
			if err != nil {
				return fmt.Errorf("failed to load known_hosts file %s: %w", file, err)
			}
			err = callback(hostname, remote, key)
			if err == nil {
				return nil
			}
			var keyErr *knownhosts.KeyError
			if !errors.As(err, &keyErr) || len(keyErr.Want) > 0 {
				return err
			}
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read known_hosts file: %w", err)
		}

		if err := appendKnownHost(file, hostname, key); err != nil {
			return err
		}
		log.Info("added new host key for %s to %s", hostname, file)
		return nil
	}, nil
}

func appendKnownHost(file, hostname string, key ssh.PublicKey) error {
	if err := os.MkdirAll(filepath.Dir(file), 0o700); err != nil {
		return fmt.Errorf("failed to create known_hosts directory: %w", err)
	}
	f, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open known_hosts file: %w", err)
	}
	defer f.Close()

	line := knownhosts.Line([]string{knownhosts.Normalize(hostname)}, key)
	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to add host key: %w", err)
	}
	return nil
}

// SSHDialer connects to cfg and prefers SFTP, falling back to SCP when the
// server has no SFTP subsystem.
func SSHDialer(cfg SSHConfig) Dialer {
	return func(ctx context.Context) (Sender, error) {
		client, err := DialSSH(ctx, cfg)
		if err != nil {
			return nil, err
		}

		sc, err := sftp.NewClient(client)
		if err != nil {
			log.Warn("SFTP not available: %v, will use SCP for all transfers", err)
			return &scpSender{client: client}, nil
		}
		return &sftpSender{client: client, sftp: sftpFS{sc}}, nil
	}
}
