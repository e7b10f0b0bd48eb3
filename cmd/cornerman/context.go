package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"cornerman/internal/config"
	"cornerman/internal/ipc"
)

// commandContext carries the persistent flag values and lazily loads the
// configuration exactly once per invocation.
type commandContext struct {
	socketFlag string
	configFlag string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configFlag)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = fmt.Errorf("failed to prepare directories: %w", err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// configValue returns the loaded config or nil when loading failed; callers
// that can work without one use this instead of ensureConfig.
func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) socketPath() string {
	if c.socketFlag != "" {
		return c.socketFlag
	}
	if cfg := c.configValue(); cfg != nil {
		return cfg.SocketPath()
	}
	return defaultSocketPath()
}

func (c *commandContext) withClient(fn func(*ipc.Client) error) error {
	client, err := c.dialClient()
	if err != nil {
		return err
	}
	defer client.Close()
	return fn(client)
}

func (c *commandContext) dialClient() (*ipc.Client, error) {
	path := c.socketPath()
	client, err := ipc.Dial(path)
	if err != nil {
		return nil, wrapDialError(path, err)
	}
	return client, nil
}

func wrapDialError(path string, err error) error {
	switch {
	case errors.Is(err, syscall.ENOENT):
		return fmt.Errorf("daemon socket %s not found; start the daemon with `cornerman daemon run`", path)
	case errors.Is(err, syscall.ECONNREFUSED):
		return fmt.Errorf("daemon socket %s refused the connection; is cornermand running?", path)
	default:
		return fmt.Errorf("failed to reach daemon at %s: %w", path, err)
	}
}

func defaultSocketPath() string {
	if cfg, _, _, err := config.Load(""); err == nil {
		return cfg.SocketPath()
	}
	if dir, err := config.ExpandPath("~/.local/share/cornerman/logs"); err == nil {
		return filepath.Join(dir, "cornermand.sock")
	}
	return filepath.Join(os.TempDir(), "cornermand.sock")
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for current := cmd; current != nil; current = current.Parent() {
		if current.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
