package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"tangle/internal/config"
	"tangle/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) openStore(dir string) (*store.Store, error) {
	if strings.TrimSpace(dir) != "" {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return nil, err
		}
		return store.New(expanded)
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return store.New(cfg.Paths.OutputDir)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
