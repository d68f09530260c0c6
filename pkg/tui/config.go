// Package tui 配置定义
package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/Kevin-Rudy/iperf3tui/pkg/serverlist"
)

// Config TUI组件的配置结构
type Config struct {
	RefreshInterval   time.Duration // UI刷新间隔
	ReloadInterval    time.Duration // 两次重启类按键之间的最小间隔
	ServerListSource  string        // 服务器列表的文件路径或URL
	ServerListTimeout time.Duration // 加载服务器列表的超时
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		RefreshInterval:   100 * time.Millisecond, // 默认100ms刷新
		ReloadInterval:    300 * time.Millisecond, // 按住按键时不会连续重启
		ServerListSource:  serverlist.DefaultURL,
		ServerListTimeout: serverlist.DefaultTimeout,
	}
}

// Validate 验证配置的合理性
func (c *Config) Validate() error {
	if c.RefreshInterval <= 0 {
		return errors.New("UI刷新间隔必须大于0")
	}

	if c.RefreshInterval < 10*time.Millisecond {
		return errors.New("UI刷新间隔不能小于10ms")
	}

	if c.ReloadInterval < 0 {
		return errors.New("重启按键间隔不能为负数")
	}

	if strings.TrimSpace(c.ServerListSource) == "" {
		return errors.New("服务器列表来源不能为空")
	}

	if c.ServerListTimeout <= 0 {
		return errors.New("服务器列表加载超时必须大于0")
	}

	return nil
}
