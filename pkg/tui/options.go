// Package tui 选项模式支持
package tui

import (
	"time"
)

// Option TUI配置选项函数类型
type Option func(*Config)

// WithRefreshInterval 设置UI刷新间隔
func WithRefreshInterval(interval time.Duration) Option {
	return func(c *Config) {
		c.RefreshInterval = interval
	}
}

// WithReloadInterval 设置重启类按键的最小间隔
func WithReloadInterval(interval time.Duration) Option {
	return func(c *Config) {
		c.ReloadInterval = interval
	}
}

// WithServerList 设置服务器列表来源和加载超时
func WithServerList(source string, timeout time.Duration) Option {
	return func(c *Config) {
		c.ServerListSource = source
		c.ServerListTimeout = timeout
	}
}

// NewConfigWithOptions 使用选项模式创建TUI配置
func NewConfigWithOptions(opts ...Option) *Config {
	config := DefaultConfig()

	// 应用所有选项
	for _, opt := range opts {
		opt(config)
	}

	return config
}
