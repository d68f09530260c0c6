// Package session 选项模式支持
package session

import (
	"time"

	"github.com/Kevin-Rudy/iperf3tui/pkg/chart"
	"github.com/Kevin-Rudy/iperf3tui/pkg/core"
	"github.com/Kevin-Rudy/iperf3tui/pkg/logger"
)

// Option 配置选项函数类型
type Option func(*Config)

// WithReadTimeout 设置读取超时
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.ReadTimeout = timeout
	}
}

// WithValidateTimeout 设置校验时长
func WithValidateTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.ValidateTimeout = timeout
	}
}

// WithRestartDelay 设置重启等待时间
func WithRestartDelay(delay time.Duration) Option {
	return func(c *Config) {
		c.RestartDelay = delay
	}
}

// WithChart 设置图表配置
func WithChart(chartConfig *chart.Config) Option {
	return func(c *Config) {
		c.Chart = chartConfig
	}
}

// NewControllerWithOptions 使用选项模式创建会话控制器
func NewControllerWithOptions(state *core.SharedState, display core.Display, spawner Spawner, log logger.Logger, opts ...Option) (*Controller, error) {
	config := DefaultConfig()

	// 应用所有选项
	for _, opt := range opts {
		opt(config)
	}

	return NewController(state, display, spawner, config, log)
}
