// Package session 配置定义
package session

import (
	"errors"
	"time"

	"github.com/Kevin-Rudy/iperf3tui/pkg/chart"
	"github.com/Kevin-Rudy/iperf3tui/pkg/iperf"
)

// Config 会话控制器的配置结构
type Config struct {
	ReadTimeout     time.Duration // 单次读取输出的超时时间
	ValidateTimeout time.Duration // 启动后检查错误输出的时长
	RestartDelay    time.Duration // 输出结束或连接失败后重新启动前的等待时间
	Chart           *chart.Config // 图表尺寸配置
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		ReadTimeout:     iperf.DefaultReadTimeout,
		ValidateTimeout: 5 * time.Second,
		RestartDelay:    time.Second,
		Chart:           chart.DefaultConfig(),
	}
}

// Validate 验证配置的合理性
func (c *Config) Validate() error {
	if c.ReadTimeout <= 0 {
		return errors.New("读取超时必须大于0")
	}
	if c.ValidateTimeout <= 0 {
		return errors.New("校验时长必须大于0")
	}
	if c.RestartDelay < 0 {
		return errors.New("重启等待时间不能为负数")
	}
	if c.Chart == nil {
		return errors.New("图表配置不能为空")
	}
	return c.Chart.Validate()
}
