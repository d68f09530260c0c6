// Package iperf 配置定义
package iperf

import (
	"errors"
	"strings"
)

// Config 进程管理器的配置结构
type Config struct {
	Binary string   // iperf3可执行文件名或路径
	Env    []string // 追加到子进程环境的变量
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Binary: "iperf3",
	}
}

// Validate 验证配置的合理性
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Binary) == "" {
		return errors.New("iperf3可执行文件名不能为空")
	}
	for _, kv := range c.Env {
		if !strings.Contains(kv, "=") {
			return errors.New("环境变量必须是KEY=VALUE形式")
		}
	}
	return nil
}
