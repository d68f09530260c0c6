// Package iperf 选项模式支持
package iperf

// Option 配置选项函数类型
type Option func(*Config)

// WithBinary 设置iperf3可执行文件
func WithBinary(binary string) Option {
	return func(c *Config) {
		c.Binary = binary
	}
}

// WithEnv 追加子进程环境变量
func WithEnv(env ...string) Option {
	return func(c *Config) {
		c.Env = append(c.Env, env...)
	}
}

// NewSupervisorWithOptions 使用选项模式创建进程管理器
func NewSupervisorWithOptions(opts ...Option) (*Supervisor, error) {
	config := DefaultConfig()

	// 应用所有选项
	for _, opt := range opts {
		opt(config)
	}

	return NewSupervisor(config)
}
