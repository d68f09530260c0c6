package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Kevin-Rudy/iperf3tui/pkg/core"
	"github.com/Kevin-Rudy/iperf3tui/pkg/iperf"
	"github.com/Kevin-Rudy/iperf3tui/pkg/session"
	"github.com/Kevin-Rudy/iperf3tui/pkg/tui"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// FileConfig 配置文件结构，所有字段都是可选的
type FileConfig struct {
	Server          string        `yaml:"server"`
	Port            string        `yaml:"port"`
	IPv6            bool          `yaml:"ipv6"`
	UDP             bool          `yaml:"udp"`
	Reverse         bool          `yaml:"reverse"`
	Binary          string        `yaml:"binary"`
	ServerList      string        `yaml:"server_list"`
	LogFile         string        `yaml:"log_file"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	ValidateTimeout time.Duration `yaml:"validate_timeout"`
	RestartDelay    time.Duration `yaml:"restart_delay"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

// loadFileConfig 读取并解析YAML配置文件
func loadFileConfig(filename string) (*FileConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	return &cfg, nil
}

// AppConfig 应用层配置聚合
type AppConfig struct {
	Measurement   core.MeasurementConfig
	IperfConfig   *iperf.Config
	SessionConfig *session.Config
	TUIConfig     *tui.Config
	LogFile       string
}

// defaultAppConfig 返回各模块默认配置的聚合
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		IperfConfig:   iperf.DefaultConfig(),
		SessionConfig: session.DefaultConfig(),
		TUIConfig:     tui.DefaultConfig(),
	}
}

// applyFileConfig 用配置文件中出现的字段覆盖默认值
func applyFileConfig(config *AppConfig, file *FileConfig) {
	config.Measurement = core.MeasurementConfig{
		Target:  file.Server,
		Port:    file.Port,
		IPv6:    file.IPv6,
		UDP:     file.UDP,
		Reverse: file.Reverse,
	}
	if file.Binary != "" {
		config.IperfConfig.Binary = file.Binary
	}
	if file.ServerList != "" {
		config.TUIConfig.ServerListSource = file.ServerList
	}
	if file.LogFile != "" {
		config.LogFile = file.LogFile
	}
	if file.ReadTimeout > 0 {
		config.SessionConfig.ReadTimeout = file.ReadTimeout
	}
	if file.ValidateTimeout > 0 {
		config.SessionConfig.ValidateTimeout = file.ValidateTimeout
	}
	if file.RestartDelay > 0 {
		config.SessionConfig.RestartDelay = file.RestartDelay
	}
	if file.RefreshInterval > 0 {
		config.TUIConfig.RefreshInterval = file.RefreshInterval
	}
}

// buildConfigFromCLI 从命令行参数构建配置
// 优先级：命令行参数 > 配置文件 > 默认值
func buildConfigFromCLI(c *cli.Context) (*AppConfig, error) {
	config := defaultAppConfig()

	if path := c.String("config"); path != "" {
		file, err := loadFileConfig(path)
		if err != nil {
			return nil, err
		}
		applyFileConfig(config, file)
	}

	// 构建测量配置
	if target := c.Args().First(); target != "" {
		config.Measurement.Target = target
	}
	if c.IsSet("6") {
		config.Measurement.IPv6 = c.Bool("6")
	}
	if c.IsSet("udp") {
		config.Measurement.UDP = c.Bool("udp")
	}
	if c.IsSet("reverse") {
		config.Measurement.Reverse = c.Bool("reverse")
	}
	if c.IsSet("port") {
		config.Measurement.Port = c.String("port")
	}

	// 构建 iperf 配置
	if c.IsSet("binary") {
		config.IperfConfig.Binary = c.String("binary")
	}

	// 构建会话配置
	if c.IsSet("read-timeout") {
		config.SessionConfig.ReadTimeout = c.Duration("read-timeout")
	}
	if c.IsSet("validate-timeout") {
		config.SessionConfig.ValidateTimeout = c.Duration("validate-timeout")
	}
	if c.IsSet("restart-delay") {
		config.SessionConfig.RestartDelay = c.Duration("restart-delay")
	}

	// 构建 TUI 配置
	if c.IsSet("servers") {
		config.TUIConfig.ServerListSource = c.String("servers")
	}
	if c.IsSet("refresh-rate") {
		config.TUIConfig.RefreshInterval = c.Duration("refresh-rate")
	}

	if c.IsSet("log-file") {
		config.LogFile = c.String("log-file")
	}

	return config, nil
}

// validateConfig 验证配置的合理性，并规范化测量目标
func validateConfig(config *AppConfig) error {
	// 验证测量配置
	if err := config.Measurement.Validate(); err != nil {
		return fmt.Errorf("测量配置错误: %v", err)
	}
	measurement, err := config.Measurement.Normalize()
	if err != nil {
		return fmt.Errorf("测量配置错误: %v", err)
	}
	config.Measurement = measurement

	// 验证 iperf 配置
	if err := config.IperfConfig.Validate(); err != nil {
		return fmt.Errorf("iperf配置错误: %v", err)
	}

	// 验证会话配置
	if err := config.SessionConfig.Validate(); err != nil {
		return fmt.Errorf("会话配置错误: %v", err)
	}

	// 验证 TUI 配置
	if err := config.TUIConfig.Validate(); err != nil {
		return fmt.Errorf("tui配置错误: %v", err)
	}

	return nil
}
