// Package core 定义了测量会话与界面之间共享的核心类型和接口
// 这些接口保证了TUI与iperf3执行器的完全解耦
package core

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/idna"
)

// hostProfile 按查询规则映射主机名，但不套用STD3字符限制
// DNS允许主机名中出现'_'，iperf3也能解析这类地址
var hostProfile = idna.New(idna.MapForLookup(), idna.StrictDomainName(false), idna.BidiRule())

// ControlState 表示工作线程与界面线程之间协调用的控制状态
type ControlState int

const (
	StateNormal          ControlState = iota // 正常运行
	StateReloadRequested                     // 请求以新配置重启会话（瞬态）
	StateQuit                                // 退出（吸收态，进入后不可离开）
)

// String 返回控制状态的可读名称
func (s ControlState) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateReloadRequested:
		return "reload-requested"
	case StateQuit:
		return "quit"
	default:
		return fmt.Sprintf("ControlState(%d)", int(s))
	}
}

// Viewport 表示渲染区域的尺寸（字符单元）
type Viewport struct {
	Width  int
	Height int
}

// DefaultViewport 在界面首次报告尺寸之前使用
var DefaultViewport = Viewport{Width: 80, Height: 24}

// MeasurementConfig 描述一次测量会话的目标和可选参数
type MeasurementConfig struct {
	Target  string // 服务器地址或主机名，为空时会话保持空闲
	IPv6    bool   // 仅使用IPv6
	UDP     bool   // 使用UDP而不是TCP
	Reverse bool   // 反向模式（服务器发送，客户端接收）
	Port    string // 端口或端口范围，如 "5201" 或 "5201-5210"
}

// HasTarget 判断配置是否足以启动会话
func (c MeasurementConfig) HasTarget() bool {
	return strings.TrimSpace(c.Target) != ""
}

// Title 返回当前配置的可读摘要，用作面板标题
func (c MeasurementConfig) Title() string {
	if !c.HasTarget() {
		return "未选择服务器"
	}

	title := c.Target
	if c.Port != "" {
		title += ":" + c.Port
	}

	var flags []string
	if c.IPv6 {
		flags = append(flags, "IPv6")
	}
	if c.UDP {
		flags = append(flags, "UDP")
	}
	if c.Reverse {
		flags = append(flags, "反向")
	}
	if len(flags) > 0 {
		title += " (" + strings.Join(flags, ", ") + ")"
	}
	return title
}

// Normalize 去除目标两端空白，并将国际化域名转换为ASCII形式
func (c MeasurementConfig) Normalize() (MeasurementConfig, error) {
	c.Target = strings.TrimSpace(c.Target)
	c.Port = strings.TrimSpace(c.Port)
	if c.Target == "" {
		return c, nil
	}

	ascii, err := hostProfile.ToASCII(c.Target)
	if err != nil {
		// IP字面量（尤其是IPv6）不是合法的域名标签，直接保留
		if strings.ContainsAny(c.Target, ":") {
			return c, nil
		}
		return c, fmt.Errorf("无效的服务器地址 '%s': %w", c.Target, err)
	}
	c.Target = ascii
	return c, nil
}

// Validate 验证配置的合理性；空目标是合法的
func (c MeasurementConfig) Validate() error {
	if strings.HasPrefix(strings.TrimSpace(c.Target), "-") {
		return errors.New("服务器地址不能以'-'开头")
	}
	if c.Port != "" {
		for _, part := range strings.Split(c.Port, "-") {
			if part == "" || strings.Trim(part, "0123456789") != "" {
				return fmt.Errorf("无效的端口配置 '%s'", c.Port)
			}
		}
	}
	_, err := c.Normalize()
	return err
}

// ProcessHandle 是正在运行的测量进程的受管句柄
// 持有进程对象本身而不仅仅是数字PID，避免PID被复用时误杀无关进程
type ProcessHandle interface {
	// Pid 返回操作系统进程标识符
	Pid() int

	// Kill 无条件强制终止进程；进程已退出时返回nil
	Kill() error
}

// Display 定义了工作线程向界面线程投递内容的单向通道
// 实现者必须保证所有方法不阻塞调用方，并保持投递顺序
type Display interface {
	// SetTitle 设置面板标题（当前配置摘要）
	SetTitle(title string)

	// SetContent 设置主区域的全屏文本（渲染后的图表或提示信息）
	SetContent(text string)

	// SetStatus 设置状态栏文本
	SetStatus(text string)
}
