// Package iperf 负责启动、读取和终止外部iperf3测量进程
// 进程输出按行解析为吞吐量样本，所有读操作都带超时
package iperf

import (
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/Kevin-Rudy/iperf3tui/pkg/core"
)

// fixedArgs 是每次启动都携带的固定参数：逐行刷新、1秒间隔、无限时长、Mbits格式
var fixedArgs = []string{
	"--forceflush",
	"--interval", "1",
	"--time", "0",
	"--format", "m",
}

// BuildArgs 根据测量配置构造iperf3参数
// 可选参数按固定顺序追加（IPv6、端口、反向、UDP），目标总是最后一个参数
func BuildArgs(cfg core.MeasurementConfig) []string {
	args := make([]string, 0, len(fixedArgs)+8)
	args = append(args, fixedArgs...)

	if cfg.IPv6 {
		args = append(args, "-6")
	}
	if cfg.Port != "" {
		args = append(args, "--port", cfg.Port)
	}
	if cfg.Reverse {
		args = append(args, "--reverse")
	}
	if cfg.UDP {
		args = append(args, "--udp")
	}

	return append(args, "--client", cfg.Target)
}

// Detect 检查iperf3是否已安装，返回可执行文件的完整路径
func Detect(binary string) (string, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", newError(ErrNotInstalled,
			"找不到 "+binary,
			"请先安装iperf3（例如 apt install iperf3 或 brew install iperf3）",
			err)
	}
	return path, nil
}

// Supervisor 根据配置启动iperf3进程
type Supervisor struct {
	config *Config
}

// NewSupervisor 创建进程管理器
func NewSupervisor(config *Config) (*Supervisor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Supervisor{config: config}, nil
}

// Start 启动一次测量，stdout与stderr分别通过管道捕获
// 启动失败返回代码为ErrSpawn的错误，不做重试
func (s *Supervisor) Start(cfg core.MeasurementConfig) (*Process, error) {
	cmd := exec.Command(s.config.Binary, BuildArgs(cfg)...)
	if len(s.config.Env) > 0 {
		cmd.Env = append(os.Environ(), s.config.Env...)
	}
	configureCommand(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, newError(ErrSpawn, "无法获取iperf3的输出", "", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, newError(ErrSpawn, "无法获取iperf3的错误输出", "", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, newError(ErrSpawn, "无法运行iperf3", "请确认已经安装", err)
	}

	return &Process{
		cmd:    cmd,
		stdout: stdout,
		stderr: stderr,
	}, nil
}

// Process 是正在运行的iperf3进程的受管句柄，实现core.ProcessHandle
// 进程在被Wait回收之前PID不会被复用，因此回收前的强制终止总是命中正确的进程
type Process struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr io.ReadCloser

	mu       sync.Mutex
	reaped   bool
	waitOnce sync.Once
	waitErr  error
}

// Pid 返回进程标识符
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Stdout 返回进程的标准输出
func (p *Process) Stdout() io.Reader {
	return p.stdout
}

// Stderr 返回进程的标准错误
func (p *Process) Stderr() io.Reader {
	return p.stderr
}

// Kill 无条件发送SIGKILL；进程已退出或已被回收时返回nil
func (p *Process) Kill() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.reaped {
		return nil
	}
	return killProcess(p.cmd)
}

// Wait 等待进程退出并回收资源，可重复调用
// 被强制终止导致的退出状态不视为错误
func (p *Process) Wait() error {
	p.waitOnce.Do(func() {
		err := p.cmd.Wait()
		p.mu.Lock()
		p.reaped = true
		p.mu.Unlock()

		if _, ok := err.(*exec.ExitError); ok {
			err = nil
		}
		p.waitErr = err
	})
	return p.waitErr
}
