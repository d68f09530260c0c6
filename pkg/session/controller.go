// Package session 实现测量会话的状态机
// 控制器在工作goroutine中运行：启动iperf3、校验连接、逐行读取输出并渲染图表，
// 配置变化时中止当前会话并以新配置重新开始
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Kevin-Rudy/iperf3tui/pkg/chart"
	"github.com/Kevin-Rudy/iperf3tui/pkg/core"
	"github.com/Kevin-Rudy/iperf3tui/pkg/iperf"
	"github.com/Kevin-Rudy/iperf3tui/pkg/logger"
	"github.com/dustin/go-humanize"
)

// IdleMessage 没有配置目标时显示的提示
const IdleMessage = "尚未选择iperf3服务器\n\n" +
	"按 s 从服务器列表中选择，按 e 手动输入地址，按 q 退出\n" +
	"也可以在启动时指定：iperf3tui <server>"

// Process 是控制器所需的进程能力
type Process interface {
	core.ProcessHandle
	Stdout() io.Reader
	Stderr() io.Reader
	Wait() error
}

// Spawner 根据测量配置启动进程
type Spawner interface {
	Start(cfg core.MeasurementConfig) (Process, error)
}

// supervisorSpawner 把iperf.Supervisor适配为Spawner
type supervisorSpawner struct {
	supervisor *iperf.Supervisor
}

// SupervisorSpawner 返回使用iperf.Supervisor启动进程的Spawner
func SupervisorSpawner(supervisor *iperf.Supervisor) Spawner {
	return &supervisorSpawner{supervisor: supervisor}
}

func (s *supervisorSpawner) Start(cfg core.MeasurementConfig) (Process, error) {
	proc, err := s.supervisor.Start(cfg)
	if err != nil {
		return nil, err
	}
	return proc, nil
}

// endReason 会话结束的原因
type endReason int

const (
	endStream       endReason = iota // 输出流结束
	endConnectivity                  // 校验阶段在错误输出上看到内容
	endSpawnFailure                  // 进程无法启动
	endAborted                       // 配置或控制状态变化
)

// String 返回结束原因的可读名称
func (r endReason) String() string {
	switch r {
	case endStream:
		return "stream-end"
	case endConnectivity:
		return "connectivity-failure"
	case endSpawnFailure:
		return "spawn-failure"
	case endAborted:
		return "aborted"
	default:
		return fmt.Sprintf("endReason(%d)", int(r))
	}
}

// Controller 测量会话控制器
type Controller struct {
	state    *core.SharedState
	display  core.Display
	spawner  Spawner
	config   *Config
	renderer *chart.Renderer
	logger   logger.Logger
}

// NewController 创建会话控制器
func NewController(state *core.SharedState, display core.Display, spawner Spawner, config *Config, log logger.Logger) (*Controller, error) {
	if state == nil || display == nil || spawner == nil {
		return nil, errors.New("共享状态、显示接口和进程启动器都不能为空")
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("会话配置无效: %w", err)
	}
	if log == nil {
		log = logger.Noop()
	}

	return &Controller{
		state:    state,
		display:  display,
		spawner:  spawner,
		config:   config,
		renderer: chart.NewRenderer(config.Chart),
		logger:   log,
	}, nil
}

// Run 运行会话循环，直到控制状态变为Quit
// ctx被取消等同于Quit：正在运行的进程被终止，Run返回ctx的错误
func (c *Controller) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, c.state.Quit)
	defer stop()
	defer c.state.ClearProcess()

	c.logger.Info("会话控制器启动")
	for {
		// 先取通道再确认状态，确认之后的任何变化都会关闭这个通道
		changed := c.state.Changed()
		cfg, control := c.state.AcknowledgeReload()
		if control == core.StateQuit {
			c.logger.Info("会话控制器退出")
			return ctx.Err()
		}

		if !cfg.HasTarget() {
			c.showIdle(cfg)
			<-changed
			continue
		}

		reason := c.runSession(cfg, changed)
		c.logger.Info("会话结束: %s (%s)", cfg.Title(), reason)

		switch reason {
		case endSpawnFailure:
			// 不自动重试，等待新的配置或重启请求
			<-changed
		case endStream, endConnectivity:
			c.sleep(c.config.RestartDelay, changed)
		}
	}
}

// showIdle 显示未配置目标时的提示
func (c *Controller) showIdle(cfg core.MeasurementConfig) {
	c.display.SetTitle(cfg.Title())
	c.display.SetContent(IdleMessage)
	c.display.SetStatus("")
}

// sleep 等待d，期间状态变化时提前返回
func (c *Controller) sleep(d time.Duration, changed <-chan struct{}) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-changed:
	}
}

// interrupted 判断当前会话是否需要中止
func (c *Controller) interrupted(changed <-chan struct{}) bool {
	select {
	case <-changed:
		return true
	default:
	}
	return c.state.Control() != core.StateNormal
}

// runSession 运行一次完整的会话：启动、校验、读取数据，结束时终止并回收进程
func (c *Controller) runSession(cfg core.MeasurementConfig, changed <-chan struct{}) endReason {
	c.display.SetTitle(cfg.Title())
	c.display.SetContent(fmt.Sprintf("正在连接 %s ...", cfg.Target))
	c.display.SetStatus("")

	proc, err := c.spawner.Start(cfg)
	if err != nil {
		c.logger.Error("启动iperf3失败: %v", err)
		c.display.SetContent(spawnFailureMessage(err))
		return endSpawnFailure
	}
	c.state.SetProcess(proc)
	defer c.finish(proc)
	c.logger.Info("iperf3已启动 pid=%d 参数=%s", proc.Pid(), strings.Join(iperf.BuildArgs(cfg), " "))

	// 启动与登记句柄之间发生的Quit看不到这个进程，由这里补上
	if c.interrupted(changed) {
		return endAborted
	}

	stderr := iperf.NewTimeoutReader(proc.Stderr(), c.config.ReadTimeout)
	output, err := iperf.ReadAvailable(stderr, c.config.ValidateTimeout, changed)
	if errors.Is(err, iperf.ErrCanceled) {
		return endAborted
	}
	if text := strings.TrimSpace(string(output)); text != "" {
		connErr := iperf.ConnectivityError(text)
		c.logger.Warn("连接 %s 失败: %v", cfg.Target, connErr)
		c.display.SetContent(connectivityMessage(connErr))
		return endConnectivity
	}
	go c.drainStderr(stderr)

	return c.stream(proc, changed)
}

// stream 数据阶段：逐行读取输出，把每个样本推入窗口并渲染
func (c *Controller) stream(proc Process, changed <-chan struct{}) endReason {
	lines := iperf.NewLineReader(proc.Stdout(), c.config.ReadTimeout)
	window := chart.NewWindow()
	var count int64

	for {
		if c.interrupted(changed) {
			return endAborted
		}

		line, err := lines.Next(changed)
		switch {
		case err == nil:
		case errors.Is(err, iperf.ErrReadTimeout):
			c.logger.Debug("%s 内没有新的输出", c.config.ReadTimeout)
			continue
		case errors.Is(err, iperf.ErrCanceled):
			return endAborted
		default:
			return endStream
		}

		parsed := iperf.ParseLine(line)
		if parsed.Kind != iperf.LineData {
			c.logger.Debug("跳过 %s 行: %q", parsed.Kind, line)
			continue
		}

		count++
		viewport := c.state.Viewport()
		window.Push(parsed.Mbits(), c.config.Chart.Capacity(viewport))
		c.draw(window, count, viewport)
	}
}

// draw 缩放并渲染窗口，把结果交给界面
func (c *Controller) draw(window *chart.Window, count int64, viewport core.Viewport) {
	values := window.Values()
	scaled, label := chart.Scale(values)
	c.display.SetContent(c.renderer.Render(scaled, label, viewport))

	last, _ := window.Last()
	c.display.SetStatus(fmt.Sprintf("样本 %s | 当前 %s | 平均 %s",
		humanize.Comma(count), chart.FormatRate(last), chart.FormatRate(chart.Mean(values))))
}

// drainStderr 把校验阶段之后的错误输出写入日志，流结束时返回
func (c *Controller) drainStderr(stderr *iperf.TimeoutReader) {
	for {
		chunk, err := stderr.ReadChunk(nil)
		if text := strings.TrimSpace(string(chunk)); text != "" {
			c.logger.Warn("iperf3: %s", text)
		}
		if err != nil && !errors.Is(err, iperf.ErrReadTimeout) {
			return
		}
	}
}

// finish 终止并回收进程，然后清除共享状态中的句柄
func (c *Controller) finish(proc Process) {
	if err := proc.Kill(); err != nil {
		c.logger.Warn("终止iperf3 pid=%d 失败: %v", proc.Pid(), err)
	}
	if err := proc.Wait(); err != nil {
		c.logger.Warn("回收iperf3 pid=%d 失败: %v", proc.Pid(), err)
	}
	c.state.ClearProcess()
}

// spawnFailureMessage 启动失败时显示的文本
func spawnFailureMessage(err error) string {
	return fmt.Sprintf("无法启动iperf3: %v\n\n按 r 重试，按 s 或 e 更换服务器，按 q 退出", err)
}

// connectivityMessage 连接失败时显示的文本
func connectivityMessage(err error) string {
	return fmt.Sprintf("%v\n\n将自动重试；按 s 或 e 更换服务器，按 q 退出", err)
}
