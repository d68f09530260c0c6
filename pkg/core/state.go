// Package core 共享状态模块
package core

import (
	"sync"
)

// SharedState 是界面线程与工作线程之间唯一共享的可变状态
// 视口尺寸、配置+控制状态、进程句柄三组字段各自独立加锁；
// 配置与控制状态作为一个整体原子更新，读者不会看到只更新了一半的记录
type SharedState struct {
	viewMu   sync.RWMutex
	viewport Viewport

	mu      sync.Mutex
	config  MeasurementConfig
	control ControlState
	changed chan struct{} // 每次配置或控制状态变化时关闭并替换

	procMu sync.Mutex
	proc   ProcessHandle
}

// NewSharedState 使用初始配置创建共享状态
func NewSharedState(config MeasurementConfig) *SharedState {
	return &SharedState{
		viewport: DefaultViewport,
		config:   config,
		control:  StateNormal,
		changed:  make(chan struct{}),
	}
}

// Viewport 返回最近一次报告的视口尺寸，未报告时返回默认值
func (s *SharedState) Viewport() Viewport {
	s.viewMu.RLock()
	defer s.viewMu.RUnlock()
	return s.viewport
}

// SetViewport 记录界面报告的视口尺寸；非正尺寸被忽略
func (s *SharedState) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.viewMu.Lock()
	defer s.viewMu.Unlock()
	s.viewport = Viewport{Width: width, Height: height}
}

// Config 返回当前测量配置
func (s *SharedState) Config() MeasurementConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// Control 返回当前控制状态
func (s *SharedState) Control() ControlState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.control
}

// Snapshot 原子地读取配置和控制状态
func (s *SharedState) Snapshot() (MeasurementConfig, ControlState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config, s.control
}

// Changed 返回一个在下一次配置或控制状态变化时被关闭的通道
// 调用方应先取通道再读状态，这样两者之间发生的变化不会被漏掉
func (s *SharedState) Changed() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changed
}

// notifyLocked 唤醒所有等待者，调用方必须持有s.mu
func (s *SharedState) notifyLocked() {
	close(s.changed)
	s.changed = make(chan struct{})
}

// RequestReload 存储新配置并请求重启会话
// 两个字段在同一把锁下更新；已进入Quit状态时返回false
func (s *SharedState) RequestReload(config MeasurementConfig) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.control == StateQuit {
		return false
	}
	s.config = config
	s.control = StateReloadRequested
	s.notifyLocked()
	return true
}

// Restart 以当前配置请求重启会话
func (s *SharedState) Restart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.control == StateQuit {
		return false
	}
	s.control = StateReloadRequested
	s.notifyLocked()
	return true
}

// AcknowledgeReload 由控制器在开始新会话前调用，将ReloadRequested恢复为Normal
// 返回此时生效的配置和确认后的控制状态
func (s *SharedState) AcknowledgeReload() (MeasurementConfig, ControlState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.control == StateReloadRequested {
		s.control = StateNormal
	}
	return s.config, s.control
}

// Quit 进入终止状态并强制结束正在运行的测量进程
func (s *SharedState) Quit() {
	s.mu.Lock()
	if s.control != StateQuit {
		s.control = StateQuit
		s.notifyLocked()
	}
	s.mu.Unlock()

	_ = s.KillProcess()
}

// SetProcess 记录当前会话的进程句柄
func (s *SharedState) SetProcess(proc ProcessHandle) {
	s.procMu.Lock()
	defer s.procMu.Unlock()
	s.proc = proc
}

// Process 返回当前会话的进程句柄，没有时返回nil
func (s *SharedState) Process() ProcessHandle {
	s.procMu.Lock()
	defer s.procMu.Unlock()
	return s.proc
}

// ClearProcess 清除进程句柄
func (s *SharedState) ClearProcess() {
	s.procMu.Lock()
	defer s.procMu.Unlock()
	s.proc = nil
}

// KillProcess 强制终止当前记录的进程（如果有）
func (s *SharedState) KillProcess() error {
	s.procMu.Lock()
	proc := s.proc
	s.procMu.Unlock()

	if proc == nil {
		return nil
	}
	return proc.Kill()
}
