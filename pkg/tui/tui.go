// Package tui 提供iperf3吞吐量仪表盘的终端用户界面
// 界面线程只负责显示和按键；测量会话在工作goroutine中运行，
// 两者通过core.SharedState和core.Display接口交互
package tui

import (
	"context"
	"sync"
	"time"

	"github.com/Kevin-Rudy/iperf3tui/pkg/core"
	"github.com/Kevin-Rudy/iperf3tui/pkg/serverlist"
	"github.com/rivo/tview"
)

// ServerLoader 加载服务器列表
type ServerLoader func(ctx context.Context, source string) ([]serverlist.Server, error)

// view 最近一次从工作goroutine收到的显示内容
type view struct {
	title   string
	content string
	status  string
}

// TUI 主界面结构，实现core.Display
type TUI struct {
	app    *tview.Application
	pages  *tview.Pages
	graph  *tview.TextView
	status *tview.TextView
	help   *tview.TextView

	state     *core.SharedState
	tuiConfig *Config
	loader    ServerLoader

	// 工作goroutine写入，刷新循环读取
	viewMu sync.Mutex
	view   view
	dirty  chan struct{}

	// 仅在界面线程中访问
	servers    []serverlist.Server
	lastReload time.Time

	// 控制
	stopOnce sync.Once
	stopChan chan struct{}
	doneChan chan struct{}

	// 测试模式标志
	testMode bool
}

// NewTUI 创建新的TUI实例
func NewTUI(state *core.SharedState, tuiConfig *Config) *TUI {
	tui := newTUI(state, tuiConfig)
	tui.app = tview.NewApplication()
	tui.graph = tview.NewTextView()
	tui.status = tview.NewTextView()
	tui.help = tview.NewTextView()

	tui.setupUI()
	tui.setupKeyBindings()

	return tui
}

// NewTUIForTest 创建用于测试的TUI实例（不初始化图形组件）
func NewTUIForTest(state *core.SharedState, tuiConfig *Config) *TUI {
	tui := newTUI(state, tuiConfig)
	tui.testMode = true
	return tui
}

func newTUI(state *core.SharedState, tuiConfig *Config) *TUI {
	cfg := state.Config()
	return &TUI{
		state:     state,
		tuiConfig: tuiConfig,
		loader:    serverlist.Load,
		view:      view{title: cfg.Title()},
		dirty:     make(chan struct{}, 1),
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
	}
}

// SetServerLoader 替换服务器列表加载函数
func (t *TUI) SetServerLoader(loader ServerLoader) {
	t.loader = loader
}

// Run 启动TUI界面，直到用户退出或Stop被调用
func (t *TUI) Run() error {
	// 启动刷新goroutine
	go t.processUpdates()

	// 运行应用
	err := t.app.Run()

	// 确保清理工作完成
	t.Stop()
	<-t.doneChan

	return err
}

// Stop 停止TUI界面，可重复调用
func (t *TUI) Stop() {
	t.stopOnce.Do(func() {
		// 先发送停止信号，让processUpdates退出
		close(t.stopChan)

		// 停止应用
		if t.app != nil {
			t.app.Stop()
		}
	})
}

// SetTitle 实现core.Display，不会阻塞调用方
func (t *TUI) SetTitle(title string) {
	t.viewMu.Lock()
	t.view.title = title
	t.viewMu.Unlock()
	t.markDirty()
}

// SetContent 实现core.Display，不会阻塞调用方
func (t *TUI) SetContent(content string) {
	t.viewMu.Lock()
	t.view.content = content
	t.viewMu.Unlock()
	t.markDirty()
}

// SetStatus 实现core.Display，不会阻塞调用方
func (t *TUI) SetStatus(status string) {
	t.viewMu.Lock()
	t.view.status = status
	t.viewMu.Unlock()
	t.markDirty()
}

// markDirty 通知刷新循环有新内容；已有未处理的通知时直接返回
func (t *TUI) markDirty() {
	select {
	case t.dirty <- struct{}{}:
	default:
	}
}

// snapshot 返回当前的显示内容
func (t *TUI) snapshot() view {
	t.viewMu.Lock()
	defer t.viewMu.Unlock()
	return t.view
}

// processUpdates 按刷新间隔把最新内容交给界面线程，多次更新合并为一次绘制
// 只保留最新的内容，旧内容不会在新内容之后出现
func (t *TUI) processUpdates() {
	defer close(t.doneChan)

	uiTicker := time.NewTicker(t.tuiConfig.RefreshInterval)
	defer uiTicker.Stop()

	// 初始UI刷新
	pending := true

	for {
		select {
		case <-t.dirty:
			pending = true

		case <-uiTicker.C:
			if pending {
				pending = false
				t.handleUIRefresh()
			}

		case <-t.stopChan:
			return
		}
	}
}

// handleUIRefresh 处理UI刷新
func (t *TUI) handleUIRefresh() {
	if !t.testMode && t.app != nil {
		t.safeUIUpdate(t.applyView)
	}
}
