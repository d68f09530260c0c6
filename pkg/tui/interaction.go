// Package tui 交互控制模块
package tui

import (
	"time"

	"github.com/Kevin-Rudy/iperf3tui/pkg/core"
	"github.com/gdamore/tcell/v2"
)

// setupKeyBindings 设置键盘绑定
func (t *TUI) setupKeyBindings() {
	t.app.SetInputCapture(t.handleKey)
}

// handleKey 处理全局按键；有覆盖页面时只处理Ctrl+C，其余按键交给覆盖页面
func (t *TUI) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyCtrlC {
		t.quit()
		return nil
	}
	if t.overlayOpen() {
		return event
	}
	if event.Key() != tcell.KeyRune {
		return event
	}

	switch event.Rune() {
	case 'q', 'Q':
		t.quit()
	case 'r':
		if t.allowReload() {
			t.state.Restart()
		}
	case 'u':
		t.toggle(func(c *core.MeasurementConfig) { c.UDP = !c.UDP })
	case 'R':
		t.toggle(func(c *core.MeasurementConfig) { c.Reverse = !c.Reverse })
	case '6':
		t.toggle(func(c *core.MeasurementConfig) { c.IPv6 = !c.IPv6 })
	case 's':
		t.showServerList()
	case 'e':
		t.showManualEntry()
	default:
		return event
	}
	return nil
}

// quit 进入Quit状态（同时终止iperf3）并停止界面
func (t *TUI) quit() {
	t.state.Quit()
	t.Stop()
}

// toggle 修改当前配置的一个选项并请求以新配置重启
func (t *TUI) toggle(mutate func(c *core.MeasurementConfig)) {
	if !t.allowReload() {
		return
	}
	cfg := t.state.Config()
	mutate(&cfg)
	t.requestReload(cfg)
}

// requestReload 提交新配置；标题立即更新，不必等待工作goroutine
func (t *TUI) requestReload(cfg core.MeasurementConfig) {
	if t.state.RequestReload(cfg) {
		t.SetTitle(cfg.Title())
	}
}

// allowReload 限制重启类按键的频率，按住按键时不会连续启动大量iperf3进程
func (t *TUI) allowReload() bool {
	now := time.Now()
	if !t.lastReload.IsZero() && now.Sub(t.lastReload) < t.tuiConfig.ReloadInterval {
		return false
	}
	t.lastReload = now
	return true
}
