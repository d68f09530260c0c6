// Package tui 服务器选择菜单和手动输入对话框
package tui

import (
	"context"
	"fmt"

	"github.com/Kevin-Rudy/iperf3tui/pkg/core"
	"github.com/Kevin-Rudy/iperf3tui/pkg/serverlist"
	"github.com/dustin/go-humanize"
	"github.com/rivo/tview"
)

// showServerList 显示服务器列表菜单，列表在第一次打开时在后台加载
func (t *TUI) showServerList() {
	if t.testMode {
		return
	}
	if t.servers != nil {
		t.openServerMenu(t.servers)
		return
	}

	source := t.tuiConfig.ServerListSource
	t.showMessage("正在加载服务器列表...\n" + source)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), t.tuiConfig.ServerListTimeout)
		defer cancel()
		servers, err := t.loader(ctx, source)

		t.safeUIUpdate(func() {
			if err != nil {
				t.showMessage("加载服务器列表失败\n" + err.Error())
				return
			}
			t.servers = servers
			t.openServerMenu(servers)
		})
	}()
}

// openServerMenu 显示可选择的服务器列表
func (t *TUI) openServerMenu(servers []serverlist.Server) {
	list := tview.NewList()
	list.ShowSecondaryText(false)
	list.SetBorder(true)
	list.SetTitle(fmt.Sprintf(" 选择服务器（共 %s 个，Enter 确认，Esc 取消） ", humanize.Comma(int64(len(servers)))))

	for _, server := range servers {
		server := server
		list.AddItem(tview.Escape(server.Label()), "", 0, func() {
			t.selectServer(server)
		})
	}
	list.SetDoneFunc(t.closeOverlay)

	t.showOverlay(list)
}

// selectServer 以选中的服务器重启会话
func (t *TUI) selectServer(server serverlist.Server) {
	t.closeOverlay()

	cfg, err := buildEntryConfig(server.Config())
	if err != nil {
		t.showMessage(err.Error())
		return
	}
	t.requestReload(cfg)
}

// showManualEntry 显示手动输入服务器的对话框，初始值为当前配置
func (t *TUI) showManualEntry() {
	if t.testMode {
		return
	}

	entry := t.state.Config()

	form := tview.NewForm()
	form.AddInputField("服务器", entry.Target, 40, nil, func(text string) { entry.Target = text })
	form.AddInputField("端口", entry.Port, 12, acceptPort, func(text string) { entry.Port = text })
	form.AddCheckbox("IPv6", entry.IPv6, func(checked bool) { entry.IPv6 = checked })
	form.AddCheckbox("UDP", entry.UDP, func(checked bool) { entry.UDP = checked })
	form.AddCheckbox("反向", entry.Reverse, func(checked bool) { entry.Reverse = checked })
	form.AddButton("确定", func() {
		cfg, err := buildEntryConfig(entry)
		if err != nil {
			t.showMessage(err.Error())
			return
		}
		t.closeOverlay()
		t.requestReload(cfg)
	})
	form.AddButton("取消", t.closeOverlay)
	form.SetCancelFunc(t.closeOverlay)
	form.SetBorder(true)
	form.SetTitle(" 手动输入服务器 ")

	t.showOverlay(centered(form, 60, 15))
}

// acceptPort 端口输入框只接受数字和'-'
func acceptPort(text string, lastChar rune) bool {
	return (lastChar >= '0' && lastChar <= '9') || lastChar == '-'
}

// buildEntryConfig 校验并规范化对话框输入或列表选中的配置
func buildEntryConfig(entry core.MeasurementConfig) (core.MeasurementConfig, error) {
	if err := entry.Validate(); err != nil {
		return entry, err
	}
	return entry.Normalize()
}
