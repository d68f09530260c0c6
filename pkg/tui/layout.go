// Package tui 布局管理模块
package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// 页面名称
const (
	pageMain    = "main"
	pageOverlay = "overlay"
)

// helpText 底部的按键说明
const helpText = "[yellow]q[white] 退出  [yellow]s[white] 服务器列表  [yellow]e[white] 手动输入  " +
	"[yellow]r[white] 重启  [yellow]u[white] UDP  [yellow]R[white] 反向  [yellow]6[white] IPv6"

// setupUI 设置用户界面布局
func (t *TUI) setupUI() {
	// 图表内容是纯文本，不解析颜色标签
	t.graph.SetWrap(false)
	t.graph.SetDynamicColors(false)
	t.graph.SetText("正在初始化...")
	t.graph.SetBorder(true)
	t.graph.SetTitle(" " + t.snapshot().title + " ")

	t.status.SetWrap(false)
	t.status.SetTextColor(tcell.ColorGreen)

	t.help.SetDynamicColors(true)
	t.help.SetText(helpText)

	// 主垂直布局：图表占据剩余空间，下方是状态栏和按键说明
	flex := tview.NewFlex()
	flex.SetDirection(tview.FlexRow)
	flex.AddItem(t.graph, 0, 1, false)
	flex.AddItem(t.status, 1, 0, false)
	flex.AddItem(t.help, 1, 0, false)

	t.pages = tview.NewPages()
	t.pages.AddPage(pageMain, flex, true, true)

	// 每次绘制前记录屏幕尺寸，工作goroutine据此计算窗口容量和图表大小
	t.app.SetBeforeDrawFunc(func(screen tcell.Screen) bool {
		t.updateViewport(screen.Size())
		return false
	})

	t.app.SetRoot(t.pages, true)
}

// updateViewport 把屏幕尺寸报告给共享状态
func (t *TUI) updateViewport(width, height int) {
	t.state.SetViewport(width, height)
}

// applyView 把最新内容写入界面组件，必须在界面线程中调用
func (t *TUI) applyView() {
	v := t.snapshot()
	width := t.state.Viewport().Width

	// 标题两侧各留出边框和一个空格
	t.graph.SetTitle(" " + truncateTitle(v.title, width-4) + " ")
	t.graph.SetText(v.content)
	t.status.SetText(v.status)
}

// showOverlay 在主界面上方显示一个页面并让它获得焦点
func (t *TUI) showOverlay(item tview.Primitive) {
	t.pages.RemovePage(pageOverlay)
	t.pages.AddPage(pageOverlay, item, true, true)
	t.app.SetFocus(item)
}

// closeOverlay 关闭覆盖页面，焦点回到主界面
func (t *TUI) closeOverlay() {
	t.pages.RemovePage(pageOverlay)
	t.app.SetFocus(t.graph)
}

// overlayOpen 判断是否有覆盖页面
func (t *TUI) overlayOpen() bool {
	if t.pages == nil {
		return false
	}
	return t.pages.HasPage(pageOverlay)
}

// showMessage 显示一个只有确定按钮的提示框
func (t *TUI) showMessage(text string) {
	modal := tview.NewModal()
	modal.SetText(text)
	modal.AddButtons([]string{"确定"})
	modal.SetDoneFunc(func(int, string) {
		t.closeOverlay()
	})
	t.showOverlay(modal)
}

// centered 把组件放在屏幕中央的固定大小区域内
func centered(item tview.Primitive, width, height int) tview.Primitive {
	column := tview.NewFlex()
	column.SetDirection(tview.FlexRow)
	column.AddItem(nil, 0, 1, false)
	column.AddItem(item, height, 1, true)
	column.AddItem(nil, 0, 1, false)

	row := tview.NewFlex()
	row.AddItem(nil, 0, 1, false)
	row.AddItem(column, width, 1, true)
	row.AddItem(nil, 0, 1, false)
	return row
}

// safeUIUpdate 安全地执行UI更新操作
func (t *TUI) safeUIUpdate(updateFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			// 如果应用已经停止，忽略panic
		}
	}()
	t.app.QueueUpdateDraw(updateFunc)
}
