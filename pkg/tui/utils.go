// Package tui 工具函数
package tui

import (
	"github.com/mattn/go-runewidth"
)

// truncateTitle 按显示宽度截断标题，宽字符（如中文）按两列计算
// maxWidth<=0 表示宽度未知，原样返回
func truncateTitle(title string, maxWidth int) string {
	if maxWidth <= 0 || runewidth.StringWidth(title) <= maxWidth {
		return title
	}
	return runewidth.Truncate(title, maxWidth, "…")
}
