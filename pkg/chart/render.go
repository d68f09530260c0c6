// Package chart 图表渲染模块
package chart

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/Kevin-Rudy/iperf3tui/pkg/core"
	"github.com/guptarohit/asciigraph"
)

// Config 图表渲染的配置结构
type Config struct {
	HorizontalMargin int  // 视口宽度中为边框和Y轴标签预留的列数
	VerticalMargin   int  // 视口高度中为边框、标题和状态栏预留的行数
	LabelWidth       int  // 单位标签左填充后的最小宽度
	Precision        uint // Y轴标签的小数位数
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		HorizontalMargin: 10,
		VerticalMargin:   8,
		LabelWidth:       6,
		Precision:        2,
	}
}

// Validate 验证配置的合理性
func (c *Config) Validate() error {
	if c.HorizontalMargin < 0 {
		return errors.New("水平边距不能为负数")
	}
	if c.VerticalMargin < 0 {
		return errors.New("垂直边距不能为负数")
	}
	if c.LabelWidth < 0 {
		return errors.New("单位标签宽度不能为负数")
	}
	return nil
}

// PlotSize 返回给定视口下的绘图尺寸，至少为1x1
func (c *Config) PlotSize(viewport core.Viewport) (width, height int) {
	width = viewport.Width - c.HorizontalMargin
	height = viewport.Height - c.VerticalMargin
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

// Capacity 返回给定视口下样本窗口的最大长度
func (c *Config) Capacity(viewport core.Viewport) int {
	width, _ := c.PlotSize(viewport)
	return width
}

// Renderer 把缩放后的样本窗口绘制为ASCII图表
type Renderer struct {
	config *Config
}

// NewRenderer 创建渲染器
func NewRenderer(config *Config) *Renderer {
	return &Renderer{config: config}
}

// Config 返回渲染器使用的配置
func (r *Renderer) Config() *Config {
	return r.config
}

// Render 绘制图表并把单位标签覆盖到第一行的开头
func (r *Renderer) Render(values []float64, label string, viewport core.Viewport) string {
	unit := LeftPad(label, r.config.LabelWidth)
	if len(values) == 0 {
		return unit
	}

	width, height := r.config.PlotSize(viewport)
	plot := asciigraph.Plot(values,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Precision(r.config.Precision),
	)

	first, rest, found := strings.Cut(plot, "\n")
	first = ReplaceAtStart(first, unit)
	if !found {
		return first
	}
	return first + "\n" + rest
}

// LeftPad 用空格在左侧填充s，直到字符数不少于n
func LeftPad(s string, n int) string {
	if count := utf8.RuneCountInString(s); count < n {
		return strings.Repeat(" ", n-count) + s
	}
	return s
}

// ReplaceAtStart 用replacement替换original开头同样数量的字符（按字符而非字节计数）
// 其余部分原样保留，多字节字符不会被截断
func ReplaceAtStart(original, replacement string) string {
	n := utf8.RuneCountInString(replacement)

	// 跳过original开头的n个字符
	offset := 0
	for i := 0; i < n && offset < len(original); i++ {
		_, size := utf8.DecodeRuneInString(original[offset:])
		offset += size
	}
	return replacement + original[offset:]
}
