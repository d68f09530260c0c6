package chart

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Kevin-Rudy/iperf3tui/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWindowEvictsOldest 测试窗口只保留最近的C个样本且顺序不变
func TestWindowEvictsOldest(t *testing.T) {
	w := NewWindow()
	for i := 1; i <= 10; i++ {
		w.Push(float64(i), 4)
		assert.LessOrEqual(t, w.Len(), 4)
	}
	assert.Equal(t, []float64{7, 8, 9, 10}, w.Values())

	last, ok := w.Last()
	require.True(t, ok)
	assert.Equal(t, 10.0, last)
}

// TestWindowShrinkOnNextPush 测试缩小容量只在下一次Push时生效
func TestWindowShrinkOnNextPush(t *testing.T) {
	w := NewWindow()
	for i := 1; i <= 5; i++ {
		w.Push(float64(i), 10)
	}
	assert.Equal(t, 5, w.Len())

	w.Push(6, 2)
	assert.Equal(t, []float64{5, 6}, w.Values())

	// 容量小于1时按1处理
	w.Push(7, 0)
	assert.Equal(t, []float64{7}, w.Values())

	w.Reset()
	assert.Equal(t, 0, w.Len())
	_, ok := w.Last()
	assert.False(t, ok)
}

// TestWindowValuesIsCopy 测试返回值与内部状态隔离
func TestWindowValuesIsCopy(t *testing.T) {
	w := NewWindow()
	w.Push(1, 3)
	values := w.Values()
	values[0] = 99
	assert.Equal(t, []float64{1}, w.Values())
}

// TestScaleTiers 测试各档位的选择与换算
func TestScaleTiers(t *testing.T) {
	tests := []struct {
		name      string
		samples   []float64
		wantLabel string
		want      []float64
	}{
		{"gbits example", []float64{2000, 2000}, "Gbits", []float64{2, 2}},
		{"kbits example", []float64{0.0005}, "Kbits", []float64{0.5}},
		{"mbits", []float64{420, 380}, "Mbits", []float64{420, 380}},
		{"exactly 1000 stays mbits", []float64{1000}, "Mbits", []float64{1000}},
		{"tbits", []float64{2e6, 4e6}, "Tbits", []float64{2, 4}},
		{"pbits", []float64{5e9}, "Pbits", []float64{5}},
		{"bits", []float64{5e-7}, "bits", []float64{0.5}},
		{"exactly 0.001 stays mbits", []float64{0.001}, "Mbits", []float64{0.001}},
		{"zero is bits", []float64{0, 0}, "bits", []float64{0, 0}},
		{"mean decides whole window", []float64{10, 3000}, "Gbits", []float64{0.01, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, label := Scale(tt.samples)
			assert.Equal(t, tt.wantLabel, label)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-9)
			}
		})
	}
}

// TestScaleGbitsRange 测试均值位于(1000, 1000²]的窗口总是选择Gbits
func TestScaleGbitsRange(t *testing.T) {
	for _, mean := range []float64{1000.001, 1500, 999999, 1e6} {
		got, label := Scale([]float64{mean, mean})
		assert.Equal(t, "Gbits", label, "mean=%v", mean)
		assert.InDelta(t, mean/1000, got[0], 1e-9)
	}
}

// TestScaleKbitsRange 测试均值位于[1000⁻², 1000⁻¹)的窗口总是选择Kbits
func TestScaleKbitsRange(t *testing.T) {
	for _, mean := range []float64{1e-6, 0.0005, 0.000999} {
		got, label := Scale([]float64{mean})
		assert.Equal(t, "Kbits", label, "mean=%v", mean)
		assert.InDelta(t, mean*1000, got[0], 1e-12)
	}
}

// TestScaleEmpty 测试空窗口
func TestScaleEmpty(t *testing.T) {
	got, label := Scale(nil)
	assert.Empty(t, got)
	assert.Equal(t, "Mbits", label)
	assert.True(t, math.IsNaN(Mean(nil)))
}

// TestScaleDoesNotMutateInput 测试缩放不修改输入
func TestScaleDoesNotMutateInput(t *testing.T) {
	in := []float64{2000, 4000}
	Scale(in)
	assert.Equal(t, []float64{2000, 4000}, in)
}

// TestFormatRate 测试单值格式化
func TestFormatRate(t *testing.T) {
	assert.Equal(t, "941.5 Mbits/sec", FormatRate(941.5))
	assert.Equal(t, "2.5 Gbits/sec", FormatRate(2500))
	assert.Equal(t, "N/A", FormatRate(math.NaN()))
}

// TestLeftPad 测试左填充
func TestLeftPad(t *testing.T) {
	assert.Equal(t, "    hello", LeftPad("hello", 9))
	assert.Equal(t, " Mbits", LeftPad("Mbits", 6))
	assert.Equal(t, "toolong", LeftPad("toolong", 3))
	assert.Equal(t, "  µs", LeftPad("µs", 4), "width counts characters, not bytes")
}

// TestReplaceAtStart 测试按字符替换开头
func TestReplaceAtStart(t *testing.T) {
	assert.Equal(t, " Mbits┤ rest", ReplaceAtStart(" 420.0┤ rest", " Mbits"))

	// 多字节字符不会被截断，尾部原样保留
	original := "│─╭╮│ tail ✓"
	got := ReplaceAtStart(original, "ab")
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "ab╭╮│ tail ✓", got)

	// 多字节替换串
	assert.Equal(t, "µµcdef", ReplaceAtStart("abcdef", "µµ"))

	// 替换串长于原串
	assert.Equal(t, "longer", ReplaceAtStart("ab", "longer"))
	assert.Equal(t, "abc", ReplaceAtStart("abc", ""))
}

// TestReplaceAtStartPreservesTail 测试任意位置之后的内容原样保留
func TestReplaceAtStartPreservesTail(t *testing.T) {
	original := "αβγδε ┤ 12.5"
	runes := []rune(original)
	for n := 0; n <= len(runes); n++ {
		replacement := strings.Repeat("x", n)
		got := ReplaceAtStart(original, replacement)
		assert.Equal(t, replacement+string(runes[n:]), got)
	}
}

// TestConfigPlotSize 测试绘图尺寸和窗口容量
func TestConfigPlotSize(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	w, h := cfg.PlotSize(core.Viewport{Width: 80, Height: 24})
	assert.Equal(t, 70, w)
	assert.Equal(t, 16, h)
	assert.Equal(t, 70, cfg.Capacity(core.Viewport{Width: 80, Height: 24}))

	w, h = cfg.PlotSize(core.Viewport{Width: 5, Height: 3})
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)

	assert.Error(t, (&Config{HorizontalMargin: -1}).Validate())
}

// TestRenderOverlaysLabel 测试渲染结果第一行以单位标签开头
func TestRenderOverlaysLabel(t *testing.T) {
	r := NewRenderer(DefaultConfig())
	viewport := core.Viewport{Width: 60, Height: 20}

	text := r.Render([]float64{400, 420, 410, 430}, "Mbits", viewport)
	lines := strings.Split(text, "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], " Mbits"), "first line: %q", lines[0])
	assert.Greater(t, len(lines), 1)

	_, height := r.Config().PlotSize(viewport)
	assert.LessOrEqual(t, len(lines), height+2)
}

// TestRenderEmpty 测试空窗口只输出标签
func TestRenderEmpty(t *testing.T) {
	r := NewRenderer(DefaultConfig())
	assert.Equal(t, " Gbits", r.Render(nil, "Gbits", core.DefaultViewport))
}

// TestRenderTinyViewport 测试极小视口不会出错
func TestRenderTinyViewport(t *testing.T) {
	r := NewRenderer(DefaultConfig())
	assert.NotPanics(t, func() {
		r.Render([]float64{1, 2, 3}, "Mbits", core.Viewport{Width: 1, Height: 1})
	})
}

// BenchmarkRender 基准测试图表渲染性能
func BenchmarkRender(b *testing.B) {
	r := NewRenderer(DefaultConfig())
	values := make([]float64, 70)
	for i := range values {
		values[i] = 900 + float64(i%10)*5
	}
	viewport := core.Viewport{Width: 80, Height: 24}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scaled, label := Scale(values)
		r.Render(scaled, label, viewport)
	}
}
