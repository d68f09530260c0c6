// Package chart 提供吞吐量样本窗口、单位自动缩放和ASCII图表渲染
package chart

// Window 是按插入顺序保存样本的有界序列，溢出时从最旧的一端淘汰
// 容量在每次Push时由调用方根据最新视口宽度给出
type Window struct {
	samples []float64
}

// NewWindow 创建空窗口
func NewWindow() *Window {
	return &Window{samples: make([]float64, 0)}
}

// Push 追加一个样本，随后从头部移除样本直到长度不超过capacity
// 缩小终端只会在下一次Push时裁剪窗口
func (w *Window) Push(sample float64, capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	w.samples = append(w.samples, sample)
	if over := len(w.samples) - capacity; over > 0 {
		// 复制到新切片，避免底层数组无限增长
		w.samples = append(make([]float64, 0, capacity), w.samples[over:]...)
	}
}

// Len 返回当前样本数
func (w *Window) Len() int {
	return len(w.samples)
}

// Values 返回样本副本，最旧的在前
func (w *Window) Values() []float64 {
	out := make([]float64, len(w.samples))
	copy(out, w.samples)
	return out
}

// Last 返回最新样本，窗口为空时ok为false
func (w *Window) Last() (sample float64, ok bool) {
	if len(w.samples) == 0 {
		return 0, false
	}
	return w.samples[len(w.samples)-1], true
}

// Reset 清空窗口
func (w *Window) Reset() {
	w.samples = w.samples[:0]
}
