// Package chart 单位缩放模块
package chart

import (
	"math"

	"github.com/dustin/go-humanize"
)

const unitFactor = 1000.0

// tier 描述一个显示单位档位
type tier struct {
	threshold float64 // 与均值比较的阈值
	above     bool    // true表示 mean > threshold，false表示 mean < threshold
	factor    float64 // 换算倍率
	divide    bool    // true表示样本除以factor，false表示乘以factor
	label     string
}

// scaleTiers 从大到小依次检查，第一个匹配的档位生效
var scaleTiers = []tier{
	{threshold: unitFactor * unitFactor * unitFactor, above: true, factor: unitFactor * unitFactor * unitFactor, divide: true, label: "Pbits"},
	{threshold: unitFactor * unitFactor, above: true, factor: unitFactor * unitFactor, divide: true, label: "Tbits"},
	{threshold: unitFactor, above: true, factor: unitFactor, divide: true, label: "Gbits"},
	{threshold: 1 / (unitFactor * unitFactor), above: false, factor: unitFactor * unitFactor, label: "bits"},
	{threshold: 1 / unitFactor, above: false, factor: unitFactor, label: "Kbits"},
}

// baseTier 没有档位匹配时使用的原生单位
var baseTier = tier{factor: 1, label: "Mbits"}

// matches 判断均值是否落在该档位
func (t tier) matches(mean float64) bool {
	if t.above {
		return mean > t.threshold
	}
	return mean < t.threshold
}

// apply 换算单个样本
func (t tier) apply(v float64) float64 {
	if t.divide {
		return v / t.factor
	}
	return v * t.factor
}

// selectTier 根据均值选择档位
func selectTier(mean float64) tier {
	if math.IsNaN(mean) {
		return baseTier
	}
	for _, t := range scaleTiers {
		if t.matches(mean) {
			return t
		}
	}
	return baseTier
}

// Mean 返回样本的算术平均值，空切片返回NaN
func Mean(samples []float64) float64 {
	if len(samples) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples))
}

// Scale 根据窗口均值（单位Mbits/sec）选择显示单位，并把同一个倍数应用到窗口中的所有样本
// 没有滞回：均值越过阈值时整个窗口的单位立即改变
func Scale(samples []float64) ([]float64, string) {
	selected := selectTier(Mean(samples))

	scaled := make([]float64, len(samples))
	for i, v := range samples {
		scaled[i] = selected.apply(v)
	}
	return scaled, selected.label
}

// FormatRate 以自动选择的单位格式化单个速率（输入单位Mbits/sec），如 "941.5 Mbits/sec"
func FormatRate(mbits float64) string {
	if math.IsNaN(mbits) || math.IsInf(mbits, 0) {
		return "N/A"
	}
	t := selectTier(mbits)
	return humanize.FtoaWithDigits(t.apply(mbits), 2) + " " + t.label + "/sec"
}
