// Package iperf 输出行解析模块
package iperf

import (
	"regexp"
	"strconv"
	"strings"
)

// LineKind 表示一行输出的分类
type LineKind int

const (
	LineIgnored LineKind = iota // 无法识别的行，静默丢弃
	LineData                    // 含有吞吐量的数据行
	LineSummary                 // "- - -" 汇总/结束分隔行
	LineHeader                  // 含 "Interval" 的表头/表尾行
)

// String 返回分类名称
func (k LineKind) String() string {
	switch k {
	case LineData:
		return "data"
	case LineSummary:
		return "summary"
	case LineHeader:
		return "header"
	default:
		return "ignored"
	}
}

var (
	// tagPattern 匹配 "[<id>] <剩余部分>"
	tagPattern = regexp.MustCompile(`\[([^\]]+)\]\s(.*)$`)

	// ratePattern 匹配紧跟单位和 "/sec" 的数值，如 "420 Mbits/sec"
	ratePattern = regexp.MustCompile(`([\d.]+)\s(\w+)/sec`)
)

// Line 是一行输出的解析结果
type Line struct {
	Kind      LineKind
	ID        string  // 方括号内的流标识，不匹配时为空
	Remainder string  // 方括号之后的内容，不匹配时为整行
	Rate      float64 // 仅LineData有效
	Unit      string  // 工具报告的原始单位，如 "Mbits"
}

// ParseLine 对一行输出进行分类并在可能时提取吞吐量
// 任何无法识别的行都返回LineIgnored，从不报错
func ParseLine(line string) Line {
	result := Line{Kind: LineIgnored, Remainder: strings.TrimSpace(line)}

	if caps := tagPattern.FindStringSubmatch(line); caps != nil {
		result.ID = strings.TrimSpace(caps[1])
		result.Remainder = strings.TrimSpace(caps[2])
	}

	if strings.Contains(line, "- - -") {
		result.Kind = LineSummary
		return result
	}
	if strings.Contains(result.Remainder, "Interval") {
		result.Kind = LineHeader
		return result
	}

	caps := ratePattern.FindStringSubmatch(result.Remainder)
	if caps == nil {
		return result
	}
	rate, err := strconv.ParseFloat(caps[1], 64)
	if err != nil {
		return result
	}

	result.Kind = LineData
	result.Rate = rate
	result.Unit = caps[2]
	return result
}

// unitToMbits 把工具可能报告的比特率单位换算到Mbits
var unitToMbits = map[string]float64{
	"bits":  1e-6,
	"Kbits": 1e-3,
	"Mbits": 1,
	"Gbits": 1e3,
	"Tbits": 1e6,
}

// Mbits 返回以Mbits/sec表示的速率
// 以 --format m 启动时单位总是Mbits；未知单位原样返回
func (l Line) Mbits() float64 {
	if factor, ok := unitToMbits[l.Unit]; ok {
		return l.Rate * factor
	}
	return l.Rate
}
