// Package iperf 错误定义
package iperf

import (
	"errors"
	"fmt"
	"strings"
)

// 错误代码
const (
	ErrNotInstalled = "NOT_INSTALLED" // 找不到iperf3可执行文件
	ErrSpawn        = "SPAWN"         // 进程无法启动
	ErrConnectivity = "CONNECTIVITY"  // 校验阶段在stderr上看到输出
)

// ErrReadTimeout 表示在读超时内没有收到数据，不是失败，调用方应重新检查取消状态后重试
var ErrReadTimeout = errors.New("iperf: read timed out")

// ErrCanceled 表示读操作因取消信号而提前返回
var ErrCanceled = errors.New("iperf: read canceled")

// Error 是带错误代码和修复建议的结构化错误
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// newError 创建结构化错误
func newError(code, message, suggestion string, cause error) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      cause,
	}
}

// Error 实现error接口
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}
	if e.Suggestion != "" {
		b.WriteString(" - ")
		b.WriteString(e.Suggestion)
	}
	return b.String()
}

// Unwrap 返回底层原因，支持errors.Is/errors.As
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode 判断err是否为给定代码的结构化错误
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var iperfErr *Error
	if errors.As(err, &iperfErr) {
		return iperfErr.Code == code
	}
	return false
}

// ConnectivityError 根据校验阶段收到的stderr文本构造连接失败错误
func ConnectivityError(stderr string) *Error {
	return newError(ErrConnectivity, strings.TrimSpace(stderr), "", nil)
}
