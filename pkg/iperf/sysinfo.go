// Package iperf 系统信息
package iperf

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// GetOSName 获取操作系统名称
func GetOSName() string {
	switch runtime.GOOS {
	case "windows":
		return "Windows"
	case "linux":
		return "Linux"
	case "darwin":
		return "macOS"
	default:
		return runtime.GOOS
	}
}

// GetTerminationMethod 获取终止iperf3进程的方式描述
func GetTerminationMethod() string {
	return terminationMethod
}

// Version 运行 "<binary> --version" 并返回输出的第一行，如 "iperf 3.16 (cJSON 1.7.15)"
func Version(ctx context.Context, binary string) (string, error) {
	out, err := exec.CommandContext(ctx, binary, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("获取iperf3版本失败: %w", err)
	}
	first, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(first), nil
}
