package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Kevin-Rudy/iperf3tui/pkg/iperf"
)

// 程序信息常量
const (
	AppName    = "iperf3tui"
	AppVersion = "0.1.0"
	AppDesc    = "在终端中实时绘制iperf3吞吐量曲线的仪表盘"
)

// iperfVersion 返回iperf3的版本描述，无法获取时返回原因
func iperfVersion(binary string) string {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	version, err := iperf.Version(ctx, binary)
	if err != nil {
		return "未知 (" + err.Error() + ")"
	}
	return version
}

// showSystemInfo 显示系统环境信息
func showSystemInfo(binary string) {
	fmt.Println("\n系统信息:")
	fmt.Printf("  操作系统: %s\n", iperf.GetOSName())
	fmt.Printf("  终止方式: %s\n", iperf.GetTerminationMethod())
	fmt.Printf("  iperf3:   %s\n", iperfVersion(binary))
}

// printUsageInstructions 显示TUI操作说明
func printUsageInstructions() {
	fmt.Println("操作说明:")
	fmt.Println("  s           - 从服务器列表中选择")
	fmt.Println("  e           - 手动输入服务器")
	fmt.Println("  r           - 以当前配置重启测量")
	fmt.Println("  u / R / 6   - 切换 UDP / 反向 / IPv6")
	fmt.Println("  q 或 Ctrl+C - 退出程序")
	fmt.Println("========================================")
}
