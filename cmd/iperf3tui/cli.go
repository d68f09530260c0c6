package main

import (
	"fmt"
	"time"

	"github.com/Kevin-Rudy/iperf3tui/pkg/iperf"
	"github.com/Kevin-Rudy/iperf3tui/pkg/serverlist"
	"github.com/urfave/cli/v2"
)

// createCliApp 创建CLI应用实例
func createCliApp() *cli.App {
	app := &cli.App{
		Name:    AppName,
		Version: AppVersion,
		Usage:   AppDesc,
		Flags:   createCliFlags(),
		Action:  runApp,
		Before: func(c *cli.Context) error {
			// 显示启动信息
			fmt.Printf("正在启动 %s v%s...\n", AppName, AppVersion)
			return nil
		},
		ArgsUsage: "[iperf3服务器]",
	}

	// 添加版本子命令
	app.Commands = createCommands()

	return app
}

// createCliFlags 创建CLI参数定义
func createCliFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "6",
			Usage: "仅使用IPv6",
		},
		&cli.BoolFlag{
			Name:    "udp",
			Aliases: []string{"u"},
			Usage:   "使用UDP而不是TCP",
		},
		&cli.BoolFlag{
			Name:    "reverse",
			Aliases: []string{"R"},
			Usage:   "反向模式（服务器发送，客户端接收）",
		},
		&cli.StringFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "服务器端口或端口范围 (例如: 5201, 5201-5210)",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML配置文件路径",
		},
		&cli.StringFlag{
			Name:  "servers",
			Value: serverlist.DefaultURL,
			Usage: "服务器列表CSV的文件路径或URL",
		},
		&cli.StringFlag{
			Name:  "binary",
			Value: iperf.DefaultConfig().Binary,
			Usage: "iperf3可执行文件名或路径",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "日志文件路径，不指定时不写日志（设置 IPERF3TUI_DEBUG 输出调试日志）",
		},
		&cli.DurationFlag{
			Name:  "read-timeout",
			Value: iperf.DefaultReadTimeout,
			Usage: "单次读取iperf3输出的超时时间 (例如: 5s)",
		},
		&cli.DurationFlag{
			Name:  "validate-timeout",
			Value: 5 * time.Second,
			Usage: "启动后检查iperf3错误输出的时长 (例如: 5s)",
		},
		&cli.DurationFlag{
			Name:  "restart-delay",
			Value: time.Second,
			Usage: "连接失败或输出结束后重新启动前的等待时间 (例如: 1s)",
		},
		&cli.DurationFlag{
			Name:  "refresh-rate",
			Value: 100 * time.Millisecond,
			Usage: "UI刷新频率 (例如: 100ms, 500ms)",
		},
	}
}

// createCommands 创建子命令
func createCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:    "version",
			Aliases: []string{"v"},
			Usage:   "显示详细版本信息",
			Action: func(c *cli.Context) error {
				fmt.Printf("%s v%s\n", AppName, AppVersion)
				fmt.Printf("描述: %s\n", AppDesc)
				fmt.Printf("系统: %s\n", iperf.GetOSName())
				fmt.Printf("终止方式: %s\n", iperf.GetTerminationMethod())
				fmt.Printf("iperf3: %s\n", iperfVersion(c.String("binary")))
				return nil
			},
		},
	}
}
