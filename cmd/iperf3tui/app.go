package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Kevin-Rudy/iperf3tui/pkg/core"
	"github.com/Kevin-Rudy/iperf3tui/pkg/iperf"
	"github.com/Kevin-Rudy/iperf3tui/pkg/logger"
	"github.com/Kevin-Rudy/iperf3tui/pkg/session"
	"github.com/Kevin-Rudy/iperf3tui/pkg/tui"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

// runApp 主要应用逻辑处理函数
func runApp(c *cli.Context) error {
	if c.NArg() > 1 {
		return cli.Exit("错误: 最多只能指定一个iperf3服务器\n使用方法: iperf3tui [iperf3服务器]", 1)
	}

	// 构建配置
	appConfig, err := buildConfigFromCLI(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("配置加载失败: %v", err), 1)
	}

	// 验证配置
	if err := validateConfig(appConfig); err != nil {
		return cli.Exit(fmt.Sprintf("配置验证失败: %v", err), 1)
	}

	// iperf3不存在时直接退出，不进入界面
	binary, err := iperf.Detect(appConfig.IperfConfig.Binary)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	appConfig.IperfConfig.Binary = binary

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return cli.Exit("错误: 标准输出不是终端，无法显示界面", 1)
	}

	log, closer, err := openLogger(appConfig.LogFile)
	if err != nil {
		return cli.Exit(fmt.Sprintf("无法打开日志文件: %v", err), 1)
	}
	defer closer.Close()

	// 显示运行配置
	printRunningConfig(appConfig)

	// 显示系统环境信息
	showSystemInfo(binary)

	supervisor, err := iperf.NewSupervisor(appConfig.IperfConfig)
	if err != nil {
		return cli.Exit(fmt.Sprintf("无法创建iperf3进程管理器: %v", err), 1)
	}

	fmt.Println("\n正在启动TUI界面...")

	// 显示使用说明
	printUsageInstructions()

	state := core.NewSharedState(appConfig.Measurement)
	tuiInstance := tui.NewTUI(state, appConfig.TUIConfig)

	controller, err := session.NewController(state, tuiInstance, session.SupervisorSpawner(supervisor), appConfig.SessionConfig, log)
	if err != nil {
		return cli.Exit(fmt.Sprintf("无法创建测量会话: %v", err), 1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 收到信号时关闭界面
	go func() {
		<-ctx.Done()
		tuiInstance.Stop()
	}()

	controllerDone := make(chan error, 1)
	go func() {
		controllerDone <- controller.Run(ctx)
	}()

	log.Info("界面启动，初始配置 %s", appConfig.Measurement.Title())

	// 启动TUI界面 - 这会阻塞直到用户退出
	runErr := tuiInstance.Run()

	// 界面退出后结束测量会话，等待iperf3进程被回收
	state.Quit()
	cancel()
	if err := <-controllerDone; err != nil && err != context.Canceled {
		log.Error("测量会话异常退出: %v", err)
	}

	if runErr != nil {
		return cli.Exit(fmt.Sprintf("TUI运行出错: %v", runErr), 1)
	}

	fmt.Println("\n程序已退出")
	return nil
}

// openLogger 未指定日志文件时返回不输出的日志器
func openLogger(path string) (logger.Logger, io.Closer, error) {
	if path == "" {
		return logger.Noop(), io.NopCloser(nil), nil
	}
	return logger.NewFileLogger(path, AppName)
}

// printRunningConfig 打印运行配置信息
func printRunningConfig(config *AppConfig) {
	fmt.Printf("测量目标: %s\n", config.Measurement.Title())
	fmt.Printf("iperf3: %s\n", config.IperfConfig.Binary)
	fmt.Printf("读取超时: %v\n", config.SessionConfig.ReadTimeout)
	fmt.Printf("连接检查时长: %v\n", config.SessionConfig.ValidateTimeout)
	fmt.Printf("重启间隔: %v\n", config.SessionConfig.RestartDelay)
	fmt.Printf("服务器列表: %s\n", config.TUIConfig.ServerListSource)
	if config.LogFile != "" {
		fmt.Printf("日志文件: %s\n", config.LogFile)
	}
}
