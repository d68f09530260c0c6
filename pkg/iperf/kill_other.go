//go:build !unix

package iperf

import (
	"errors"
	"os"
	"os/exec"
)

// terminationMethod 描述本平台终止iperf3的方式
const terminationMethod = "强制终止进程"

// configureCommand 在非unix平台上不需要额外设置
func configureCommand(cmd *exec.Cmd) {}

// killProcess 强制终止进程，已退出的进程不视为错误
func killProcess(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	err := cmd.Process.Kill()
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return err
}
