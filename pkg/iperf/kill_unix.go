//go:build unix

package iperf

import (
	"errors"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// terminationMethod 描述本平台终止iperf3的方式
const terminationMethod = "进程组 SIGKILL"

// configureCommand 让iperf3运行在独立的进程组中，终止时可以连同其子进程一起结束
func configureCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProcess 先通过进程对象发送SIGKILL，再终止整个进程组
// 进程对象能识别已回收的进程，此时直接返回，不会把信号发给复用了该PID的无关进程组
func killProcess(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}

	err := cmd.Process.Kill()
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	if err != nil {
		return err
	}

	// 组长尚未被回收，进程组ID仍然有效
	if err := unix.Kill(-cmd.Process.Pid, unix.SIGKILL); err != nil && !errors.Is(err, unix.ESRCH) {
		return err
	}
	return nil
}
