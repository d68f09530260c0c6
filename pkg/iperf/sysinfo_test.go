package iperf

import (
	"context"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetOSName 测试操作系统名称
func TestGetOSName(t *testing.T) {
	name := GetOSName()
	assert.NotEmpty(t, name)
	if runtime.GOOS == "linux" {
		assert.Equal(t, "Linux", name)
	}
	assert.NotEmpty(t, GetTerminationMethod())
}

// TestVersion 测试版本查询
func TestVersion(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := Version(ctx, "/nonexistent/iperf3")
	assert.Error(t, err)

	// echo会原样输出参数，足以验证只取第一行
	if _, err := exec.LookPath("echo"); err != nil {
		t.Skip("echo not available")
	}
	version, err := Version(ctx, "echo")
	require.NoError(t, err)
	assert.Equal(t, "--version", version)
}
