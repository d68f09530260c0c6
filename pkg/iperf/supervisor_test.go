package iperf

import (
	"errors"
	"testing"

	"github.com/Kevin-Rudy/iperf3tui/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildArgs 测试参数构造顺序
func TestBuildArgs(t *testing.T) {
	prefix := []string{"--forceflush", "--interval", "1", "--time", "0", "--format", "m"}

	tests := []struct {
		name   string
		config core.MeasurementConfig
		want   []string
	}{
		{
			name:   "target only",
			config: core.MeasurementConfig{Target: "iperf.example.net"},
			want:   append(append([]string{}, prefix...), "--client", "iperf.example.net"),
		},
		{
			name: "all flags in canonical order",
			config: core.MeasurementConfig{
				Target:  "iperf.example.net",
				IPv6:    true,
				UDP:     true,
				Reverse: true,
				Port:    "5201-5210",
			},
			want: append(append([]string{}, prefix...),
				"-6", "--port", "5201-5210", "--reverse", "--udp", "--client", "iperf.example.net"),
		},
		{
			name:   "reverse only",
			config: core.MeasurementConfig{Target: "h", Reverse: true},
			want:   append(append([]string{}, prefix...), "--reverse", "--client", "h"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildArgs(tt.config)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.config.Target, got[len(got)-1], "target must be the last argument")
		})
	}
}

// TestConfigValidation 测试配置验证
func TestConfigValidation(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.Error(t, (&Config{Binary: " "}).Validate())
	assert.Error(t, (&Config{Binary: "iperf3", Env: []string{"NOEQUALS"}}).Validate())
	assert.NoError(t, (&Config{Binary: "iperf3", Env: []string{"LANG=C"}}).Validate())
}

// TestNewSupervisorWithOptions 测试选项模式API
func TestNewSupervisorWithOptions(t *testing.T) {
	sup, err := NewSupervisorWithOptions(WithBinary("/opt/iperf3/bin/iperf3"), WithEnv("LANG=C"))
	require.NoError(t, err)
	assert.Equal(t, "/opt/iperf3/bin/iperf3", sup.config.Binary)
	assert.Equal(t, []string{"LANG=C"}, sup.config.Env)

	_, err = NewSupervisorWithOptions(WithBinary(""))
	assert.Error(t, err)
}

// TestStartSpawnFailure 测试可执行文件不存在时返回SPAWN错误
func TestStartSpawnFailure(t *testing.T) {
	sup, err := NewSupervisor(&Config{Binary: "/nonexistent/path/to/iperf3"})
	require.NoError(t, err)

	proc, err := sup.Start(core.MeasurementConfig{Target: "iperf.example.net"})
	assert.Nil(t, proc)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrSpawn))
	assert.False(t, IsCode(err, ErrConnectivity))
}

// TestDetectMissingBinary 测试未安装时的检测结果
func TestDetectMissingBinary(t *testing.T) {
	_, err := Detect("iperf3-definitely-not-installed-here")
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrNotInstalled))
}

// TestErrorFormatting 测试结构化错误的格式和解包
func TestErrorFormatting(t *testing.T) {
	cause := errors.New("exec: not found")
	err := newError(ErrSpawn, "无法运行iperf3", "请确认已经安装", cause)

	assert.Equal(t, "无法运行iperf3: exec: not found - 请确认已经安装", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsCode(nil, ErrSpawn))
	assert.False(t, IsCode(cause, ErrSpawn))

	conn := ConnectivityError("  iperf3: error - unable to connect to server: Connection refused\n")
	assert.Equal(t, "iperf3: error - unable to connect to server: Connection refused", conn.Error())
	assert.True(t, IsCode(conn, ErrConnectivity))
}
