package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		log       func(l Logger)
		expect    string
		expectLog bool
	}{
		{"info", false, func(l Logger) { l.Info("hello %d", 1) }, "[t] hello 1", true},
		{"warn", false, func(l Logger) { l.Warn("careful") }, "[t] WARN: careful", true},
		{"error", false, func(l Logger) { l.Error("boom %s", "x") }, "[t] ERROR: boom x", true},
		{"debug enabled", true, func(l Logger) { l.Debug("trace") }, "[t] DEBUG: trace", true},
		{"debug disabled", false, func(l Logger) { l.Debug("trace") }, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(&buf, "[t]", tt.debug)
			tt.log(l)

			if tt.expectLog {
				assert.Contains(t, buf.String(), tt.expect)
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestNewFileLogger(t *testing.T) {
	t.Setenv(DebugEnv, "1")
	path := filepath.Join(t.TempDir(), "iperf3tui.log")

	l, closer, err := NewFileLogger(path, "[session]")
	require.NoError(t, err)
	l.Info("first")
	l.Debug("second")
	require.NoError(t, closer.Close())

	// 追加模式
	l, closer, err = NewFileLogger(path, "[session]")
	require.NoError(t, err)
	l.Warn("third")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[session] first")
	assert.Contains(t, string(data), "[session] DEBUG: second")
	assert.Contains(t, string(data), "[session] WARN: third")
}

func TestNewFileLogger_BadPath(t *testing.T) {
	_, _, err := NewFileLogger(filepath.Join(t.TempDir(), "missing", "x.log"), "")
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	l := Noop()
	assert.NotPanics(t, func() {
		l.Debug("a")
		l.Info("b")
		l.Warn("c")
		l.Error("d")
	})
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()
	l.Info("started %s", "x")
	l.Error("failed")

	msgs := l.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, LogMessage{Level: "info", Message: "started x"}, msgs[0])
	assert.True(t, l.HasLevel("error"))
	assert.False(t, l.HasLevel("warn"))

	l.Clear()
	assert.Empty(t, l.Messages())
}

func TestBufferLogger_Concurrent(t *testing.T) {
	l := NewBufferLogger()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				l.Debug("worker %d line %d", n, j)
			}
		}(i)
	}
	wg.Wait()
	assert.Len(t, l.Messages(), 400)
}
