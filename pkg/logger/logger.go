// Package logger 日志模块
// 终端被界面独占，所以日志只写入文件或被丢弃
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// DebugEnv 设置后输出调试级别日志
const DebugEnv = "IPERF3TUI_DEBUG"

// Logger 各组件使用的日志接口，参数与fmt.Printf相同
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// writerLogger 把日志写入任意io.Writer
type writerLogger struct {
	out    *log.Logger
	prefix string
	debug  bool
}

// New 创建写入w的日志器，debug为false时丢弃调试日志
func New(w io.Writer, prefix string, debug bool) Logger {
	return &writerLogger{
		out:    log.New(w, "", log.LstdFlags|log.Lmicroseconds),
		prefix: prefix,
		debug:  debug,
	}
}

// NewFileLogger 以追加方式打开path并创建日志器
// 调试级别由环境变量 IPERF3TUI_DEBUG 控制
func NewFileLogger(path, prefix string) (Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("打开日志文件 %s 失败: %w", path, err)
	}
	return New(f, prefix, os.Getenv(DebugEnv) != ""), f, nil
}

func (l *writerLogger) Debug(format string, args ...interface{}) {
	if l.debug {
		l.out.Printf(l.prefix+" DEBUG: "+format, args...)
	}
}

func (l *writerLogger) Info(format string, args ...interface{}) {
	l.out.Printf(l.prefix+" "+format, args...)
}

func (l *writerLogger) Warn(format string, args ...interface{}) {
	l.out.Printf(l.prefix+" WARN: "+format, args...)
}

func (l *writerLogger) Error(format string, args ...interface{}) {
	l.out.Printf(l.prefix+" ERROR: "+format, args...)
}

// noopLogger 丢弃所有日志
type noopLogger struct{}

// Noop 返回丢弃所有日志的日志器
func Noop() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(format string, args ...interface{}) {}
func (l *noopLogger) Info(format string, args ...interface{})  {}
func (l *noopLogger) Warn(format string, args ...interface{})  {}
func (l *noopLogger) Error(format string, args ...interface{}) {}

// LogMessage 一条被捕获的日志
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger 在内存中捕获日志，供测试断言使用
// 会话控制器在多个goroutine中写日志，所以内部加锁
type BufferLogger struct {
	mu       sync.Mutex
	messages []LogMessage
}

// NewBufferLogger 创建内存日志器
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{messages: make([]LogMessage, 0)}
}

func (l *BufferLogger) add(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, LogMessage{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...interface{}) { l.add("debug", format, args...) }
func (l *BufferLogger) Info(format string, args ...interface{})  { l.add("info", format, args...) }
func (l *BufferLogger) Warn(format string, args ...interface{})  { l.add("warn", format, args...) }
func (l *BufferLogger) Error(format string, args ...interface{}) { l.add("error", format, args...) }

// Messages 返回已捕获日志的副本
func (l *BufferLogger) Messages() []LogMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogMessage, len(l.messages))
	copy(out, l.messages)
	return out
}

// HasLevel 判断是否有给定级别的日志
func (l *BufferLogger) HasLevel(level string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.messages {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Clear 清空已捕获的日志
func (l *BufferLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = l.messages[:0]
}
