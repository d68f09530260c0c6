// Package iperf 带超时的流读取模块
package iperf

import (
	"bytes"
	"io"
	"strings"
	"time"
)

// DefaultReadTimeout 单次读操作的默认超时
const DefaultReadTimeout = 5 * time.Second

const readChunkSize = 4096

// readResult 一次底层读操作的结果
type readResult struct {
	data []byte
	err  error
}

// TimeoutReader 为不支持截止时间的流（如进程管道）提供带超时、可取消的读操作
// 同一时刻最多只有一个底层读操作在进行；超时后该读操作保留，下次调用继续等待它的结果，
// 因此只有在调用方请求时才会从流中消费数据
type TimeoutReader struct {
	r       io.Reader
	timeout time.Duration
	results chan readResult
	pending bool
}

// NewTimeoutReader 创建带超时的读取器，timeout<=0时使用默认值
func NewTimeoutReader(r io.Reader, timeout time.Duration) *TimeoutReader {
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}
	return &TimeoutReader{
		r:       r,
		timeout: timeout,
		results: make(chan readResult, 1),
	}
}

// ReadChunk 读取下一块数据
// 超时返回ErrReadTimeout，cancel被关闭时返回ErrCanceled，流结束时返回io.EOF
func (t *TimeoutReader) ReadChunk(cancel <-chan struct{}) ([]byte, error) {
	// 已经取消时不再发起新的读操作
	select {
	case <-cancel:
		return nil, ErrCanceled
	default:
	}

	if !t.pending {
		t.pending = true
		go func() {
			buf := make([]byte, readChunkSize)
			n, err := t.r.Read(buf)
			t.results <- readResult{data: buf[:n], err: err}
		}()
	}

	timer := time.NewTimer(t.timeout)
	defer timer.Stop()

	select {
	case res := <-t.results:
		t.pending = false
		if len(res.data) > 0 {
			// 数据优先，错误留给下一次读取
			return res.data, nil
		}
		if res.err == nil {
			return nil, nil
		}
		return nil, res.err
	case <-timer.C:
		return nil, ErrReadTimeout
	case <-cancel:
		return nil, ErrCanceled
	}
}

// LineReader 逐字节地把流重新组装成行
type LineReader struct {
	tr      *TimeoutReader
	pending []byte // 已读取但尚未组成完整行的字节
	eof     bool
}

// NewLineReader 创建按行读取的读取器
func NewLineReader(r io.Reader, timeout time.Duration) *LineReader {
	return &LineReader{tr: NewTimeoutReader(r, timeout)}
}

// Next 返回下一行（不含行结束符）
// 行内的非法UTF-8字节被替换为U+FFFD；流结束前残留的不完整行作为最后一行返回
func (l *LineReader) Next(cancel <-chan struct{}) (string, error) {
	for {
		if idx := bytes.IndexByte(l.pending, '\n'); idx >= 0 {
			raw := l.pending[:idx]
			l.pending = l.pending[idx+1:]
			return decodeLine(raw), nil
		}

		if l.eof {
			if len(l.pending) > 0 {
				raw := l.pending
				l.pending = nil
				return decodeLine(raw), nil
			}
			return "", io.EOF
		}

		chunk, err := l.tr.ReadChunk(cancel)
		if len(chunk) > 0 {
			l.pending = append(l.pending, chunk...)
			continue
		}
		switch err {
		case nil:
			continue
		case ErrReadTimeout, ErrCanceled:
			return "", err
		default:
			// 进程被终止后管道关闭等错误一律视为流结束
			l.eof = true
		}
	}
}

// decodeLine 宽松地解码一行：去掉结尾的\r，替换非法字节
func decodeLine(raw []byte) string {
	raw = bytes.TrimSuffix(raw, []byte{'\r'})
	return strings.ToValidUTF8(string(raw), "\uFFFD")
}

// ReadAvailable 在总时长window内收集流中出现的所有数据，遇到流结束或取消时提前返回
// 用于启动后的校验阶段：iperf3连接失败时会立即在stderr上输出错误并退出
func ReadAvailable(tr *TimeoutReader, window time.Duration, cancel <-chan struct{}) ([]byte, error) {
	var collected []byte
	deadline := time.NewTimer(window)
	defer deadline.Stop()

	stop := make(chan struct{})
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(stop)
		select {
		case <-deadline.C:
		case <-cancel:
		case <-done:
		}
	}()

	for {
		chunk, err := tr.ReadChunk(stop)
		collected = append(collected, chunk...)
		switch err {
		case nil:
			continue
		case ErrReadTimeout:
			continue
		case ErrCanceled:
			select {
			case <-cancel:
				return collected, ErrCanceled
			default:
				return collected, nil
			}
		default:
			// 流结束
			return collected, nil
		}
	}
}
