package iperf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseLine 测试各类输出行的分类
func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantKind LineKind
		wantID   string
		wantRate float64
		wantUnit string
	}{
		{
			name:     "tcp interval line",
			line:     "[ 5] 0.00-1.00 sec 50.0 MBytes 420 Mbits/sec",
			wantKind: LineData,
			wantID:   "5",
			wantRate: 420,
			wantUnit: "Mbits",
		},
		{
			name:     "real spacing with retransmits",
			line:     "[  5]   1.00-2.00   sec   112 MBytes   941 Mbits/sec    0    396 KBytes",
			wantKind: LineData,
			wantID:   "5",
			wantRate: 941,
			wantUnit: "Mbits",
		},
		{
			name:     "udp interval line",
			line:     "[  5]   0.00-1.00   sec   129 KBytes  1.05 Mbits/sec  0.012 ms  0/91 (0%)",
			wantKind: LineData,
			wantID:   "5",
			wantRate: 1.05,
			wantUnit: "Mbits",
		},
		{
			name:     "summary separator",
			line:     "- - - - - - - - - - - - - - - - - - - - - - - - -",
			wantKind: LineSummary,
		},
		{
			name:     "tagged summary separator",
			line:     "[SUM] - - - - - - -",
			wantKind: LineSummary,
			wantID:   "SUM",
		},
		{
			name:     "sender totals",
			line:     "[  5]   0.00-10.00  sec  1.10 GBytes   941 Mbits/sec    0             sender",
			wantKind: LineData,
			wantID:   "5",
			wantRate: 941,
			wantUnit: "Mbits",
		},
		{
			name:     "receiver totals",
			line:     "[  5]   0.00-10.04  sec  1.09 GBytes   936 Mbits/sec                  receiver",
			wantKind: LineData,
			wantID:   "5",
			wantRate: 936,
			wantUnit: "Mbits",
		},
		{
			name:     "header",
			line:     "[ ID] Interval           Transfer     Bitrate         Retr  Cwnd",
			wantKind: LineHeader,
			wantID:   "ID",
		},
		{
			name:     "untagged line with rate",
			line:     "0.00-1.00 sec 1.25 MBytes 10.5 Mbits/sec",
			wantKind: LineData,
			wantRate: 10.5,
			wantUnit: "Mbits",
		},
		{
			name:     "banner",
			line:     "Connecting to host iperf.example.net, port 5201",
			wantKind: LineIgnored,
		},
		{
			name:     "connected line",
			line:     "[  5] local 10.0.0.2 port 50000 connected to 192.0.2.1 port 5201",
			wantKind: LineIgnored,
			wantID:   "5",
		},
		{
			name:     "unparseable number",
			line:     "[  5] 1.2.3 Mbits/sec",
			wantKind: LineIgnored,
			wantID:   "5",
		},
		{
			name:     "empty",
			line:     "",
			wantKind: LineIgnored,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLine(tt.line)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantID, got.ID)
			if tt.wantKind == LineData {
				assert.InDelta(t, tt.wantRate, got.Rate, 1e-9)
				assert.Equal(t, tt.wantUnit, got.Unit)
			}
		})
	}
}

// TestLineMbits 测试单位换算
func TestLineMbits(t *testing.T) {
	assert.InDelta(t, 420.0, Line{Rate: 420, Unit: "Mbits"}.Mbits(), 1e-9)
	assert.InDelta(t, 1500.0, Line{Rate: 1.5, Unit: "Gbits"}.Mbits(), 1e-9)
	assert.InDelta(t, 0.5, Line{Rate: 500, Unit: "Kbits"}.Mbits(), 1e-9)
	assert.InDelta(t, 7.0, Line{Rate: 7, Unit: "furlongs"}.Mbits(), 1e-9)
}

// TestLineKindString 测试分类名称
func TestLineKindString(t *testing.T) {
	assert.Equal(t, "data", LineData.String())
	assert.Equal(t, "summary", LineSummary.String())
	assert.Equal(t, "header", LineHeader.String())
	assert.Equal(t, "ignored", LineIgnored.String())
}

// BenchmarkParseLine 基准测试行解析性能
func BenchmarkParseLine(b *testing.B) {
	line := "[  5]   1.00-2.00   sec   112 MBytes   941 Mbits/sec    0    396 KBytes"
	for i := 0; i < b.N; i++ {
		ParseLine(line)
	}
}
