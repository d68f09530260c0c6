// Package serverlist 加载公共iperf3服务器列表
// 列表是CSV格式，列依次为 IP/HOST, OPTIONS, GB/S, CONTINENT, COUNTRY, SITE, PROVIDER
package serverlist

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Kevin-Rudy/iperf3tui/pkg/core"
)

// DefaultURL 公共服务器列表的下载地址
const DefaultURL = "https://export.iperf3serverlist.net/listed_iperf3_servers.csv"

// DefaultTimeout 下载列表的默认超时
const DefaultTimeout = 15 * time.Second

// Server 服务器列表中的一行
type Server struct {
	Host      string
	Options   string // 原始的iperf3参数，如 "-p 5201-5210 -6"
	Speed     string // 标称带宽（Gbit/s），原样保留
	Continent string
	Country   string
	Site      string
	Provider  string
}

// Label 返回用于菜单显示的一行摘要
func (s Server) Label() string {
	var b strings.Builder
	b.WriteString(s.Host)
	if place := strings.TrimSpace(strings.Join(nonEmpty(s.Country, s.Site), " ")); place != "" {
		b.WriteString("  [" + place + "]")
	}
	if s.Provider != "" {
		b.WriteString("  " + s.Provider)
	}
	if s.Speed != "" {
		b.WriteString("  (" + s.Speed + " Gbit/s)")
	}
	return b.String()
}

// Config 把这一行转换为测量配置，OPTIONS中识别端口、IPv6、反向和UDP参数
func (s Server) Config() core.MeasurementConfig {
	cfg := core.MeasurementConfig{Target: s.Host}

	fields := strings.Fields(s.Options)
	for i := 0; i < len(fields); i++ {
		field := fields[i]
		switch {
		case field == "-p" || field == "--port":
			if i+1 < len(fields) {
				cfg.Port = fields[i+1]
				i++
			}
		case strings.HasPrefix(field, "--port="):
			cfg.Port = strings.TrimPrefix(field, "--port=")
		case strings.HasPrefix(field, "-p") && len(field) > 2:
			cfg.Port = field[2:]
		case field == "-6" || field == "--version6":
			cfg.IPv6 = true
		case field == "-R" || field == "--reverse":
			cfg.Reverse = true
		case field == "-u" || field == "--udp":
			cfg.UDP = true
		}
	}
	return cfg
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// IsURL 判断source是否为http(s)地址
func IsURL(source string) bool {
	lower := strings.ToLower(strings.TrimSpace(source))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Load 从本地文件或http(s)地址加载服务器列表
func Load(ctx context.Context, source string) ([]Server, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, errors.New("服务器列表来源不能为空")
	}
	if IsURL(source) {
		return Fetch(ctx, source)
	}

	payload, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("读取服务器列表文件 %s 失败: %w", source, err)
	}
	return Parse(payload)
}

// Fetch 下载并解析服务器列表；ctx没有截止时间时使用DefaultTimeout
func Fetch(ctx context.Context, rawURL string) ([]Server, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("无效的服务器列表地址: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("下载服务器列表失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("下载服务器列表失败: 服务器返回 %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取服务器列表响应失败: %w", err)
	}
	return Parse(body)
}

// Parse 解析CSV内容，跳过表头、注释和空行
func Parse(raw []byte) ([]Server, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var servers []Server
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("解析服务器列表失败: %w", err)
		}

		host := field(record, 0)
		if host == "" || strings.HasPrefix(host, "#") || strings.EqualFold(host, "IP/HOST") {
			continue
		}

		servers = append(servers, Server{
			Host:      host,
			Options:   field(record, 1),
			Speed:     field(record, 2),
			Continent: field(record, 3),
			Country:   field(record, 4),
			Site:      field(record, 5),
			Provider:  field(record, 6),
		})
	}

	if len(servers) == 0 {
		return nil, errors.New("服务器列表中没有可用的服务器")
	}
	return servers, nil
}

// field 返回第idx列去除空白后的值，缺失的列返回空串
func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
