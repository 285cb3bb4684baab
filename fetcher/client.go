// Package fetcher 封装东方财富各数据接口的抓取。
package fetcher

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// 浏览器伪装头，接口对裸 UA 返回空数据
const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	referer   = "https://data.eastmoney.com/"
)

// Client 带限速与随机延时的 HTTP 客户端。
// Sleep 与 Rand 可注入，测试时替换为空实现。
type Client struct {
	HTTP    *http.Client
	Limiter *rate.Limiter
	Sleep   func(time.Duration)
	Rand    func() float64
}

// NewClient 创建客户端：单飞限速（每 500ms 一个请求），超时可配。
func NewClient(timeout time.Duration) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		Limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
		Sleep:   time.Sleep,
		Rand:    rand.Float64,
	}
}

// Get 发起 GET 请求并读取整个响应体，非 200 视为错误。
func (c *Client) Get(rawURL string) ([]byte, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(context.Background()); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", referer)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// Jitter 请求前的随机延时（秒区间），用于错峰防封。
func (c *Client) Jitter(minSec, maxSec float64) {
	if maxSec <= minSec {
		return
	}
	sec := minSec + c.Rand()*(maxSec-minSec)
	c.Sleep(time.Duration(sec * float64(time.Second)))
}
