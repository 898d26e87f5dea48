// Package api 封装网格机器人后端的查询/命令接口。
//
// 错误分三类，但在边界上都折叠成一条可读消息交给操作员：
//   - 传输错误：请求没有完成
//   - 业务错误：非 2xx，服务端在 detail 字段里给了原因
//   - 解析错误：2xx 但响应体不是期望的形状
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/gridbot/griddash/internal/domain"
)

const (
	statusEndpoint = "/api/grid/status"
	createEndpoint = "/api/grid/create"
	stopEndpoint   = "/api/grid/stop"
	pricesEndpoint = "/api/prices/all"
)

// Client 后端 HTTP 客户端
type Client struct {
	http *resty.Client
}

// NewClient 创建客户端
//
// 不做自动重试：失败的轮询等下一个固定周期，失败的命令等操作员重新触发。
// resty 会自动读取 HTTP_PROXY/HTTPS_PROXY 环境变量。
func NewClient(baseURL string) *Client {
	baseURL = strings.TrimSuffix(baseURL, "/")

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "griddash")

	return &Client{http: client}
}

// GetStatus 查询当前网格状态
func (c *Client) GetStatus(ctx context.Context) (*domain.StatusResponse, error) {
	resp, err := c.http.R().SetContext(ctx).Get(statusEndpoint)
	if err != nil {
		return nil, errors.Wrap(err, "请求网格状态失败")
	}
	if resp.IsError() {
		return nil, c.asAPIError(resp)
	}

	var out domain.StatusResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, errors.Wrap(err, "解析网格状态响应失败")
	}
	return &out, nil
}

// CreateGrid 创建网格，返回创建后的状态
func (c *Client) CreateGrid(ctx context.Context, params domain.GridParams) (*domain.StatusResponse, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(params).
		Post(createEndpoint)
	if err != nil {
		return nil, errors.Wrap(err, "创建网格请求失败")
	}
	if resp.IsError() {
		return nil, c.asAPIError(resp)
	}

	var out domain.StatusResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, errors.Wrap(err, "解析创建网格响应失败")
	}
	return &out, nil
}

// StopGrid 停止网格
//
// 2xx 响应体不要求携带状态：收到成功应答即视为"网格已停止"。
func (c *Client) StopGrid(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Post(stopEndpoint)
	if err != nil {
		return errors.Wrap(err, "停止网格请求失败")
	}
	if resp.IsError() {
		return c.asAPIError(resp)
	}
	return nil
}

// GetPrices 查询各交易所最新价格
func (c *Client) GetPrices(ctx context.Context) (*domain.ExchangePrices, error) {
	resp, err := c.http.R().SetContext(ctx).Get(pricesEndpoint)
	if err != nil {
		return nil, errors.Wrap(err, "请求交易所价格失败")
	}
	if resp.IsError() {
		return nil, c.asAPIError(resp)
	}

	var out domain.ExchangePrices
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, errors.Wrap(err, "解析交易所价格响应失败")
	}
	return &out, nil
}

// apiError 服务端业务错误（非 2xx，detail 是服务端给的原因）
type apiError struct {
	status int
	detail string
}

func (e *apiError) Error() string {
	if e.detail != "" {
		return e.detail
	}
	return fmt.Sprintf("请求失败: HTTP %d", e.status)
}

// asAPIError 从非 2xx 响应里提取 detail
//
// FastAPI 的校验错误会把 detail 给成数组，非字符串的 detail 一律走通用兜底，
// 不把原始 JSON 甩给操作员。
func (c *Client) asAPIError(resp *resty.Response) error {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	detail := ""
	if err := json.Unmarshal(resp.Body(), &body); err == nil && len(body.Detail) > 0 {
		var s string
		if err := json.Unmarshal(body.Detail, &s); err == nil {
			detail = s
		}
	}
	return &apiError{status: resp.StatusCode(), detail: detail}
}

// Message 把任意一类错误折叠成展示给操作员的消息
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ae *apiError
	if errors.As(err, &ae) {
		return ae.Error()
	}
	return err.Error()
}
