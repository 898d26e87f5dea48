package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gridbot/griddash/internal/domain"
)

func testParams() domain.GridParams {
	return domain.DefaultGridParams()
}

// TestGetStatusParsesResponse 正常响应解析
func TestGetStatusParsesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/grid/status" {
			t.Errorf("路径应该是 /api/grid/status，实际 %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"is_running": true, "grid_status": {"symbol": "aipg_usdt", "is_running": true}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.GetStatus(context.Background())
	if err != nil {
		t.Fatalf("不应该报错: %v", err)
	}
	if !resp.IsRunning || resp.GridStatus == nil || resp.GridStatus.Symbol != "aipg_usdt" {
		t.Errorf("响应解析不对: %+v", resp)
	}
}

// TestDetailExtracted 非 2xx 时提取 detail 作为错误消息
func TestDetailExtracted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "网格已经在运行"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.CreateGrid(context.Background(), testParams())
	if err == nil {
		t.Fatal("非 2xx 应该报错")
	}
	if Message(err) != "网格已经在运行" {
		t.Errorf("应该提取 detail 作为消息，实际 %q", Message(err))
	}
}

// TestNonStringDetailFallsBack detail 不是字符串时走通用兜底
func TestNonStringDetailFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": [{"loc": ["body", "positions"], "msg": "value is not a valid integer"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GetStatus(context.Background())
	if err == nil {
		t.Fatal("非 2xx 应该报错")
	}
	want := "请求失败: HTTP 422"
	if Message(err) != want {
		t.Errorf("数组 detail 应该走兜底消息 %q，实际 %q", want, Message(err))
	}
}

// TestParseErrorReported 2xx 但响应体不是期望形状
func TestParseErrorReported(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GetPrices(context.Background())
	if err == nil {
		t.Fatal("响应体不是 JSON 应该报解析错误")
	}
	if Message(err) == "" {
		t.Error("解析错误也必须有可读消息")
	}
}

// TestTransportErrorReported 后端不可达
func TestTransportErrorReported(t *testing.T) {
	// 端口 1 基本不会有服务在听
	client := NewClient("http://127.0.0.1:1")
	_, err := client.GetStatus(context.Background())
	if err == nil {
		t.Fatal("连不上后端应该报传输错误")
	}
	if Message(err) == "" {
		t.Error("传输错误也必须有可读消息")
	}
}

// TestStopGridEmptyBodyOK stop 的 2xx 响应体可以为空
func TestStopGridEmptyBodyOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/grid/stop" {
			t.Errorf("应该 POST /api/grid/stop，实际 %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if err := client.StopGrid(context.Background()); err != nil {
		t.Errorf("空响应体的 2xx 不应该报错: %v", err)
	}
}

// TestBaseURLTrailingSlash 基础地址末尾的斜杠被规整
func TestBaseURLTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/grid/status" {
			t.Errorf("路径不应该出现双斜杠，实际 %s", r.URL.Path)
		}
		w.Write([]byte(`{"is_running": false}`))
	}))
	defer server.Close()

	client := NewClient(server.URL + "/")
	if _, err := client.GetStatus(context.Background()); err != nil {
		t.Errorf("不应该报错: %v", err)
	}
}
