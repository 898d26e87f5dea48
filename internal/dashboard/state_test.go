package dashboard

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/gridbot/griddash/internal/domain"
)

func runningResponse(symbol string) *domain.StatusResponse {
	return &domain.StatusResponse{
		IsRunning: true,
		GridStatus: &domain.GridStatus{
			Symbol:       symbol,
			CurrentPrice: 0.001,
			IsRunning:    true,
			Balance:      &domain.Balance{Currency: "usdt", Available: "100"},
			OpenOrders: []domain.Order{
				{OrderID: "1", Side: domain.SideBuy, Price: "0.0009", State: "NEW"},
			},
		},
	}
}

// TestApplyStatusReplacesSnapshot 成功轮询整体替换快照
func TestApplyStatusReplacesSnapshot(t *testing.T) {
	s := NewSessionState()
	s.ApplyStatus(runningResponse("aipg_usdt"), nil)

	if !s.IsRunning || s.Status == nil || s.Status.Symbol != "aipg_usdt" {
		t.Fatalf("成功轮询后应该持有运行中快照，实际 %+v", s)
	}
	if len(s.Orders) != 1 || s.Balance == nil {
		t.Errorf("订单和余额应该一起刷新，实际 orders=%d balance=%v", len(s.Orders), s.Balance)
	}

	s.ApplyStatus(runningResponse("btc_usdt"), nil)
	if s.Status.Symbol != "btc_usdt" {
		t.Errorf("第二次轮询应该整体替换，实际 %s", s.Status.Symbol)
	}
}

// TestApplyStatusErrorKeepsSnapshot 失败的轮询只记错误，绝不清快照
func TestApplyStatusErrorKeepsSnapshot(t *testing.T) {
	s := NewSessionState()
	s.ApplyStatus(runningResponse("aipg_usdt"), nil)

	s.ApplyStatus(nil, errors.New("connection refused"))

	if !s.IsRunning || s.Status == nil || len(s.Orders) != 1 {
		t.Error("瞬时故障不能把面板清空")
	}
	if s.LastError == "" {
		t.Error("失败后应该记录错误消息")
	}

	// 下一次成功清掉错误
	s.ApplyStatus(runningResponse("aipg_usdt"), nil)
	if s.LastError != "" {
		t.Errorf("成功轮询应该清掉错误，实际 %q", s.LastError)
	}
}

// TestApplyStatusNotRunningClears 服务端明确说没在跑才清空
func TestApplyStatusNotRunningClears(t *testing.T) {
	s := NewSessionState()
	s.ApplyStatus(runningResponse("aipg_usdt"), nil)

	s.ApplyStatus(&domain.StatusResponse{IsRunning: false}, nil)
	if s.IsRunning || s.Status != nil || s.Orders != nil || s.Balance != nil {
		t.Errorf("确认停止后应该清空状态，实际 %+v", s)
	}

	// grid_status 缺失同样视为没在跑
	s.ApplyStatus(runningResponse("aipg_usdt"), nil)
	s.ApplyStatus(&domain.StatusResponse{IsRunning: true}, nil)
	if s.IsRunning || s.Status != nil {
		t.Errorf("grid_status 缺失应该视为没在跑，实际 %+v", s)
	}
}

// TestApplyPricesErrorKeepsOld 价格轮询失败保留上一份价格
func TestApplyPricesErrorKeepsOld(t *testing.T) {
	s := NewSessionState()
	xt := 0.001
	s.ApplyPrices(&domain.ExchangePrices{XT: &xt}, nil)

	s.ApplyPrices(nil, errors.New("timeout"))
	if s.Prices == nil || s.Prices.XT == nil {
		t.Error("价格轮询失败不能清掉上一份价格")
	}
	if s.LastError == "" {
		t.Error("失败后应该记录错误消息")
	}
}

// TestBeginOpSingleSlot 槽位被占用时第二个命令必须是 no-op
func TestBeginOpSingleSlot(t *testing.T) {
	s := NewSessionState()

	if !s.BeginOp(OpCreate) {
		t.Fatal("空槽位应该占用成功")
	}
	if s.BeginOp(OpStop) {
		t.Error("槽位被占用时应该返回 false")
	}
	if s.BeginOp(OpCreate) {
		t.Error("同类命令的重复触发同样应该被拒绝")
	}

	s.ReleaseOp()
	if !s.BeginOp(OpStop) {
		t.Error("释放后应该可以重新占用")
	}
}

// TestApplyCreateResultFailure 创建失败必须强制 running=false 并释放槽位
func TestApplyCreateResultFailure(t *testing.T) {
	s := NewSessionState()
	s.IsRunning = true
	s.BeginOp(OpCreate)

	s.ApplyCreateResult(nil, errors.New("insufficient balance"))

	if s.IsRunning {
		t.Error("创建失败后 running 必须为 false")
	}
	if s.LastError == "" {
		t.Error("创建失败应该记录错误消息")
	}
	if s.Op != OpNone {
		t.Error("失败路径同样必须释放槽位")
	}
}

// TestApplyCreateResultSuccess 创建成功走轮询同一套合并规则
func TestApplyCreateResultSuccess(t *testing.T) {
	s := NewSessionState()
	s.BeginOp(OpCreate)

	s.ApplyCreateResult(runningResponse("aipg_usdt"), nil)

	if !s.IsRunning || s.Status == nil {
		t.Error("创建成功后应该持有运行中快照")
	}
	if s.Op != OpNone {
		t.Error("成功路径必须释放槽位")
	}
}

// TestApplyStopResultSuccess 停止成功无条件清空
func TestApplyStopResultSuccess(t *testing.T) {
	s := NewSessionState()
	s.ApplyStatus(runningResponse("aipg_usdt"), nil)
	s.BeginOp(OpStop)

	s.ApplyStopResult(nil)

	if s.IsRunning || s.Status != nil || s.Orders != nil || s.Balance != nil {
		t.Errorf("停止成功后状态应该清空，实际 %+v", s)
	}
	if s.Op != OpNone {
		t.Error("停止成功必须释放槽位")
	}
}

// TestApplyStopResultFailure 停止失败保留已有状态
func TestApplyStopResultFailure(t *testing.T) {
	s := NewSessionState()
	s.ApplyStatus(runningResponse("aipg_usdt"), nil)
	s.BeginOp(OpStop)

	s.ApplyStopResult(errors.New("backend unavailable"))

	if !s.IsRunning || s.Status == nil {
		t.Error("停止失败不能动已有状态")
	}
	if s.LastError == "" {
		t.Error("停止失败应该记录错误消息")
	}
	if s.Op != OpNone {
		t.Error("失败路径同样必须释放槽位")
	}
}
