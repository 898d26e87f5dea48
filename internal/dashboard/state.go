package dashboard

import (
	"github.com/sirupsen/logrus"

	"github.com/gridbot/griddash/internal/api"
	"github.com/gridbot/griddash/internal/domain"
)

// Operation 单槽位操作标记：同一时刻最多一个变更命令在途
type Operation int

const (
	OpNone Operation = iota
	OpCreate
	OpStop
)

func (op Operation) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpStop:
		return "stop"
	default:
		return "none"
	}
}

// SessionState 当前会话的全部共享状态
//
// 只有同步器和命令门会改它，而且所有修改都发生在事件回调里
// （单线程协作调度），不需要加锁。
type SessionState struct {
	IsRunning bool
	Status    *domain.GridStatus
	Orders    []domain.Order
	Balance   *domain.Balance
	Prices    *domain.ExchangePrices
	LastError string
	Op        Operation
}

// NewSessionState 创建空会话状态
func NewSessionState() *SessionState {
	return &SessionState{}
}

// BeginOp 尝试占用操作槽位（compare-and-set）
//
// 已有命令在途时返回 false，调用方必须把这次触发当作 no-op，
// 不发任何网络请求。占用成功会同时清掉上一条错误。
func (s *SessionState) BeginOp(op Operation) bool {
	if s.Op != OpNone {
		logrus.WithField("op", op.String()).Debug("操作槽位被占用，忽略本次触发")
		return false
	}
	s.Op = op
	s.LastError = ""
	return true
}

// ReleaseOp 释放操作槽位
//
// 每次命令恰好释放一次：命令结果消息只会到达一次，
// 结果处理函数用 defer 保证成功失败都会走到这里。
func (s *SessionState) ReleaseOp() {
	s.Op = OpNone
}

// ApplyStatus 把一次状态轮询的结果合并进会话状态
//
// 失败时只记错误，不动已有快照：可用性优先于新鲜度，瞬时网络故障
// 不能把面板清空。成功时整体替换，唯一主动丢弃旧数据的情况是
// 服务端明确报告"没有网格在跑"（is_running=false 或 grid_status 缺失）。
func (s *SessionState) ApplyStatus(resp *domain.StatusResponse, err error) {
	if err != nil {
		s.LastError = api.Message(err)
		logrus.WithField("err", s.LastError).Warn("状态轮询失败，保留上一份快照")
		return
	}

	s.LastError = ""

	if resp == nil || !resp.IsRunning || resp.GridStatus == nil {
		s.IsRunning = false
		s.Status = nil
		s.Orders = nil
		s.Balance = nil
		// 响应里带了余额/订单就仍然刷新（比如刚停止但服务端还回了余额）
		if resp != nil && resp.GridStatus != nil {
			if resp.GridStatus.Balance != nil {
				s.Balance = resp.GridStatus.Balance
			}
			if resp.GridStatus.OpenOrders != nil {
				s.Orders = resp.GridStatus.OpenOrders
			}
		}
		return
	}

	st := *resp.GridStatus
	s.IsRunning = true
	s.Status = &st
	if st.Balance != nil {
		s.Balance = st.Balance
	}
	if st.OpenOrders != nil {
		s.Orders = st.OpenOrders
	}
}

// ApplyPrices 把一次价格轮询的结果合并进会话状态
//
// 失败同样不清旧价格，两个轮询周期互不影响。
func (s *SessionState) ApplyPrices(prices *domain.ExchangePrices, err error) {
	if err != nil {
		s.LastError = api.Message(err)
		logrus.WithField("err", s.LastError).Warn("价格轮询失败，保留上一份快照")
		return
	}
	s.Prices = prices
}

// ApplyCreateResult 处理 create 命令的结果
//
// 失败时强制 running=false：创建失败不可能启动网格。
// 成功时走和轮询同一套合并规则。
func (s *SessionState) ApplyCreateResult(resp *domain.StatusResponse, err error) {
	defer s.ReleaseOp()

	if err != nil {
		s.LastError = api.Message(err)
		s.IsRunning = false
		logrus.WithField("err", s.LastError).Error("创建网格失败")
		return
	}
	logrus.Info("创建网格成功")
	s.ApplyStatus(resp, nil)
}

// ApplyStopResult 处理 stop 命令的结果
//
// stop 是幂等终态：一旦服务端确认，无条件清空状态。
// 失败只报错误，已有状态原样保留。
func (s *SessionState) ApplyStopResult(err error) {
	defer s.ReleaseOp()

	if err != nil {
		s.LastError = api.Message(err)
		logrus.WithField("err", s.LastError).Error("停止网格失败")
		return
	}
	logrus.Info("停止网格成功")
	s.LastError = ""
	s.IsRunning = false
	s.Status = nil
	s.Orders = nil
	s.Balance = nil
}
