package dashboard

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gridbot/griddash/internal/api"
	"github.com/gridbot/griddash/internal/domain"
)

// statusTickMsg 状态轮询定时消息
type statusTickMsg time.Time

// pricesTickMsg 价格轮询定时消息（和状态轮询相互独立）
type pricesTickMsg time.Time

// statusResultMsg 状态抓取结果
type statusResultMsg struct {
	gen  int
	resp *domain.StatusResponse
	err  error
}

// pricesResultMsg 价格抓取结果
type pricesResultMsg struct {
	gen    int
	prices *domain.ExchangePrices
	err    error
}

// createResultMsg create 命令结果
type createResultMsg struct {
	gen  int
	resp *domain.StatusResponse
	err  error
}

// stopResultMsg stop 命令结果
type stopResultMsg struct {
	gen int
	err error
}

// paramFields 参数草稿里可编辑的字段顺序
var paramFields = []string{"positions", "total_amount", "min_distance", "max_distance"}

// Options 面板运行参数
type Options struct {
	BaseURL      string
	PollInterval time.Duration
	Params       domain.GridParams
}

// Model 面板的 bubbletea 模型
//
// bubbletea 把所有消息串行送进 Update，正好就是这套状态机需要的
// 单线程协作调度：网络 I/O 在 tea.Cmd 的 goroutine 里跑，但它们
// 只产出消息，不碰任何状态。
type Model struct {
	state  *SessionState
	view   ViewState
	client *api.Client

	baseURL      string
	pollInterval time.Duration

	// params 参数草稿，提交 create 前只存在于客户端
	params     domain.GridParams
	paramField int

	// gen 代际计数：teardown（或退出）时自增，在途请求带着旧代际
	// 回来会被直接丢弃，不依赖请求取消
	gen     int
	closing bool

	lastStatusAt time.Time
	width        int
	height       int
}

// NewModel 创建模型
func NewModel(client *api.Client, opts Options) Model {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	params := opts.Params
	if params.Symbol == "" {
		params = domain.DefaultGridParams()
	}
	return Model{
		state:        NewSessionState(),
		view:         NewViewState(),
		client:       client,
		baseURL:      opts.BaseURL,
		pollInterval: interval,
		params:       params,
	}
}

// Init 启动时立刻各抓一次，然后两个独立的固定周期定时器开始跑
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchStatusCmd(),
		m.fetchPricesCmd(),
		m.statusTickCmd(),
		m.pricesTickCmd(),
	)
}

// Update 处理消息并更新模型
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case statusTickMsg:
		if m.closing {
			return m, nil
		}
		// 定时器无条件重挂：单次抓取失败不影响节奏，也不做退避
		return m, tea.Batch(m.fetchStatusCmd(), m.statusTickCmd())

	case pricesTickMsg:
		if m.closing {
			return m, nil
		}
		return m, tea.Batch(m.fetchPricesCmd(), m.pricesTickCmd())

	case statusResultMsg:
		if m.closing || msg.gen != m.gen {
			return m, nil
		}
		m.state.ApplyStatus(msg.resp, msg.err)
		if msg.err == nil {
			m.lastStatusAt = time.Now()
		}
		m.clampPage()
		return m, nil

	case pricesResultMsg:
		if m.closing || msg.gen != m.gen {
			return m, nil
		}
		m.state.ApplyPrices(msg.prices, msg.err)
		return m, nil

	case createResultMsg:
		if m.closing || msg.gen != m.gen {
			return m, nil
		}
		m.state.ApplyCreateResult(msg.resp, msg.err)
		m.clampPage()
		// 命令完成后按需补一次同步，把命令结果和服务端对齐
		return m, m.fetchStatusCmd()

	case stopResultMsg:
		if m.closing || msg.gen != m.gen {
			return m, nil
		}
		m.state.ApplyStopResult(msg.err)
		m.clampPage()
		return m, m.fetchStatusCmd()
	}

	return m, nil
}

// handleKey 按键处理
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		// 代际自增：在途请求的结果回来时会因为代际不匹配被丢弃
		m.closing = true
		m.gen++
		return m, tea.Quit

	case "r":
		return m, tea.Batch(m.fetchStatusCmd(), m.fetchPricesCmd())

	case "s":
		// 槽位被占用时是调用方可见的 no-op：不发任何网络请求
		if !m.state.BeginOp(OpCreate) {
			return m, nil
		}
		return m, m.createCmd(m.params)

	case "x":
		if !m.state.BeginOp(OpStop) {
			return m, nil
		}
		return m, m.stopCmd()

	case "f":
		m.view.SetFilterSide(nextSideFilter(m.view.FilterSide))
		return m, nil

	case "t":
		m.view.SetFilterStatus(nextStatusFilter(m.view.FilterStatus))
		return m, nil

	case "1":
		m.view.SortBy(SortBySide)
	case "2":
		m.view.SortBy(SortByPrice)
	case "3":
		m.view.SortBy(SortByOrigQty)
	case "4":
		m.view.SortBy(SortByExecutedQty)
	case "5":
		m.view.SortBy(SortByState)

	case "[":
		m.view.Page--
		m.clampPage()
	case "]":
		m.view.Page++
		m.clampPage()

	case "tab":
		m.paramField = (m.paramField + 1) % len(paramFields)
	case "+", "=":
		m.adjustParam(1)
	case "-", "_":
		m.adjustParam(-1)
	}

	return m, nil
}

// adjustParam 调整参数草稿里当前选中的字段
func (m *Model) adjustParam(direction int) {
	d := float64(direction)
	switch paramFields[m.paramField] {
	case "positions":
		m.params.Positions += direction
		if m.params.Positions < 1 {
			m.params.Positions = 1
		}
	case "total_amount":
		m.params.TotalAmount += d * 10
		if m.params.TotalAmount < 0 {
			m.params.TotalAmount = 0
		}
	case "min_distance":
		m.params.MinDistance += d * 0.1
		if m.params.MinDistance < 0 {
			m.params.MinDistance = 0
		}
	case "max_distance":
		m.params.MaxDistance += d * 0.5
		if m.params.MaxDistance < 0 {
			m.params.MaxDistance = 0
		}
	}
}

// clampPage 订单集或过滤结果缩小后把页码收回范围内
func (m *Model) clampPage() {
	page := View(m.state.Orders, m.view)
	m.view.ClampPage(page.TotalPages)
}

// nextSideFilter 方向过滤循环：all → BUY → SELL → all
func nextSideFilter(cur string) string {
	switch cur {
	case FilterAll:
		return string(domain.SideBuy)
	case string(domain.SideBuy):
		return string(domain.SideSell)
	default:
		return FilterAll
	}
}

// nextStatusFilter 状态过滤循环
func nextStatusFilter(cur string) string {
	switch cur {
	case FilterAll:
		return domain.OrderStateNew
	case domain.OrderStateNew:
		return domain.OrderStatePartiallyFilled
	case domain.OrderStatePartiallyFilled:
		return domain.OrderStateFilled
	case domain.OrderStateFilled:
		return domain.OrderStateCanceled
	default:
		return FilterAll
	}
}

// Commands

// statusTickCmd 状态轮询的下一个固定节拍
func (m Model) statusTickCmd() tea.Cmd {
	return tea.Tick(m.pollInterval, func(t time.Time) tea.Msg {
		return statusTickMsg(t)
	})
}

// pricesTickCmd 价格轮询的下一个固定节拍
func (m Model) pricesTickCmd() tea.Cmd {
	return tea.Tick(m.pollInterval, func(t time.Time) tea.Msg {
		return pricesTickMsg(t)
	})
}

// fetchStatusCmd 异步抓取网格状态
func (m Model) fetchStatusCmd() tea.Cmd {
	gen, client := m.gen, m.client
	return func() tea.Msg {
		resp, err := client.GetStatus(context.Background())
		return statusResultMsg{gen: gen, resp: resp, err: err}
	}
}

// fetchPricesCmd 异步抓取交易所价格
func (m Model) fetchPricesCmd() tea.Cmd {
	gen, client := m.gen, m.client
	return func() tea.Msg {
		prices, err := client.GetPrices(context.Background())
		return pricesResultMsg{gen: gen, prices: prices, err: err}
	}
}

// createCmd 异步发送 create 命令
func (m Model) createCmd(params domain.GridParams) tea.Cmd {
	gen, client := m.gen, m.client
	return func() tea.Msg {
		resp, err := client.CreateGrid(context.Background(), params)
		return createResultMsg{gen: gen, resp: resp, err: err}
	}
}

// stopCmd 异步发送 stop 命令
func (m Model) stopCmd() tea.Cmd {
	gen, client := m.gen, m.client
	return func() tea.Msg {
		err := client.StopGrid(context.Background())
		return stopResultMsg{gen: gen, err: err}
	}
}
