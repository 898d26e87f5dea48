package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/gridbot/griddash/internal/domain"
)

// 样式定义
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	buyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	sellStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	activeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
)

// View 渲染整个面板
func (m Model) View() string {
	if m.width == 0 {
		return "正在初始化..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())

	if m.state.LastError != "" {
		sections = append(sections, errorStyle.Render("⚠ "+m.state.LastError))
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderStatus(), " ", m.renderPrices())
	sections = append(sections, top)

	sections = append(sections, m.renderOrders())

	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderParams(), " ", m.renderBalance())
	sections = append(sections, bottom)

	sections = append(sections, m.renderHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader 头部：运行标记、后端地址、命令在途标记、数据新鲜度
func (m Model) renderHeader() string {
	running := errorStyle.Render("● 已停止")
	if m.state.IsRunning {
		running = successStyle.Render("● 运行中")
	}

	age := "等待数据..."
	if !m.lastStatusAt.IsZero() {
		age = fmt.Sprintf("更新于 %v 前", time.Since(m.lastStatusAt).Round(time.Second))
	}

	op := ""
	if m.state.Op != OpNone {
		op = " | " + warningStyle.Render(fmt.Sprintf("命令进行中: %s", m.state.Op))
	}

	return headerStyle.Render(fmt.Sprintf("网格交易面板 | %s | %s | %s%s",
		m.baseURL, running, age, op))
}

// renderStatus 网格状态面板
func (m Model) renderStatus() string {
	title := titleStyle.Render("网格状态")
	var content strings.Builder

	st := m.state.Status
	if st == nil {
		content.WriteString("当前没有网格在运行\n")
		content.WriteString(dimStyle.Render("按 s 用下方参数创建"))
		return borderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content.String()))
	}

	content.WriteString(fmt.Sprintf("交易对:   %s\n", st.Symbol))
	content.WriteString(fmt.Sprintf("当前价格: %.6f\n", st.CurrentPrice))
	content.WriteString(fmt.Sprintf("网格区间: %.6f ~ %.6f (价差 %.2f%%)\n",
		st.LowerPrice, st.UpperPrice, st.Spread))
	content.WriteString(fmt.Sprintf("档位数:   %d | 总投入: %.2f\n", st.Positions, st.TotalAmount))
	content.WriteString(fmt.Sprintf("距离:     %.2f%% ~ %.2f%%\n", st.MinDistance, st.MaxDistance))
	content.WriteString(fmt.Sprintf("累计:     成交 %d 笔 | 量 %.2f | 手续费 %.4f\n",
		st.TotalTrades, st.TotalVolume, st.TotalFees))

	pnlStyle := successStyle
	if st.RealizedPnl < 0 {
		pnlStyle = errorStyle
	}
	content.WriteString(fmt.Sprintf("已实现盈亏: %s\n", pnlStyle.Render(fmt.Sprintf("%.4f", st.RealizedPnl))))

	if st.CreatedAt != "" {
		content.WriteString(dimStyle.Render(fmt.Sprintf("创建: %s", st.CreatedAt)))
	}

	return borderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content.String()))
}

// renderPrices 各交易所价格与价差面板
func (m Model) renderPrices() string {
	title := titleStyle.Render("交易所价格")
	var content strings.Builder

	p := m.state.Prices
	if p == nil {
		content.WriteString("暂无价格数据")
		return borderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content.String()))
	}

	if p.XT != nil {
		content.WriteString(fmt.Sprintf("%-8s %.8f  %s\n", PrimaryExchange, *p.XT, dimStyle.Render("(基准)")))
	} else {
		content.WriteString(fmt.Sprintf("%-8s --\n", PrimaryExchange))
	}

	for _, s := range Spreads(p) {
		// 升水绿色、贴水红色
		spreadStyle := successStyle
		if s.Percent < 0 {
			spreadStyle = errorStyle
		}
		content.WriteString(fmt.Sprintf("%-8s %.8f  %s\n",
			s.Exchange, s.Price, spreadStyle.Render(fmt.Sprintf("%+.2f%%", s.Percent))))
	}

	if p.XeggexBid != nil && p.XeggexAsk != nil {
		content.WriteString(dimStyle.Render(
			fmt.Sprintf("xeggex 买一/卖一: %.8f / %.8f\n", *p.XeggexBid, *p.XeggexAsk)))
	}
	if p.Timestamp != "" {
		content.WriteString(dimStyle.Render("观测时间: " + p.Timestamp))
	}

	return borderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content.String()))
}

// 订单表列标题（和排序键 1~5 对应）
var orderColumns = []struct {
	key   SortKey
	label string
}{
	{SortBySide, "方向"},
	{SortByPrice, "价格"},
	{SortByOrigQty, "数量"},
	{SortByExecutedQty, "已成交"},
	{SortByState, "状态"},
}

// renderOrders 挂单表：过滤 + 排序 + 分页之后的那一页
func (m Model) renderOrders() string {
	title := titleStyle.Render("当前挂单")
	var content strings.Builder

	filters := fmt.Sprintf("方向:%s 状态:%s", m.view.FilterSide, m.view.FilterStatus)
	content.WriteString(dimStyle.Render(filters) + "\n")

	content.WriteString(dimStyle.Render("订单ID        ") + " │ ")
	for i, col := range orderColumns {
		label := col.label
		if m.view.SortKey == col.key {
			if m.view.SortAsc {
				label += "▲"
			} else {
				label += "▼"
			}
			label = activeStyle.Render(label)
		} else {
			label = dimStyle.Render(label)
		}
		content.WriteString(fmt.Sprintf("%-10s", label))
		if i < len(orderColumns)-1 {
			content.WriteString(" │ ")
		}
	}
	content.WriteString("\n")
	content.WriteString(strings.Repeat("─", 78) + "\n")

	page := View(m.state.Orders, m.view)
	if len(page.Orders) == 0 {
		content.WriteString("暂无符合条件的挂单\n")
	}
	for _, o := range page.Orders {
		id := o.OrderID
		if len(id) > 14 {
			id = id[:11] + "..."
		}
		side := buyStyle.Render(string(o.Side))
		if o.Side == domain.SideSell {
			side = sellStyle.Render(string(o.Side))
		}
		content.WriteString(fmt.Sprintf("%-14s │ %-10s │ %-10s │ %-10s │ %-10s │ %s\n",
			id, side, o.Price, o.OrigQty, o.ExecutedQty, o.State))
	}

	totalPages := page.TotalPages
	if totalPages < 1 {
		totalPages = 1
	}
	content.WriteString(dimStyle.Render(
		fmt.Sprintf("第 %d/%d 页 (共 %d 条)", page.Page, totalPages, page.Filtered)))

	return borderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content.String()))
}

// renderParams 创建参数草稿面板
func (m Model) renderParams() string {
	title := titleStyle.Render("创建参数")
	var content strings.Builder

	content.WriteString(fmt.Sprintf("交易对:   %s\n", m.params.Symbol))

	rows := []struct {
		field string
		text  string
	}{
		{"positions", fmt.Sprintf("档位数:   %d", m.params.Positions)},
		{"total_amount", fmt.Sprintf("总投入:   %.2f", m.params.TotalAmount)},
		{"min_distance", fmt.Sprintf("最小距离: %.2f%%", m.params.MinDistance)},
		{"max_distance", fmt.Sprintf("最大距离: %.2f%%", m.params.MaxDistance)},
	}
	for _, row := range rows {
		marker := "  "
		text := row.text
		if paramFields[m.paramField] == row.field {
			marker = activeStyle.Render("> ")
			text = activeStyle.Render(text)
		}
		content.WriteString(marker + text + "\n")
	}
	content.WriteString(dimStyle.Render("tab 选择字段, +/- 调整"))

	return borderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content.String()))
}

// renderBalance 余额面板
func (m Model) renderBalance() string {
	title := titleStyle.Render("余额")
	var content strings.Builder

	b := m.state.Balance
	if b == nil {
		content.WriteString("暂无余额数据")
		return borderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content.String()))
	}

	content.WriteString(fmt.Sprintf("币种: %s\n", strings.ToUpper(b.Currency)))
	content.WriteString(fmt.Sprintf("可用: %s\n", b.Available))
	content.WriteString(fmt.Sprintf("冻结: %s\n", b.Frozen))
	content.WriteString(fmt.Sprintf("总计: %s", b.Total))

	return borderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content.String()))
}

// renderHelp 底部按键提示
//
// 命令在途时对应触发键置灰，提示槽位被占用。
func (m Model) renderHelp() string {
	start := "s 创建"
	stop := "x 停止"
	if m.state.Op != OpNone {
		start = dimStyle.Render(start)
		stop = dimStyle.Render(stop)
	}
	return dimStyle.Render("q 退出 | r 刷新 | ") + start + dimStyle.Render(" | ") + stop +
		dimStyle.Render(" | f 方向过滤 | t 状态过滤 | 1~5 排序 | [ ] 翻页")
}
