package domain

// GridStatus 一个运行中网格实例的快照
//
// 由状态同步器独占持有：每次成功轮询都整体替换，绝不做字段级合并，
// 避免把过期的部分响应混进上一份快照。
type GridStatus struct {
	Symbol       string   `json:"symbol"`
	CurrentPrice float64  `json:"current_price"`
	Positions    int      `json:"positions"`
	TotalAmount  float64  `json:"total_amount"`
	MinDistance  float64  `json:"min_distance"`
	MaxDistance  float64  `json:"max_distance"`
	LowerPrice   float64  `json:"lower_price"`
	UpperPrice   float64  `json:"upper_price"`
	Spread       float64  `json:"spread_percent"`
	TotalTrades  int      `json:"total_trades"`
	TotalVolume  float64  `json:"total_volume"`
	TotalFees    float64  `json:"total_fees"`
	RealizedPnl  float64  `json:"realized_pnl"`
	Balance      *Balance `json:"balance,omitempty"`
	OpenOrders   []Order  `json:"open_orders,omitempty"`
	IsRunning    bool     `json:"is_running"`
	CreatedAt    string   `json:"created_at,omitempty"`
	LastUpdate   string   `json:"last_update,omitempty"`
}

// GridParams 创建网格的参数草稿
//
// 提交 create 之前只存在于客户端，服务端没有对应实体。
// 客户端不校验交易参数本身，只保证类型形状。
type GridParams struct {
	Symbol      string  `json:"symbol"`
	Positions   int     `json:"positions"`
	TotalAmount float64 `json:"total_amount"`
	MinDistance float64 `json:"min_distance"`
	MaxDistance float64 `json:"max_distance"`
}

// DefaultGridParams 后端的默认网格配置
func DefaultGridParams() GridParams {
	return GridParams{
		Symbol:      "aipg_usdt",
		Positions:   20,
		TotalAmount: 200,
		MinDistance: 0.5,
		MaxDistance: 10,
	}
}

// StatusResponse /api/grid/status 与 /api/grid/create 的响应体
//
// is_running=false 或 grid_status 缺失都表示"没有网格在跑"。
type StatusResponse struct {
	IsRunning  bool        `json:"is_running"`
	GridStatus *GridStatus `json:"grid_status,omitempty"`
}
