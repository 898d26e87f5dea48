package domain

// ExchangePrices 各交易所最新成交价快照
//
// 每个价格字段都可空：nil 表示"还没观测到"，不是 0。
// xeggex 额外带一组买一/卖一。
type ExchangePrices struct {
	XT        *float64 `json:"xt"`
	Xeggex    *float64 `json:"xeggex"`
	Coinex    *float64 `json:"coinex"`
	XeggexBid *float64 `json:"xeggex_bid,omitempty"`
	XeggexAsk *float64 `json:"xeggex_ask,omitempty"`
	Timestamp string   `json:"timestamp"`
}
