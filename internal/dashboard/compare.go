package dashboard

import "github.com/gridbot/griddash/internal/domain"

// PrimaryExchange 价差的基准交易所（机器人挂单所在的交易所）
const PrimaryExchange = "xt"

// Spread 某个从属交易所相对基准交易所的瞬时价差
//
// Percent 为正表示从属交易所升水（比基准贵）。
type Spread struct {
	Exchange string
	Price    float64
	Percent  float64
}

// Spreads 纯变换：价格快照 → 各从属交易所的价差百分比
//
// 任何一侧缺价（nil）就略过该交易所，不做平滑、不剔除离群值。
func Spreads(p *domain.ExchangePrices) []Spread {
	if p == nil || p.XT == nil || *p.XT == 0 {
		return nil
	}
	primary := *p.XT

	var out []Spread
	add := func(name string, price *float64) {
		if price == nil {
			return
		}
		out = append(out, Spread{
			Exchange: name,
			Price:    *price,
			Percent:  (*price - primary) / primary * 100,
		})
	}
	add("xeggex", p.Xeggex)
	add("coinex", p.Coinex)
	return out
}
