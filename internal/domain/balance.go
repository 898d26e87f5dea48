package domain

import "github.com/shopspring/decimal"

// Balance 账户余额（XT 现货口径）
//
// 三个金额字段保持服务端原样的十进制字符串，展示时才格式化。
type Balance struct {
	Currency  string `json:"currency"`
	Available string `json:"availableAmount"`
	Frozen    string `json:"frozenAmount"`
	Total     string `json:"totalAmount"`
}

// AvailableDecimal 可用余额的 decimal 值（解析失败返回 0）
func (b Balance) AvailableDecimal() decimal.Decimal {
	return DecimalOrZero(b.Available)
}

// TotalDecimal 总余额的 decimal 值（解析失败返回 0）
func (b Balance) TotalDecimal() decimal.Decimal {
	return DecimalOrZero(b.Total)
}
