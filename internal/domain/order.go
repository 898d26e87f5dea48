package domain

import (
	"github.com/shopspring/decimal"
)

// Side 订单方向
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// 订单状态（交易所定义的字符串，XT 现货口径）
const (
	OrderStateNew             = "NEW"
	OrderStatePartiallyFilled = "PARTIALLY_FILLED"
	OrderStateFilled          = "FILLED"
	OrderStateCanceled        = "CANCELED"
	OrderStateRejected        = "REJECTED"
	OrderStateExpired         = "EXPIRED"
)

// Order 交易所订单（服务端返回的不可变值，客户端不做修改）
//
// 价格和数量字段保持字符串形式：这些是货币字段，只用于排序和展示，
// 不参与运算，解析成 float64 会丢精度。
type Order struct {
	Symbol      string `json:"symbol"`
	OrderID     string `json:"orderId"`
	Side        Side   `json:"side"`
	Price       string `json:"price"`
	OrigQty     string `json:"origQty"`
	ExecutedQty string `json:"executedQty"`
	Type        string `json:"type"`
	State       string `json:"state"`
}

// PriceDecimal 订单价格的 decimal 值（解析失败返回 0）
func (o Order) PriceDecimal() decimal.Decimal {
	return DecimalOrZero(o.Price)
}

// OrigQtyDecimal 原始数量的 decimal 值（解析失败返回 0）
func (o Order) OrigQtyDecimal() decimal.Decimal {
	return DecimalOrZero(o.OrigQty)
}

// ExecutedQtyDecimal 已成交数量的 decimal 值（解析失败返回 0）
func (o Order) ExecutedQtyDecimal() decimal.Decimal {
	return DecimalOrZero(o.ExecutedQty)
}

// DecimalOrZero 解析十进制字符串，非法输入返回 0
//
// 排序比较器依赖这个兜底：比较必须对任何输入都是全序的，
// 非法字段按 0 处理，稳定排序会保持它们原有的相对顺序。
func DecimalOrZero(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
