package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOrderUnmarshal 订单按后端字段名解析，金额保持字符串
func TestOrderUnmarshal(t *testing.T) {
	data := `{
		"symbol": "aipg_usdt",
		"orderId": "123456",
		"side": "BUY",
		"price": "0.00095",
		"origQty": "1000",
		"executedQty": "250",
		"type": "LIMIT",
		"state": "PARTIALLY_FILLED"
	}`

	var o Order
	require.NoError(t, json.Unmarshal([]byte(data), &o))

	assert.Equal(t, "123456", o.OrderID)
	assert.Equal(t, SideBuy, o.Side)
	assert.Equal(t, "0.00095", o.Price)
	assert.Equal(t, OrderStatePartiallyFilled, o.State)

	assert.True(t, o.PriceDecimal().Equal(decimal.RequireFromString("0.00095")))
	assert.True(t, o.ExecutedQtyDecimal().Equal(decimal.NewFromInt(250)))
}

// TestDecimalOrZero 解析不了的数值字符串按 0 处理
func TestDecimalOrZero(t *testing.T) {
	assert.True(t, DecimalOrZero("1.5").Equal(decimal.RequireFromString("1.5")))
	assert.True(t, DecimalOrZero("").IsZero())
	assert.True(t, DecimalOrZero("abc").IsZero())
}

// TestStatusResponseMissingGridStatus grid_status 缺失解析为 nil
func TestStatusResponseMissingGridStatus(t *testing.T) {
	var resp StatusResponse
	require.NoError(t, json.Unmarshal([]byte(`{"is_running": false}`), &resp))
	assert.False(t, resp.IsRunning)
	assert.Nil(t, resp.GridStatus)
}
