package dashboard

import (
	"math"
	"testing"

	"github.com/gridbot/griddash/internal/domain"
)

func f(v float64) *float64 { return &v }

// TestSpreadsPercent 基准 1.00、从属 1.05 应该给出 +5.00%
func TestSpreadsPercent(t *testing.T) {
	p := &domain.ExchangePrices{
		XT:     f(1.00),
		Xeggex: f(1.05),
	}

	spreads := Spreads(p)
	if len(spreads) != 1 {
		t.Fatalf("应该只有 xeggex 一条价差，实际 %d", len(spreads))
	}
	if spreads[0].Exchange != "xeggex" {
		t.Errorf("交易所名应该是 xeggex，实际 %s", spreads[0].Exchange)
	}
	if math.Abs(spreads[0].Percent-5.0) > 1e-9 {
		t.Errorf("价差应该是 5.00%%，实际 %.6f%%", spreads[0].Percent)
	}
}

// TestSpreadsDiscount 从属比基准便宜给出负价差
func TestSpreadsDiscount(t *testing.T) {
	p := &domain.ExchangePrices{
		XT:     f(2.00),
		Coinex: f(1.90),
	}

	spreads := Spreads(p)
	if len(spreads) != 1 {
		t.Fatalf("应该只有 coinex 一条价差，实际 %d", len(spreads))
	}
	if math.Abs(spreads[0].Percent-(-5.0)) > 1e-9 {
		t.Errorf("价差应该是 -5.00%%，实际 %.6f%%", spreads[0].Percent)
	}
}

// TestSpreadsMissingPrimary 基准缺价时不输出任何价差
func TestSpreadsMissingPrimary(t *testing.T) {
	p := &domain.ExchangePrices{
		Xeggex: f(1.05),
		Coinex: f(1.02),
	}
	if got := Spreads(p); got != nil {
		t.Errorf("基准缺价应该返回 nil，实际 %+v", got)
	}

	if got := Spreads(nil); got != nil {
		t.Errorf("nil 快照应该返回 nil，实际 %+v", got)
	}

	// 基准为 0 同样不能算（除零）
	p = &domain.ExchangePrices{XT: f(0), Xeggex: f(1.05)}
	if got := Spreads(p); got != nil {
		t.Errorf("基准为 0 应该返回 nil，实际 %+v", got)
	}
}

// TestSpreadsMissingSecondary 从属缺价只略过该交易所
func TestSpreadsMissingSecondary(t *testing.T) {
	p := &domain.ExchangePrices{
		XT:     f(1.00),
		Coinex: f(1.10),
	}

	spreads := Spreads(p)
	if len(spreads) != 1 || spreads[0].Exchange != "coinex" {
		t.Errorf("xeggex 缺价时应该只有 coinex，实际 %+v", spreads)
	}
}
