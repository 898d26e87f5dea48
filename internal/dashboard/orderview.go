package dashboard

import (
	"sort"
	"strings"

	"github.com/gridbot/griddash/internal/domain"
)

// PageSize 订单表每页行数
const PageSize = 5

// FilterAll 方向/状态过滤的通配值
const FilterAll = "all"

// SortKey 订单表排序列
type SortKey string

const (
	SortBySide        SortKey = "side"
	SortByPrice       SortKey = "price"
	SortByOrigQty     SortKey = "origQty"
	SortByExecutedQty SortKey = "executedQty"
	SortByState       SortKey = "state"
)

// numericKey 按十进制数值比较的列（其余列按字节序比较字符串）
func (k SortKey) numericKey() bool {
	return k == SortByPrice || k == SortByOrigQty || k == SortByExecutedQty
}

// ViewState 订单表的视图配置（派生、临时状态）
type ViewState struct {
	SortKey      SortKey
	SortAsc      bool
	FilterSide   string
	FilterStatus string
	Page         int
}

// NewViewState 默认视图：按价格升序，无过滤，第一页
func NewViewState() ViewState {
	return ViewState{
		SortKey:      SortByPrice,
		SortAsc:      true,
		FilterSide:   FilterAll,
		FilterStatus: FilterAll,
		Page:         1,
	}
}

// SortBy 交互式切换排序列
//
// 点同一列翻转方向，点不同列换列并重置为升序。
func (v *ViewState) SortBy(key SortKey) {
	if v.SortKey == key {
		v.SortAsc = !v.SortAsc
		return
	}
	v.SortKey = key
	v.SortAsc = true
}

// SetFilterSide 设置方向过滤，变化时回到第一页
//
// 不变式：过滤变化后页码绝不指向过滤结果的末尾之外。
func (v *ViewState) SetFilterSide(side string) {
	if v.FilterSide == side {
		return
	}
	v.FilterSide = side
	v.Page = 1
}

// SetFilterStatus 设置状态过滤，变化时回到第一页
func (v *ViewState) SetFilterStatus(status string) {
	if v.FilterStatus == status {
		return
	}
	v.FilterStatus = status
	v.Page = 1
}

// ClampPage 把页码收拢到 [1, totalPages]（空结果按 1 处理）
func (v *ViewState) ClampPage(totalPages int) {
	if totalPages < 1 {
		totalPages = 1
	}
	if v.Page > totalPages {
		v.Page = totalPages
	}
	if v.Page < 1 {
		v.Page = 1
	}
}

// OrderPage 渲染用的一页订单
type OrderPage struct {
	Orders     []domain.Order
	Page       int
	TotalPages int
	Filtered   int
}

// View 纯变换：原始订单列表 + 视图配置 → 要渲染的那一页
//
// 过滤 → 稳定排序 → 分页。绝不修改输入列表：过滤结果是新切片，
// 排序只作用在它上面。
func View(orders []domain.Order, vs ViewState) OrderPage {
	filtered := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if vs.FilterSide != FilterAll && string(o.Side) != vs.FilterSide {
			continue
		}
		if vs.FilterStatus != FilterAll && o.State != vs.FilterStatus {
			continue
		}
		filtered = append(filtered, o)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		c := compareOrders(filtered[i], filtered[j], vs.SortKey)
		if !vs.SortAsc {
			c = -c
		}
		return c < 0
	})

	totalPages := (len(filtered) + PageSize - 1) / PageSize
	page := vs.Page
	if maxPage := totalPages; maxPage >= 1 && page > maxPage {
		page = maxPage
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return OrderPage{
		Orders:     filtered[start:end],
		Page:       page,
		TotalPages: totalPages,
		Filtered:   len(filtered),
	}
}

// compareOrders 单比较器按列类型分派：数值字符串走 decimal，其余走字节序
func compareOrders(a, b domain.Order, key SortKey) int {
	if key.numericKey() {
		var x, y = a.PriceDecimal(), b.PriceDecimal()
		switch key {
		case SortByOrigQty:
			x, y = a.OrigQtyDecimal(), b.OrigQtyDecimal()
		case SortByExecutedQty:
			x, y = a.ExecutedQtyDecimal(), b.ExecutedQtyDecimal()
		}
		return x.Cmp(y)
	}
	if key == SortBySide {
		return strings.Compare(string(a.Side), string(b.Side))
	}
	return strings.Compare(a.State, b.State)
}
