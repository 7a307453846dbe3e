package response

import "pos-checkout/internal/usecase/queries"

type OrderItemResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal int64  `json:"line_total"`
}

type OrderResponse struct {
	ID         int64               `json:"id"`
	CreatedAt  int64               `json:"created_at"`
	Total      int64               `json:"total"`
	BuyerLabel *string             `json:"buyer_label,omitempty"`
	Items      []OrderItemResponse `json:"items"`
}

func FromOrderView(v *queries.OrderView) (*OrderResponse, error) {
	res, err := copyInto[OrderResponse](v)
	if err != nil {
		return nil, err
	}
	if res.Items == nil {
		res.Items = []OrderItemResponse{}
	}
	return res, nil
}

type OrderListItemResponse struct {
	ID         int64   `json:"id"`
	CreatedAt  int64   `json:"created_at"`
	Total      int64   `json:"total"`
	BuyerLabel *string `json:"buyer_label,omitempty"`
	ItemCount  int     `json:"item_count"`
}

type OrderListResponse struct {
	Orders     []OrderListItemResponse `json:"orders"`
	NextCursor string                  `json:"next_cursor,omitempty"`
}

func FromOrderPage(p *queries.OrderPage) (*OrderListResponse, error) {
	items, err := copyInto[[]OrderListItemResponse](p.Orders)
	if err != nil {
		return nil, err
	}
	res := &OrderListResponse{Orders: *items}
	if res.Orders == nil {
		res.Orders = []OrderListItemResponse{}
	}
	if p.Next != nil {
		res.NextCursor = p.Next.Before
	}
	return res, nil
}

type CartLineResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

type CartSnapshotResponse struct {
	SourceOrderID int64              `json:"source_order_id"`
	Lines         []CartLineResponse `json:"lines"`
	Total         int64              `json:"total"`
}

func FromCartSnapshot(v *queries.CartSnapshotView) (*CartSnapshotResponse, error) {
	return copyInto[CartSnapshotResponse](v)
}
