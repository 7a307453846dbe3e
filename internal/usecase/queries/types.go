package queries

import "time"

// ProductView represents one catalog row as the storefront sees it
type ProductView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Size      string    `json:"size"`
	Price     int64     `json:"price"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderView represents a committed order with its line items
type OrderView struct {
	ID         int64           `json:"id"`
	CreatedAt  time.Time       `json:"created_at"`
	Total      int64           `json:"total"`
	BuyerLabel *string         `json:"buyer_label,omitempty"`
	Items      []OrderItemView `json:"items"`
}

type OrderItemView struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal int64  `json:"line_total"`
}

// OrderListItem is the history row; items are fetched per order
type OrderListItem struct {
	ID         int64     `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Total      int64     `json:"total"`
	BuyerLabel *string   `json:"buyer_label,omitempty"`
	ItemCount  int       `json:"item_count"`
}

type OrderPage struct {
	Orders []OrderListItem
	Next   *Cursor
}

// CartSnapshotView is a historical order turned back into cart lines
type CartSnapshotView struct {
	SourceOrderID int64          `json:"source_order_id"`
	Lines         []CartLineView `json:"lines"`
	Total         int64          `json:"total"`
}

type CartLineView struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}
