package response

import (
	"time"

	"storefront/internal/data/entity"
)

type OrderItemResponse struct {
	Name      string `json:"name"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
	LineTotal int64  `json:"line_total"`
}

type OrderResponse struct {
	OrderNumber string              `json:"order_number"`
	Items       []OrderItemResponse `json:"items"`
	ItemCount   int                 `json:"item_count"`
	Total       int64               `json:"total"`
	PlacedAt    time.Time           `json:"placed_at"`
}

func OrderToResponse(order *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			Name:      item.Name,
			Size:      item.Size,
			Quantity:  item.Quantity,
			Price:     item.Price,
			LineTotal: item.LineTotal(),
		})
	}

	return OrderResponse{
		OrderNumber: order.Number,
		Items:       items,
		ItemCount:   order.ItemCount(),
		Total:       order.Total,
		PlacedAt:    order.PlacedAt,
	}
}
