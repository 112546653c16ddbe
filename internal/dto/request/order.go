package request

type OrderItemRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Size     string `json:"size" validate:"required,oneof=10ml 30ml 60ml"`
	Quantity int    `json:"quantity" validate:"required,min=1,max=99"`
	Price    int64  `json:"price" validate:"required,gt=0,max=1000000"`
}

// CreateOrderRequest is the browser cart at checkout. Total is re-checked server side.
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,max=50,dive"`
	Total int64              `json:"total" validate:"required,gt=0"`
}
