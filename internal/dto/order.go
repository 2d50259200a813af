package dto

import "time"

type CreateOrderRequest struct {
	CustomerID FlexibleID `json:"customerId" validate:"required,gt=0"`
	DishName   string     `json:"dishName" validate:"required,max=255"`
	Notes      *string    `json:"notes" validate:"omitempty,max=1000"`
}

type CreateOrderResponse struct {
	Message string `json:"message"`
	OrderID int64  `json:"orderId"`
}

type OrderResponse struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customerId"`
	DishName   string    `json:"dishName"`
	Notes      *string   `json:"notes"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

type AdvanceStatusResponse struct {
	Message   string `json:"message"`
	NewStatus string `json:"newStatus"`
}

type StatusLogResponse struct {
	FromStatus string    `json:"fromStatus"`
	ToStatus   string    `json:"toStatus"`
	ChangedAt  time.Time `json:"changedAt"`
}
