package domain

import "time"

type Order struct {
	ID         int64
	CustomerID int64
	DishName   string
	Notes      *string
	Status     OrderStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StatusLog records one committed transition of an order.
type StatusLog struct {
	ID         int64
	OrderID    int64
	FromStatus OrderStatus
	ToStatus   OrderStatus
	ChangedAt  time.Time
}
