package customer

type RegisterRequest struct {
	Name  string `json:"name" validate:"required,max=150"`
	Email string `json:"email" validate:"required,max=255"`
	Phone string `json:"phone" validate:"required,max=30"`
}

type LoginRequest struct {
	Email string `json:"email" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

type CustomerResponse struct {
	Message    string `json:"message"`
	CustomerID int64  `json:"customerId"`
	Name       string `json:"name"`
}
