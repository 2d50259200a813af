package customer

import (
	"net/http"

	"go.uber.org/zap"

	"restaurante/internal/commons"
)

type Controller struct {
	service   Service
	validator *commons.Validator
	logger    *zap.Logger
}

func NewController(service Service, validator *commons.Validator, logger *zap.Logger) *Controller {
	return &Controller{
		service:   service,
		validator: validator,
		logger:    logger,
	}
}

func (c *Controller) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	if err := c.validator.Validate(req); err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	customer, err := c.service.Register(r.Context(), req.Name, req.Email, req.Phone)
	if err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, CustomerResponse{
		Message:    "customer registered successfully",
		CustomerID: customer.ID,
		Name:       customer.Name,
	}, c.logger)
}

func (c *Controller) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	if err := c.validator.Validate(req); err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	customer, err := c.service.Authenticate(r.Context(), req.Email, req.Phone)
	if err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, CustomerResponse{
		Message:    "login successful",
		CustomerID: customer.ID,
		Name:       customer.Name,
	}, c.logger)
}
