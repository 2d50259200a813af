package controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"restaurante/internal/commons"
	"restaurante/internal/domain"
	"restaurante/internal/dto"
	apperrors "restaurante/internal/errors"
)

type Ledger interface {
	PlaceOrder(ctx context.Context, customerID int64, dishName string, notes *string) (int64, error)
	ListOrders(ctx context.Context, customerID int64) ([]domain.Order, error)
	History(ctx context.Context, orderID int64) ([]domain.StatusLog, error)
}

type StatusAdvancer interface {
	Advance(ctx context.Context, orderID int64) (domain.OrderStatus, error)
}

type OrderController struct {
	ledger    Ledger
	advancer  StatusAdvancer
	validator *commons.Validator
	logger    *zap.Logger
}

func NewOrderController(ledger Ledger, advancer StatusAdvancer, validator *commons.Validator, logger *zap.Logger) *OrderController {
	return &OrderController{
		ledger:    ledger,
		advancer:  advancer,
		validator: validator,
		logger:    logger,
	}
}

func (c *OrderController) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	if err := c.validator.Validate(req); err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	orderID, err := c.ledger.PlaceOrder(r.Context(), req.CustomerID.Int64(), req.DishName, req.Notes)
	if err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, dto.CreateOrderResponse{
		Message: "order created successfully",
		OrderID: orderID,
	}, c.logger)
}

func (c *OrderController) HandleList(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "customerId")
	if err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	orders, err := c.ledger.ListOrders(r.Context(), customerID)
	if err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	response := make([]dto.OrderResponse, len(orders))
	for i, o := range orders {
		response[i] = dto.OrderResponse{
			ID:         o.ID,
			CustomerID: o.CustomerID,
			DishName:   o.DishName,
			Notes:      o.Notes,
			Status:     o.Status.String(),
			CreatedAt:  o.CreatedAt,
		}
	}

	commons.WriteJSON(w, http.StatusOK, response, c.logger)
}

func (c *OrderController) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	next, err := c.advancer.Advance(r.Context(), orderID)
	if err != nil {
		if ite, ok := apperrors.IsInvalidTransitionError(err); ok {
			c.logger.Info("order transition rejected",
				zap.String("traceId", commons.TraceID(r.Context())),
				zap.Int64("orderId", orderID),
				zap.String("from", ite.From),
				zap.String("reason", ite.Message),
			)
		}
		commons.WriteError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.AdvanceStatusResponse{
		Message:   "status updated to: " + next.String(),
		NewStatus: next.String(),
	}, c.logger)
}

func (c *OrderController) HandleHistory(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	entries, err := c.ledger.History(r.Context(), orderID)
	if err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	response := make([]dto.StatusLogResponse, len(entries))
	for i, e := range entries {
		response[i] = dto.StatusLogResponse{
			FromStatus: e.FromStatus.String(),
			ToStatus:   e.ToStatus.String(),
			ChangedAt:  e.ChangedAt,
		}
	}

	commons.WriteJSON(w, http.StatusOK, response, c.logger)
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name, apperrors.ValidationDetail{
			Field:   name,
			Message: name + " must be a positive integer",
		})
	}
	return id, nil
}
