package http

import (
	"errors"
	"log/slog"
	"net/http"

	"cafe/internal/core/application/usecases/commands"
	"cafe/internal/core/application/usecases/queries"
	"cafe/internal/core/application/views"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/services"
	"cafe/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var _ ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler  commands.CreateOrderCommandHandler
	addKotHandler       commands.AddKotCommandHandler
	finalizeHandler     commands.FinalizeOrderCommandHandler
	updateStatusHandler commands.UpdateOrderStatusCommandHandler
	deleteOrderHandler  commands.DeleteOrderCommandHandler

	// Query handlers
	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler
	getBillHandler    queries.GetBillQueryHandler
	listEventsHandler queries.ListEventsQueryHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	addKotHandler commands.AddKotCommandHandler,
	finalizeHandler commands.FinalizeOrderCommandHandler,
	updateStatusHandler commands.UpdateOrderStatusCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getBillHandler queries.GetBillQueryHandler,
	listEventsHandler queries.ListEventsQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:  createOrderHandler,
		addKotHandler:       addKotHandler,
		finalizeHandler:     finalizeHandler,
		updateStatusHandler: updateStatusHandler,
		deleteOrderHandler:  deleteOrderHandler,
		getOrderHandler:     getOrderHandler,
		listOrdersHandler:   listOrdersHandler,
		getBillHandler:      getBillHandler,
		listEventsHandler:   listEventsHandler,
		logger:              logger.With("component", "http_server"),
	}
}

// CreateOrder handles POST /orders - opens an order with its first KOT.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(string(req.TableNumber), toOrderedItems(req.Items))
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+oneLine(err.Error()))
	}

	o, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if errs.IsValidation(err) {
		return badRequest(ctx, "Invalid order data: "+oneLine(err.Error()))
	}
	if err != nil {
		return s.fail(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, views.NewOrderView(o))
}

// AddKot handles POST /orders/{id}/kot - appends a KOT to a confirmed order.
func (s *Server) AddKot(ctx echo.Context, id string) error {
	orderID, ok := parseOrderID(id)
	if !ok {
		return orderNotFound(ctx)
	}

	var req AddKotRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAddKotCommand(orderID, toOrderedItems(req.Items))
	if err != nil {
		return badRequest(ctx, "Invalid KOT data: "+oneLine(err.Error()))
	}

	o, err := s.addKotHandler.Handle(ctx.Request().Context(), cmd)
	if errs.IsValidation(err) {
		return badRequest(ctx, "Invalid KOT data: "+oneLine(err.Error()))
	}
	if err != nil {
		return s.fail(ctx, err, "Failed to add KOT")
	}

	return ctx.JSON(http.StatusOK, views.NewOrderView(o))
}

// FinalizeOrder handles POST /orders/{id}/finalize.
func (s *Server) FinalizeOrder(ctx echo.Context, id string) error {
	orderID, ok := parseOrderID(id)
	if !ok {
		return orderNotFound(ctx)
	}

	cmd, err := commands.NewFinalizeOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, oneLine(err.Error()))
	}

	o, err := s.finalizeHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to finalize order")
	}

	return ctx.JSON(http.StatusOK, views.NewOrderView(o))
}

// UpdateOrderStatus handles PATCH /orders/{id}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context, id string) error {
	orderID, ok := parseOrderID(id)
	if !ok {
		return orderNotFound(ctx)
	}

	var req UpdateStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+oneLine(err.Error()))
	}

	o, err := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to update order status")
	}

	return ctx.JSON(http.StatusOK, views.NewOrderView(o))
}

// DeleteOrder handles DELETE /orders/{id}.
func (s *Server) DeleteOrder(ctx echo.Context, id string) error {
	orderID, ok := parseOrderID(id)
	if !ok {
		return orderNotFound(ctx)
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, oneLine(err.Error()))
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to delete order")
	}

	return ctx.JSON(http.StatusOK, DeleteAck{Message: "Order deleted", ID: orderID.String()})
}

// GetOrder handles GET /orders/{id}.
func (s *Server) GetOrder(ctx echo.Context, id string) error {
	orderID, ok := parseOrderID(id)
	if !ok {
		return orderNotFound(ctx)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, oneLine(err.Error()))
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, view)
}

// ListOrders handles GET /orders - all orders, newest first.
func (s *Server) ListOrders(ctx echo.Context) error {
	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), queries.NewListOrdersQuery())
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetBill handles GET /orders/{id}/bill.
func (s *Server) GetBill(ctx echo.Context, id string) error {
	orderID, ok := parseOrderID(id)
	if !ok {
		return orderNotFound(ctx)
	}

	query, err := queries.NewGetBillQuery(orderID)
	if err != nil {
		return badRequest(ctx, oneLine(err.Error()))
	}

	bill, err := s.getBillHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to build bill")
	}

	return ctx.JSON(http.StatusOK, bill)
}

// ListEvents handles GET /events - the event log after a sequence number.
func (s *Server) ListEvents(ctx echo.Context, params ListEventsParams) error {
	var (
		after int64
		limit int
	)
	if params.After != nil {
		after = *params.After
	}
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewListEventsQuery(after, limit)
	if err != nil {
		return badRequest(ctx, "Invalid event range: "+oneLine(err.Error()))
	}

	events, err := s.listEventsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve events")
	}

	return ctx.JSON(http.StatusOK, events)
}

// fail maps a use case error to its status code. Anything outside the errs
// taxonomy is a persistence failure and is reported without details.
func (s *Server) fail(ctx echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return orderNotFound(ctx)
	case errors.Is(err, errs.ErrInvalidState), errs.IsValidation(err):
		return badRequest(ctx, oneLine(err.Error()))
	case errors.Is(err, errs.ErrVersionConflict):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Order was modified concurrently, please retry",
		})
	default:
		s.logger.ErrorContext(ctx.Request().Context(), fallback,
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: fallback,
		})
	}
}

func parseOrderID(raw string) (kernel.OrderID, bool) {
	id, err := kernel.ParseOrderID(raw)
	if err != nil {
		return kernel.OrderID{}, false
	}
	return id, true
}

func orderNotFound(ctx echo.Context) error {
	return ctx.JSON(http.StatusNotFound, Error{
		Code:    http.StatusNotFound,
		Message: "Order not found",
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func toOrderedItems(items []OrderedItem) []services.OrderedItem {
	ordered := make([]services.OrderedItem, 0, len(items))
	for _, item := range items {
		ordered = append(ordered, services.OrderedItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price.String(),
		})
	}
	return ordered
}
