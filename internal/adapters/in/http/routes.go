package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface lists the operations of the OpenAPI document.
type ServerInterface interface {
	// (GET /orders)
	ListOrders(ctx echo.Context) error
	// (POST /orders)
	CreateOrder(ctx echo.Context) error
	// (GET /orders/{id})
	GetOrder(ctx echo.Context, id string) error
	// (DELETE /orders/{id})
	DeleteOrder(ctx echo.Context, id string) error
	// (POST /orders/{id}/kot)
	AddKot(ctx echo.Context, id string) error
	// (POST /orders/{id}/finalize)
	FinalizeOrder(ctx echo.Context, id string) error
	// (PATCH /orders/{id}/status)
	UpdateOrderStatus(ctx echo.Context, id string) error
	// (GET /orders/{id}/bill)
	GetBill(ctx echo.Context, id string) error
	// (GET /events)
	ListEvents(ctx echo.Context, params ListEventsParams) error
}

// ServerInterfaceWrapper converts echo contexts to typed parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	return w.Handler.ListOrders(ctx)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, id)
}

func (w *ServerInterfaceWrapper) DeleteOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.DeleteOrder(ctx, id)
}

func (w *ServerInterfaceWrapper) AddKot(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.AddKot(ctx, id)
}

func (w *ServerInterfaceWrapper) FinalizeOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.FinalizeOrder(ctx, id)
}

func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrderStatus(ctx, id)
}

func (w *ServerInterfaceWrapper) GetBill(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetBill(ctx, id)
}

func (w *ServerInterfaceWrapper) ListEvents(ctx echo.Context) error {
	var params ListEventsParams

	if err := runtime.BindQueryParameter("form", true, false, "after", ctx.QueryParams(), &params.After); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter after: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.Handler.ListEvents(ctx, params)
}

func bindOrderID(ctx echo.Context) (string, error) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds every documented route to router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET("/orders", wrapper.ListOrders)
	router.POST("/orders", wrapper.CreateOrder)
	router.GET("/orders/:id", wrapper.GetOrder)
	router.DELETE("/orders/:id", wrapper.DeleteOrder)
	router.POST("/orders/:id/kot", wrapper.AddKot)
	router.POST("/orders/:id/finalize", wrapper.FinalizeOrder)
	router.PATCH("/orders/:id/status", wrapper.UpdateOrderStatus)
	router.GET("/orders/:id/bill", wrapper.GetBill)
	router.GET("/events", wrapper.ListEvents)
}
