package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"eats/internal/core/application/usecases/commands"
	"eats/internal/core/application/usecases/queries"
	"eats/internal/core/domain/model/kernel"
	"eats/internal/core/domain/model/order"
	"eats/internal/core/domain/services"
	"eats/internal/notifications"
	"eats/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP API for order placement, lifecycle transitions
// and live event streams. It coordinates between HTTP handlers and
// application use cases.
//
// The caller identity comes from the X-Actor-Id and X-Actor-Role headers;
// authenticating those headers is the job of an upstream gateway.
type Server struct {
	// Command handlers
	createOrderHandler  commands.CreateOrderCommandHandler
	updateStatusHandler commands.UpdateOrderStatusCommandHandler
	takeOrderHandler    commands.TakeOrderCommandHandler

	// Query handlers
	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler

	// Event broker for the SSE streams
	broker notifications.Broker
}

// NewServer creates a new HTTP server with the required command and query
// handlers and the notification broker backing the event streams.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateStatusHandler commands.UpdateOrderStatusCommandHandler,
	takeOrderHandler commands.TakeOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	broker notifications.Broker,
) *Server {
	return &Server{
		createOrderHandler:  createOrderHandler,
		updateStatusHandler: updateStatusHandler,
		takeOrderHandler:    takeOrderHandler,
		getOrderHandler:     getOrderHandler,
		listOrdersHandler:   listOrdersHandler,
		broker:              broker,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:orderID", s.GetOrder)
	api.PATCH("/orders/:orderID/status", s.UpdateOrderStatus)
	api.POST("/orders/:orderID/take", s.TakeOrder)

	api.GET("/events/orders/created", s.StreamCreatedOrders)
	api.GET("/events/orders/cooked", s.StreamCookedOrders)
	api.GET("/events/orders/:orderID", s.StreamOrderChanges)
}

// Error is the JSON body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderRequest is the body of POST /api/v1/orders.
type NewOrderRequest struct {
	RestaurantID string         `json:"restaurantId"`
	Items        []NewOrderItem `json:"items"`
}

// NewOrderItem selects a dish and the option choices for it.
type NewOrderItem struct {
	DishID string         `json:"dishId"`
	Picks  []NewOrderPick `json:"picks,omitempty"`
}

// NewOrderPick names one option and, for options with choices, the choice.
type NewOrderPick struct {
	Option string `json:"option"`
	Choice string `json:"choice,omitempty"`
}

// UpdateStatusRequest is the body of PATCH /api/v1/orders/:orderID/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// OrderCreatedResponse is returned from POST /api/v1/orders.
type OrderCreatedResponse struct {
	ID string `json:"id"`
}

// OrderResponse is the wire shape of an order, shared by the read endpoints
// and the SSE event payloads.
type OrderResponse struct {
	ID                string         `json:"id"`
	CustomerID        *string        `json:"customerId,omitempty"`
	RestaurantID      *string        `json:"restaurantId,omitempty"`
	RestaurantOwnerID *string        `json:"restaurantOwnerId,omitempty"`
	DriverID          *string        `json:"driverId,omitempty"`
	Items             []NewOrderItem `json:"items"`
	Total             int64          `json:"total"`
	Status            string         `json:"status"`
}

// CreateOrder handles POST /api/v1/orders - places a new order for the
// calling customer.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}
	if actor.Role() != kernel.RoleClient {
		return errorResponse(ctx, http.StatusForbidden, "only clients may place orders")
	}

	var request NewOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid request body")
	}

	restaurantID, err := kernel.UUIDFromString(request.RestaurantID)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid restaurant id")
	}

	selections, err := itemSelections(request.Items)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, actor.ID(), restaurantID, selections)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.operationError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, OrderCreatedResponse{ID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:orderID - retrieves one order the
// caller is allowed to see.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(actor, orderID)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.operationError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, queryResponse(resp))
}

// ListOrders handles GET /api/v1/orders - lists the caller's orders, with an
// optional ?status= filter.
func (s *Server) ListOrders(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	var statusFilter *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		status, statusErr := order.StatusFromString(raw)
		if statusErr != nil {
			return errorResponse(ctx, http.StatusBadRequest, "invalid status filter")
		}
		statusFilter = &status
	}

	query, err := queries.NewListOrdersQuery(actor, statusFilter)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.operationError(ctx, err)
	}

	response := make([]OrderResponse, len(orders))
	for i, resp := range orders {
		response[i] = queryResponse(resp)
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:orderID/status - moves an
// order to a new status on behalf of the caller.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid order id")
	}

	var request UpdateStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid request body")
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid status")
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(actor, orderID, target)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	if handleErr := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.operationError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TakeOrder handles POST /api/v1/orders/:orderID/take - assigns the calling
// driver to an order.
func (s *Server) TakeOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid order id")
	}

	cmd, err := commands.NewTakeOrderCommand(actor, orderID)
	if err != nil {
		if errors.Is(err, commands.ErrActorMustBeDriver) {
			return errorResponse(ctx, http.StatusForbidden, err.Error())
		}
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	if handleErr := s.takeOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.operationError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StreamCreatedOrders handles GET /api/v1/events/orders/created - an SSE
// stream of new orders placed at the calling owner's restaurants.
func (s *Server) StreamCreatedOrders(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}
	if actor.Role() != kernel.RoleOwner {
		return errorResponse(ctx, http.StatusForbidden, "only owners may watch incoming orders")
	}

	sub, err := notifications.SubscribeOrderCreated(s.broker, actor.ID())
	if err != nil {
		return errorResponse(ctx, http.StatusServiceUnavailable, "event stream unavailable")
	}

	return s.streamEvents(ctx, sub)
}

// StreamCookedOrders handles GET /api/v1/events/orders/cooked - an SSE stream
// of orders ready for pickup, visible to any driver.
func (s *Server) StreamCookedOrders(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}
	if actor.Role() != kernel.RoleDelivery {
		return errorResponse(ctx, http.StatusForbidden, "only drivers may watch cooked orders")
	}

	sub, err := notifications.SubscribeOrderCooked(s.broker)
	if err != nil {
		return errorResponse(ctx, http.StatusServiceUnavailable, "event stream unavailable")
	}

	return s.streamEvents(ctx, sub)
}

// StreamOrderChanges handles GET /api/v1/events/orders/:orderID - an SSE
// stream of status changes for one order, gated per event by the caller's
// visibility.
func (s *Server) StreamOrderChanges(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid order id")
	}

	sub, err := notifications.SubscribeOrderChanged(s.broker, actor, orderID)
	if err != nil {
		return errorResponse(ctx, http.StatusServiceUnavailable, "event stream unavailable")
	}

	return s.streamEvents(ctx, sub)
}

// streamEvents pumps a subscription to the client as server-sent events until
// the connection closes or the bus shuts down. Unsubscribing on the way out
// keeps the bus registry bounded by live connections.
func (s *Server) streamEvents(ctx echo.Context, sub *notifications.Subscription) error {
	defer s.broker.Unsubscribe(sub)

	response := ctx.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set("Cache-Control", "no-cache")
	response.Header().Set("Connection", "keep-alive")
	response.WriteHeader(http.StatusOK)
	response.Flush()

	done := ctx.Request().Context().Done()
	for {
		select {
		case <-done:
			return nil
		case event, ok := <-sub.Events():
			if !ok {
				return nil
			}
			if err := writeEvent(response, event); err != nil {
				return err
			}
		}
	}
}

func writeEvent(response *echo.Response, event notifications.Event) error {
	payload, err := json.Marshal(eventResponse(event.Order()))
	if err != nil {
		return err
	}

	if _, err = fmt.Fprintf(response, "event: %s\ndata: %s\n\n", event.Kind(), payload); err != nil {
		return err
	}
	response.Flush()
	return nil
}

// actorFromRequest reads the caller identity from the X-Actor-Id and
// X-Actor-Role headers.
func actorFromRequest(ctx echo.Context) (kernel.Actor, error) {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get("X-Actor-Id"))
	if err != nil {
		return kernel.Actor{}, errors.New("invalid or missing X-Actor-Id header")
	}

	role, err := kernel.RoleFromString(ctx.Request().Header.Get("X-Actor-Role"))
	if err != nil {
		return kernel.Actor{}, errors.New("invalid or missing X-Actor-Role header")
	}

	return kernel.NewActor(id, role)
}

func itemSelections(items []NewOrderItem) ([]order.ItemSelection, error) {
	selections := make([]order.ItemSelection, 0, len(items))
	for _, item := range items {
		dishID, err := kernel.UUIDFromString(item.DishID)
		if err != nil {
			return nil, fmt.Errorf("invalid dish id %q", item.DishID)
		}

		picks := make([]order.OptionPick, 0, len(item.Picks))
		for _, p := range item.Picks {
			pick, pickErr := order.NewOptionPick(p.Option, p.Choice)
			if pickErr != nil {
				return nil, pickErr
			}
			picks = append(picks, pick)
		}

		selection, err := order.NewItemSelection(dishID, picks)
		if err != nil {
			return nil, err
		}
		selections = append(selections, selection)
	}
	return selections, nil
}

// operationError maps use case sentinels to HTTP status codes. Anything
// unmatched is an internal failure and must not leak details to the caller.
func (s *Server) operationError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, commands.ErrRestaurantNotFound),
		errors.Is(err, commands.ErrOrderNotFound),
		errors.Is(err, services.ErrDishNotFound),
		errors.Is(err, errs.ErrObjectNotFound):
		return errorResponse(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrOrderNotVisible),
		errors.Is(err, services.ErrTransitionNotAllowed),
		errors.Is(err, commands.ErrActorMustBeDriver):
		return errorResponse(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, commands.ErrOrderConflict),
		errors.Is(err, order.ErrDriverAlreadyAssigned):
		return errorResponse(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrItemsAreRequired):
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	default:
		ctx.Logger().Errorf("operation failed: %v", err)
		return errorResponse(ctx, http.StatusInternalServerError, "internal error")
	}
}

func errorResponse(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{
		Code:    code,
		Message: message,
	})
}

func queryResponse(resp queries.OrderResponse) OrderResponse {
	items := make([]NewOrderItem, len(resp.Items))
	for i, item := range resp.Items {
		picks := make([]NewOrderPick, len(item.Picks))
		for j, p := range item.Picks {
			picks[j] = NewOrderPick{Option: p.Option, Choice: p.Choice}
		}
		items[i] = NewOrderItem{DishID: item.DishID.String(), Picks: picks}
	}

	return OrderResponse{
		ID:                resp.ID.String(),
		CustomerID:        optionalID(resp.CustomerID),
		RestaurantID:      optionalID(resp.RestaurantID),
		RestaurantOwnerID: optionalID(resp.RestaurantOwnerID),
		DriverID:          optionalID(resp.DriverID),
		Items:             items,
		Total:             resp.Total,
		Status:            resp.Status,
	}
}

func eventResponse(o *order.Order) OrderResponse {
	items := make([]NewOrderItem, len(o.Items()))
	for i, selection := range o.Items() {
		picks := make([]NewOrderPick, len(selection.Picks()))
		for j, p := range selection.Picks() {
			picks[j] = NewOrderPick{Option: p.Option(), Choice: p.Choice()}
		}
		items[i] = NewOrderItem{DishID: selection.DishID().String(), Picks: picks}
	}

	return OrderResponse{
		ID:                o.ID().String(),
		CustomerID:        optionalID(o.CustomerID()),
		RestaurantID:      optionalID(o.RestaurantID()),
		RestaurantOwnerID: optionalID(o.RestaurantOwnerID()),
		DriverID:          optionalID(o.DriverID()),
		Items:             items,
		Total:             o.Total(),
		Status:            o.Status().String(),
	}
}

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
