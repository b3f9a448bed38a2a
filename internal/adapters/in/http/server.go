package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tms/internal/core/application/usecases/commands"
	"tms/internal/core/application/usecases/queries"
	"tms/internal/core/domain/model/kernel"
	"tms/internal/core/domain/model/transportorder"
	"tms/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// CreateTransportOrderHandler stores a new order.
type CreateTransportOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateTransportOrderCommand) (kernel.UUID, error)
}

// UpdateTransportOrderHandler patches an order.
type UpdateTransportOrderHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateTransportOrderCommand) error
}

// ChangeTransportOrderStateHandler moves an order to another state.
type ChangeTransportOrderStateHandler interface {
	Handle(ctx context.Context, cmd commands.ChangeTransportOrderStateCommand) error
}

// ReportProblemHandler records a problem on an order.
type ReportProblemHandler interface {
	Handle(ctx context.Context, cmd commands.ReportProblemCommand) error
}

// StartNextTransportOrderHandler starts the best startable order of a unit.
type StartNextTransportOrderHandler interface {
	Handle(ctx context.Context, cmd commands.StartNextTransportOrderCommand) (kernel.UUID, error)
}

// GetTransportOrderHandler reads one order.
type GetTransportOrderHandler interface {
	Handle(ctx context.Context, query queries.GetTransportOrderQuery) (queries.TransportOrderView, error)
}

// ListTransportOrdersHandler reads orders by unit and state.
type ListTransportOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListTransportOrdersQuery) ([]queries.TransportOrderView, error)
}

// GetStartableTransportOrdersHandler reads the startable orders of a unit.
type GetStartableTransportOrdersHandler interface {
	Handle(ctx context.Context, query queries.GetStartableTransportOrdersQuery) ([]queries.TransportOrderView, error)
}

// Handlers groups the use cases the HTTP API exposes.
type Handlers struct {
	CreateTransportOrder        CreateTransportOrderHandler
	UpdateTransportOrder        UpdateTransportOrderHandler
	ChangeTransportOrderState   ChangeTransportOrderStateHandler
	ReportProblem               ReportProblemHandler
	StartNextTransportOrder     StartNextTransportOrderHandler
	GetTransportOrder           GetTransportOrderHandler
	ListTransportOrders         ListTransportOrdersHandler
	GetStartableTransportOrders GetStartableTransportOrdersHandler
}

// Server implements the HTTP endpoints on top of the application use cases.
type Server struct {
	handlers Handlers
}

// NewServer binds the endpoints to the given use case handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// ListTransportOrders handles GET /api/v1/transport-orders.
func (s *Server) ListTransportOrders(ctx echo.Context) error {
	var unitParam *string
	if err := runtime.BindQueryParameter("form", true, false, "transportUnit", ctx.QueryParams(), &unitParam); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid parameter \"transportUnit\"").SetInternal(err)
	}
	var stateParams *[]string
	if err := runtime.BindQueryParameter("form", true, false, "state", ctx.QueryParams(), &stateParams); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid parameter \"state\"").SetInternal(err)
	}

	var unit *kernel.Barcode
	if unitParam != nil && *unitParam != "" {
		b, err := kernel.NewBarcode(*unitParam)
		if err != nil {
			return err
		}
		unit = &b
	}

	var names []string
	if stateParams != nil {
		names = *stateParams
	}
	states := make([]transportorder.State, 0, len(names))
	for _, name := range names {
		st, err := transportorder.ParseState(name)
		if err != nil {
			return err
		}
		states = append(states, st)
	}

	query, err := queries.NewListTransportOrdersQuery(unit, states...)
	if err != nil {
		return err
	}

	views, err := s.handlers.ListTransportOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toTransportOrders(views))
}

// CreateTransportOrder handles POST /api/v1/transport-orders.
func (s *Server) CreateTransportOrder(ctx echo.Context) error {
	var body NewTransportOrder
	if err := s.bind(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewCreateTransportOrderCommand(
		body.TransportUnit,
		body.SourceLocation,
		body.TargetLocation,
		body.TargetLocationGroup,
		body.Priority,
	)
	if err != nil {
		return err
	}

	id, err := s.handlers.CreateTransportOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	ctx.Response().Header().Set(echo.HeaderLocation, "/api/v1/transport-orders/"+id.String())
	return ctx.JSON(http.StatusCreated, CreatedTransportOrder{ID: id.Bytes()})
}

// GetTransportOrder handles GET /api/v1/transport-orders/{id}.
func (s *Server) GetTransportOrder(ctx echo.Context) error {
	id, err := orderID(ctx)
	if err != nil {
		return err
	}
	return s.respondWithOrder(ctx, id)
}

// UpdateTransportOrder handles PATCH /api/v1/transport-orders/{id}.
func (s *Server) UpdateTransportOrder(ctx echo.Context) error {
	id, err := orderID(ctx)
	if err != nil {
		return err
	}
	expected, err := ifMatch(ctx)
	if err != nil {
		return err
	}

	var body TransportOrderPatch
	if err := s.bind(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateTransportOrderCommand(id, commands.TransportOrderChanges{
		TransportUnit:       body.TransportUnit,
		SourceLocation:      body.SourceLocation,
		TargetLocation:      body.TargetLocation,
		TargetLocationGroup: body.TargetLocationGroup,
		Priority:            body.Priority,
	}, expected)
	if err != nil {
		return err
	}

	if err := s.handlers.UpdateTransportOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithOrder(ctx, id)
}

// ChangeTransportOrderState handles PUT /api/v1/transport-orders/{id}/state.
func (s *Server) ChangeTransportOrderState(ctx echo.Context) error {
	id, err := orderID(ctx)
	if err != nil {
		return err
	}
	expected, err := ifMatch(ctx)
	if err != nil {
		return err
	}

	var body StateChange
	if err := s.bind(ctx, &body); err != nil {
		return err
	}
	state, err := transportorder.ParseState(body.State)
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeTransportOrderStateCommand(id, state, expected)
	if err != nil {
		return err
	}

	if err := s.handlers.ChangeTransportOrderState.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithOrder(ctx, id)
}

// ReportTransportOrderProblem handles PUT /api/v1/transport-orders/{id}/problem.
func (s *Server) ReportTransportOrderProblem(ctx echo.Context) error {
	id, err := orderID(ctx)
	if err != nil {
		return err
	}

	var body Problem
	if err := s.bind(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewReportProblemCommand(id, body.Message, body.MessageNo, derefTime(body.Occurred))
	if err != nil {
		return err
	}

	if err := s.handlers.ReportProblem.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithOrder(ctx, id)
}

// GetStartableTransportOrders handles
// GET /api/v1/transport-units/{barcode}/startable-orders.
func (s *Server) GetStartableTransportOrders(ctx echo.Context) error {
	unit, err := barcode(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewGetStartableTransportOrdersQuery(unit)
	if err != nil {
		return err
	}

	views, err := s.handlers.GetStartableTransportOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toTransportOrders(views))
}

// StartNextTransportOrder handles POST /api/v1/transport-units/{barcode}/start-next.
func (s *Server) StartNextTransportOrder(ctx echo.Context) error {
	unit, err := barcode(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewStartNextTransportOrderCommand(unit)
	if err != nil {
		return err
	}

	id, err := s.handlers.StartNextTransportOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return s.respondWithOrder(ctx, id)
}

func (s *Server) respondWithOrder(ctx echo.Context, id kernel.UUID) error {
	query, err := queries.NewGetTransportOrderQuery(id)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetTransportOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	ctx.Response().Header().Set("ETag", strconv.Quote(strconv.FormatInt(view.Version, 10)))
	return ctx.JSON(http.StatusOK, toTransportOrder(view))
}

func (s *Server) bind(ctx echo.Context, body any) error {
	if err := ctx.Bind(body); err != nil {
		return err
	}
	return ctx.Validate(body)
}

func orderID(ctx echo.Context) (kernel.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return kernel.UUIDFromBytes(id[:])
}

func barcode(ctx echo.Context) (kernel.Barcode, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", "barcode", ctx.Param("barcode"), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.Barcode{}, errs.NewValueIsInvalidErrorWithCause("barcode", err)
	}
	return kernel.NewBarcode(value)
}

// ifMatch reads the expected version from an If-Match header holding a
// version ETag. A missing header or "*" means any version.
func ifMatch(ctx echo.Context) (*int64, error) {
	raw := strings.TrimSpace(ctx.Request().Header.Get("If-Match"))
	if raw == "" || raw == "*" {
		return nil, nil
	}
	raw = strings.TrimPrefix(raw, "W/")
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	version, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("If-Match", err)
	}
	return &version, nil
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
