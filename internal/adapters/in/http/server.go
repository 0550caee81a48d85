// Package http provides the echo handlers for the freight tracking API.
// It coordinates between HTTP requests and application use cases, translating
// domain errors to HTTP status codes at the edge.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/model/warehouse"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP handlers for the freight tracking API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createSupplierHandler     commands.CreateSupplierCommandHandler
	createWarehouseHandler    commands.CreateWarehouseCommandHandler
	createShipmentHandler     commands.CreateShipmentCommandHandler
	transitionShipmentHandler commands.TransitionShipmentCommandHandler
	rejectShipmentHandler     commands.RejectShipmentCommandHandler
	recordDiscrepancyHandler  commands.RecordDiscrepancyCommandHandler
	adjustCapacityHandler     commands.AdjustCapacityCommandHandler

	// Query handlers
	getWarehouseCapacityHandler queries.GetWarehouseCapacityQueryHandler
	getCapacityHistoryHandler   queries.GetCapacityHistoryQueryHandler
	getActiveShipmentsHandler   queries.GetActiveShipmentsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createSupplierHandler commands.CreateSupplierCommandHandler,
	createWarehouseHandler commands.CreateWarehouseCommandHandler,
	createShipmentHandler commands.CreateShipmentCommandHandler,
	transitionShipmentHandler commands.TransitionShipmentCommandHandler,
	rejectShipmentHandler commands.RejectShipmentCommandHandler,
	recordDiscrepancyHandler commands.RecordDiscrepancyCommandHandler,
	adjustCapacityHandler commands.AdjustCapacityCommandHandler,
	getWarehouseCapacityHandler queries.GetWarehouseCapacityQueryHandler,
	getCapacityHistoryHandler queries.GetCapacityHistoryQueryHandler,
	getActiveShipmentsHandler queries.GetActiveShipmentsQueryHandler,
) *Server {
	return &Server{
		createSupplierHandler:       createSupplierHandler,
		createWarehouseHandler:      createWarehouseHandler,
		createShipmentHandler:       createShipmentHandler,
		transitionShipmentHandler:   transitionShipmentHandler,
		rejectShipmentHandler:       rejectShipmentHandler,
		recordDiscrepancyHandler:    recordDiscrepancyHandler,
		adjustCapacityHandler:       adjustCapacityHandler,
		getWarehouseCapacityHandler: getWarehouseCapacityHandler,
		getCapacityHistoryHandler:   getCapacityHistoryHandler,
		getActiveShipmentsHandler:   getActiveShipmentsHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")

	v1.POST("/suppliers", s.CreateSupplier)
	v1.POST("/warehouses", s.CreateWarehouse)

	v1.POST("/shipments", s.CreateShipment)
	v1.GET("/shipments/active", s.GetActiveShipments)
	v1.POST("/shipments/:id/transition", s.TransitionShipment)
	v1.POST("/shipments/:id/reject", s.RejectShipment)
	v1.POST("/shipments/:id/discrepancy", s.RecordDiscrepancy)

	v1.GET("/capacity/:warehouse", s.GetWarehouseCapacity)
	v1.PUT("/capacity/:warehouse", s.AdjustCapacity)
	v1.GET("/capacity/:warehouse/history", s.GetCapacityHistory)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateSupplier handles POST /api/v1/suppliers - registers a new supplier.
func (s *Server) CreateSupplier(ctx echo.Context) error {
	var req CreateSupplierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	supplierID := kernel.NewUUID()
	cmd, err := commands.NewCreateSupplierCommand(supplierID, req.Name)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.createSupplierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: supplierID.String()})
}

// CreateWarehouse handles POST /api/v1/warehouses - registers a new warehouse.
func (s *Server) CreateWarehouse(ctx echo.Context) error {
	var req CreateWarehouseRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateWarehouseCommand(req.Name, req.TotalCapacity)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.createWarehouseHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// CreateShipment handles POST /api/v1/shipments - registers a new inbound
// shipment line in Intake.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var req CreateShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	supplierID, err := kernel.UUIDFromString(req.SupplierID)
	if err != nil {
		return badRequest(ctx, "Invalid supplier id")
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(
		shipmentID,
		supplierID,
		req.OrderReference,
		req.WeekNumber,
		req.ExpectedQuantity,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.createShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: shipmentID.String()})
}

// TransitionShipment handles POST /api/v1/shipments/:id/transition - requests
// a status change, carrying whatever stage fields the target status needs.
func (s *Server) TransitionShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	var req TransitionShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := shipment.StatusFromString(req.TargetStatus)
	if err != nil {
		return badRequest(ctx, "Unknown target status: "+req.TargetStatus)
	}

	actor, err := actorFromRequest(req.Actor, req.Role)
	if err != nil {
		return errorResponse(ctx, err)
	}

	details := shipment.TransitionDetails{
		InspectionNotes:  req.InspectionNotes,
		ReceivedQuantity: req.ReceivedQuantity,
		Warehouse:        req.Warehouse,
		RejectionReason:  req.RejectionReason,
		Note:             req.Note,
	}
	if req.InspectionResult != "" {
		result, resultErr := shipment.InspectionResultFromString(req.InspectionResult)
		if resultErr != nil {
			return badRequest(ctx, "Unknown inspection result: "+req.InspectionResult)
		}
		details.InspectionResult = result
	}

	cmd, err := commands.NewTransitionShipmentCommand(shipmentID, target, actor, details)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.transitionShipmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := TransitionResponse{NewStatus: result.NewStatus.String()}
	if result.Capacity != nil {
		capacity := capacityResponseFromSnapshot(*result.Capacity)
		response.Capacity = &capacity
	}

	return ctx.JSON(http.StatusOK, response)
}

// RejectShipment handles POST /api/v1/shipments/:id/reject - rejects a
// shipment back to the supplier, optionally chaining the archival.
func (s *Server) RejectShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	var req RejectShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actor, err := actorFromRequest(req.Actor, req.Role)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewRejectShipmentCommand(shipmentID, req.Reason, actor, req.AutoArchive)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.rejectShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordDiscrepancy handles POST /api/v1/shipments/:id/discrepancy - records
// a received-count discrepancy during the receiving stage.
func (s *Server) RecordDiscrepancy(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	var req RecordDiscrepancyRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actor, err := actorFromRequest(req.Actor, req.Role)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewRecordDiscrepancyCommand(shipmentID, req.ReceivedQuantity, req.Note, actor)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.recordDiscrepancyHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetActiveShipments handles GET /api/v1/shipments/active - lists all
// shipments that have not reached a terminal status.
func (s *Server) GetActiveShipments(ctx echo.Context) error {
	shipments, err := s.getActiveShipmentsHandler.Handle(
		ctx.Request().Context(),
		queries.NewGetActiveShipmentsQuery(),
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]ActiveShipmentResponse, len(shipments))
	for i, item := range shipments {
		response[i] = ActiveShipmentResponse{
			ID:                item.ID.String(),
			SupplierName:      item.SupplierName,
			OrderReference:    item.OrderReference,
			WeekNumber:        item.WeekNumber,
			Status:            item.Status,
			ReinspectionCount: item.ReinspectionCount,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetWarehouseCapacity handles GET /api/v1/capacity/:warehouse - returns the
// current capacity snapshot of one warehouse.
func (s *Server) GetWarehouseCapacity(ctx echo.Context) error {
	query, err := queries.NewGetWarehouseCapacityQuery(ctx.Param("warehouse"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	snapshot, err := s.getWarehouseCapacityHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, capacityResponseFrom(snapshot))
}

// AdjustCapacity handles PUT /api/v1/capacity/:warehouse - administrative
// correction of the occupancy counter, returning the resulting snapshot.
func (s *Server) AdjustCapacity(ctx echo.Context) error {
	warehouseName := ctx.Param("warehouse")

	var req AdjustCapacityRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actor, err := actorFromRequest(req.Actor, req.Role)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewAdjustCapacityCommand(warehouseName, req.BinsUsed, req.Reason, actor)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.adjustCapacityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetWarehouseCapacityQuery(warehouseName)
	if err != nil {
		return errorResponse(ctx, err)
	}

	snapshot, err := s.getWarehouseCapacityHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, capacityResponseFrom(snapshot))
}

// GetCapacityHistory handles GET /api/v1/capacity/:warehouse/history - returns
// the capacity change ledger, newest first. Accepts an optional limit query
// parameter.
func (s *Server) GetCapacityHistory(ctx echo.Context) error {
	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return badRequest(ctx, "Invalid limit")
		}
		limit = parsed
	}

	query, err := queries.NewGetCapacityHistoryQuery(ctx.Param("warehouse"), limit)
	if err != nil {
		return errorResponse(ctx, err)
	}

	entries, err := s.getCapacityHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]CapacityHistoryResponse, len(entries))
	for i, entry := range entries {
		response[i] = CapacityHistoryResponse{
			WarehouseName: entry.WarehouseName,
			PreviousUsed:  entry.PreviousUsed,
			NewUsed:       entry.NewUsed,
			Delta:         entry.Delta,
			Actor:         entry.Actor,
			Reason:        entry.Reason,
			ChangedAt:     entry.ChangedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// actorFromRequest builds the acting identity from the request body fields.
func actorFromRequest(name, roleName string) (kernel.Actor, error) {
	role, err := kernel.RoleFromString(roleName)
	if err != nil {
		return kernel.Actor{}, err
	}

	return kernel.NewActor(name, role)
}

func capacityResponseFrom(snapshot queries.GetWarehouseCapacityQueryResponse) CapacityResponse {
	return CapacityResponse{
		WarehouseName:      snapshot.WarehouseName,
		TotalCapacity:      snapshot.TotalCapacity,
		BinsUsed:           snapshot.BinsUsed,
		AvailableBins:      snapshot.AvailableBins,
		UtilizationPercent: snapshot.UtilizationPercent,
	}
}

func capacityResponseFromSnapshot(snapshot warehouse.CapacitySnapshot) CapacityResponse {
	return CapacityResponse{
		WarehouseName:      snapshot.WarehouseName,
		TotalCapacity:      snapshot.TotalCapacity,
		BinsUsed:           snapshot.BinsUsed,
		AvailableBins:      snapshot.AvailableBins,
		UtilizationPercent: snapshot.UtilizationPercent,
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorResponse translates domain and application errors to HTTP status
// codes. Conflicts (illegal transitions, full warehouses, concurrent writes)
// map to 409 so clients can reload and retry deliberately; lock timeouts map
// to 503 because the row was busy rather than the request wrong.
func errorResponse(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, kernel.ErrRoleNotPermitted):
		code = http.StatusForbidden
	case errors.Is(err, shipment.ErrInvalidTransition),
		errors.Is(err, warehouse.ErrCapacityExceeded),
		errors.Is(err, warehouse.ErrCapacityUnderflow),
		errors.Is(err, services.ErrReinspectionLimitReached),
		errors.Is(err, errs.ErrVersionIsInvalid):
		code = http.StatusConflict
	case errors.Is(err, ports.ErrRowLockTimeout):
		code = http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
