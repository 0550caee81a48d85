package http

import "time"

// ErrorResponse is the error body returned by every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreatedResponse carries the identifier of a newly created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// CreateSupplierRequest is the body of POST /api/v1/suppliers.
type CreateSupplierRequest struct {
	Name string `json:"name"`
}

// CreateWarehouseRequest is the body of POST /api/v1/warehouses.
type CreateWarehouseRequest struct {
	Name          string `json:"name"`
	TotalCapacity int    `json:"totalCapacity"`
}

// CreateShipmentRequest is the body of POST /api/v1/shipments.
type CreateShipmentRequest struct {
	SupplierID       string `json:"supplierId"`
	OrderReference   string `json:"orderReference"`
	WeekNumber       int    `json:"weekNumber"`
	ExpectedQuantity int    `json:"expectedQuantity"`
}

// TransitionShipmentRequest is the body of POST /api/v1/shipments/:id/transition.
// Only the stage fields relevant to the target status need to be set.
type TransitionShipmentRequest struct {
	TargetStatus     string `json:"targetStatus"`
	Actor            string `json:"actor"`
	Role             string `json:"role"`
	InspectionResult string `json:"inspectionResult,omitempty"`
	InspectionNotes  string `json:"inspectionNotes,omitempty"`
	ReceivedQuantity *int   `json:"receivedQuantity,omitempty"`
	Warehouse        string `json:"warehouse,omitempty"`
	RejectionReason  string `json:"rejectionReason,omitempty"`
	Note             string `json:"note,omitempty"`
}

// RejectShipmentRequest is the body of POST /api/v1/shipments/:id/reject.
type RejectShipmentRequest struct {
	Reason      string `json:"reason"`
	Actor       string `json:"actor"`
	Role        string `json:"role"`
	AutoArchive bool   `json:"autoArchive"`
}

// RecordDiscrepancyRequest is the body of POST /api/v1/shipments/:id/discrepancy.
type RecordDiscrepancyRequest struct {
	ReceivedQuantity int    `json:"receivedQuantity"`
	Note             string `json:"note"`
	Actor            string `json:"actor"`
	Role             string `json:"role"`
}

// AdjustCapacityRequest is the body of PUT /api/v1/capacity/:warehouse.
type AdjustCapacityRequest struct {
	BinsUsed int    `json:"binsUsed"`
	Reason   string `json:"reason"`
	Actor    string `json:"actor"`
	Role     string `json:"role"`
}

// CapacityResponse is the capacity snapshot of one warehouse.
// TransitionResponse reports the outcome of a successful status transition.
// Capacity is present only when the transition reserved or released a bin.
type TransitionResponse struct {
	NewStatus string            `json:"newStatus"`
	Capacity  *CapacityResponse `json:"capacity,omitempty"`
}

type CapacityResponse struct {
	WarehouseName      string  `json:"warehouseName"`
	TotalCapacity      int     `json:"totalCapacity"`
	BinsUsed           int     `json:"binsUsed"`
	AvailableBins      int     `json:"availableBins"`
	UtilizationPercent float64 `json:"utilizationPercent"`
}

// CapacityHistoryResponse is one line of a warehouse's capacity change ledger.
type CapacityHistoryResponse struct {
	WarehouseName string    `json:"warehouseName"`
	PreviousUsed  int       `json:"previousUsed"`
	NewUsed       int       `json:"newUsed"`
	Delta         int       `json:"delta"`
	Actor         string    `json:"actor"`
	Reason        string    `json:"reason"`
	ChangedAt     time.Time `json:"changedAt"`
}

// ActiveShipmentResponse is one row of the active inbound workload list.
type ActiveShipmentResponse struct {
	ID                string `json:"id"`
	SupplierName      string `json:"supplierName"`
	OrderReference    string `json:"orderReference"`
	WeekNumber        int    `json:"weekNumber"`
	Status            string `json:"status"`
	ReinspectionCount int    `json:"reinspectionCount"`
}
