package http

import (
	"time"

	"tms/internal/core/application/usecases/queries"

	"github.com/google/uuid"
)

// NewTransportOrder is the body of POST /api/v1/transport-orders.
type NewTransportOrder struct {
	TransportUnit       string `json:"transportUnit"       validate:"omitempty,max=20"`
	SourceLocation      string `json:"sourceLocation"`
	TargetLocation      string `json:"targetLocation"`
	TargetLocationGroup string `json:"targetLocationGroup" validate:"omitempty,max=255"`
	Priority            string `json:"priority"`
}

// TransportOrderPatch is the body of PATCH /api/v1/transport-orders/{id}.
// Absent fields stay unchanged, empty strings clear the reference.
type TransportOrderPatch struct {
	TransportUnit       *string `json:"transportUnit"       validate:"omitempty,max=20"`
	SourceLocation      *string `json:"sourceLocation"`
	TargetLocation      *string `json:"targetLocation"`
	TargetLocationGroup *string `json:"targetLocationGroup" validate:"omitempty,max=255"`
	Priority            *string `json:"priority"`
}

// StateChange is the body of a state transition request.
type StateChange struct {
	State string `json:"state" validate:"required"`
}

// Problem is the body of a problem report.
type Problem struct {
	Message   string     `json:"message"            validate:"required"`
	MessageNo int        `json:"messageNo"          validate:"gte=0"`
	Occurred  *time.Time `json:"occurred,omitempty"`
}

// CreatedTransportOrder is returned by a successful create.
type CreatedTransportOrder struct {
	ID uuid.UUID `json:"id"`
}

// TransportOrder is the JSON representation of an order.
type TransportOrder struct {
	ID                  uuid.UUID  `json:"id"`
	TransportUnit       *string    `json:"transportUnit,omitempty"`
	SourceLocation      *string    `json:"sourceLocation,omitempty"`
	TargetLocation      *string    `json:"targetLocation,omitempty"`
	TargetLocationGroup *string    `json:"targetLocationGroup,omitempty"`
	Priority            string     `json:"priority"`
	State               string     `json:"state"`
	Problem             *Problem   `json:"problem,omitempty"`
	CreationDate        time.Time  `json:"creationDate"`
	DateUpdated         time.Time  `json:"dateUpdated"`
	StartDate           *time.Time `json:"startDate,omitempty"`
	EndDate             *time.Time `json:"endDate,omitempty"`
	Version             int64      `json:"version"`
}

// Error is the body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func toTransportOrder(v queries.TransportOrderView) TransportOrder {
	order := TransportOrder{
		ID:                  v.ID.Bytes(),
		TransportUnit:       v.TransportUnit,
		SourceLocation:      v.SourceLocation,
		TargetLocation:      v.TargetLocation,
		TargetLocationGroup: v.TargetLocationGroup,
		Priority:            v.Priority.String(),
		State:               v.State.String(),
		CreationDate:        v.CreationDate,
		DateUpdated:         v.DateUpdated,
		StartDate:           v.StartDate,
		EndDate:             v.EndDate,
		Version:             v.Version,
	}
	if v.Problem != nil {
		occurred := v.Problem.Occurred
		order.Problem = &Problem{
			Message:   v.Problem.Message,
			MessageNo: v.Problem.MessageNo,
			Occurred:  &occurred,
		}
	}
	return order
}

func toTransportOrders(views []queries.TransportOrderView) []TransportOrder {
	response := make([]TransportOrder, len(views))
	for i, v := range views {
		response[i] = toTransportOrder(v)
	}
	return response
}
