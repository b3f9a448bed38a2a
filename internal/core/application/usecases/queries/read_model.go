// Package queries contains read operations on transport orders. Queries read
// the tms_transport_order table directly and return flat read models instead
// of aggregates.
package queries

import (
	"time"

	"tms/internal/core/domain/model/kernel"
	"tms/internal/core/domain/model/transportorder"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const transportOrderTable = "tms_transport_order"

// TransportOrderView is the read model of a transport order.
type TransportOrderView struct {
	ID                  kernel.UUID
	TransportUnit       *string
	SourceLocation      *string
	TargetLocation      *string
	TargetLocationGroup *string
	Priority            transportorder.Priority
	State               transportorder.State
	Problem             *ProblemView
	CreationDate        time.Time
	DateUpdated         time.Time
	StartDate           *time.Time
	EndDate             *time.Time
	Version             int64
}

// ProblemView is the last problem reported for an order.
type ProblemView struct {
	Message   string
	MessageNo int
	Occurred  time.Time
}

type problemColumn struct {
	Message   string     `json:"message,omitempty"`
	MessageNo int        `json:"messageNo,omitempty"`
	Occurred  *time.Time `json:"occurred,omitempty"`
}

type transportOrderRow struct {
	ID                  uuid.UUID
	TransportUnit       *string
	SourceLocation      *string
	TargetLocation      *string
	TargetLocationGroup *string
	Priority            int
	State               string
	Problem             datatypes.JSONType[problemColumn]
	CreationDate        time.Time
	DateUpdated         time.Time
	StartDate           *time.Time
	EndDate             *time.Time
	Version             int64 `gorm:"column:c_version"`
}

func (r transportOrderRow) toView() (TransportOrderView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return TransportOrderView{}, err
	}
	state, err := transportorder.ParseState(r.State)
	if err != nil {
		return TransportOrderView{}, err
	}

	view := TransportOrderView{
		ID:                  id,
		TransportUnit:       r.TransportUnit,
		SourceLocation:      r.SourceLocation,
		TargetLocation:      r.TargetLocation,
		TargetLocationGroup: r.TargetLocationGroup,
		Priority:            transportorder.Priority(r.Priority),
		State:               state,
		CreationDate:        r.CreationDate,
		DateUpdated:         r.DateUpdated,
		StartDate:           r.StartDate,
		EndDate:             r.EndDate,
		Version:             r.Version,
	}
	if p := r.Problem.Data(); p.Message != "" {
		view.Problem = &ProblemView{Message: p.Message, MessageNo: p.MessageNo}
		if p.Occurred != nil {
			view.Problem.Occurred = *p.Occurred
		}
	}
	return view, nil
}

func toViews(rows []transportOrderRow) ([]TransportOrderView, error) {
	views := make([]TransportOrderView, 0, len(rows))
	for _, r := range rows {
		v, err := r.toView()
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}
