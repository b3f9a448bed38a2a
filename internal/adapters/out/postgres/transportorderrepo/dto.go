// Package transportorderrepo persists TransportOrder aggregates with GORM.
// It maps the aggregate to the tms_transport_order table and implements
// optimistic locking on the c_version column.
package transportorderrepo

import (
	"time"

	"tms/internal/core/domain/model/kernel"
	"tms/internal/core/domain/model/transportorder"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TransportOrderDTO is the row of tms_transport_order. Optional references are
// NULL when absent; the problem column holds an empty object when no problem
// was reported.
type TransportOrderDTO struct {
	ID                  uuid.UUID                      `gorm:"column:id;type:uuid;primaryKey"`
	TransportUnit       *string                        `gorm:"column:transport_unit;size:20;index:idx_tms_transport_order_unit_state"`
	SourceLocation      *string                        `gorm:"column:source_location;size:24"`
	TargetLocation      *string                        `gorm:"column:target_location;size:24"`
	TargetLocationGroup *string                        `gorm:"column:target_location_group;size:255"`
	Priority            int                            `gorm:"column:priority;not null"`
	State               string                         `gorm:"column:state;size:20;not null;index:idx_tms_transport_order_unit_state"`
	Problem             datatypes.JSONType[ProblemDTO] `gorm:"column:problem;not null"`
	CreationDate        time.Time                      `gorm:"column:creation_date;not null"`
	DateUpdated         time.Time                      `gorm:"column:date_updated;not null"`
	StartDate           *time.Time                     `gorm:"column:start_date"`
	EndDate             *time.Time                     `gorm:"column:end_date"`
	Version             int64                          `gorm:"column:c_version;not null"`
}

// TableName maps the DTO to tms_transport_order.
func (TransportOrderDTO) TableName() string {
	return "tms_transport_order"
}

// ProblemDTO is the JSON form of kernel.Problem.
type ProblemDTO struct {
	Message   string     `json:"message,omitempty"`
	MessageNo int        `json:"messageNo,omitempty"`
	Occurred  *time.Time `json:"occurred,omitempty"`
}

func (p ProblemDTO) isEmpty() bool {
	return p.Message == ""
}

func fromDomain(order *transportorder.TransportOrder, id kernel.UUID, version int64, dateUpdated time.Time) TransportOrderDTO {
	dto := TransportOrderDTO{
		ID:           id.Bytes(),
		Priority:     int(order.Priority()),
		State:        order.State().String(),
		Problem:      datatypes.NewJSONType(ProblemDTO{}),
		CreationDate: order.CreationDate(),
		DateUpdated:  dateUpdated,
		StartDate:    order.StartDate(),
		EndDate:      order.EndDate(),
		Version:      version,
	}

	if v := order.TransportUnit(); v != nil {
		dto.TransportUnit = stringPtr(v.String())
	}
	if v := order.SourceLocation(); v != nil {
		dto.SourceLocation = stringPtr(v.String())
	}
	if v := order.TargetLocation(); v != nil {
		dto.TargetLocation = stringPtr(v.String())
	}
	if v := order.TargetLocationGroup(); v != nil {
		dto.TargetLocationGroup = stringPtr(v.String())
	}
	if p := order.Problem(); p != nil {
		occurred := p.Occurred()
		dto.Problem = datatypes.NewJSONType(ProblemDTO{
			Message:   p.Message(),
			MessageNo: p.MessageNo(),
			Occurred:  &occurred,
		})
	}

	return dto
}

// updateColumns lists every column written by Update, including cleared ones.
func (dto TransportOrderDTO) updateColumns() map[string]any {
	return map[string]any{
		"transport_unit":        dto.TransportUnit,
		"source_location":       dto.SourceLocation,
		"target_location":       dto.TargetLocation,
		"target_location_group": dto.TargetLocationGroup,
		"priority":              dto.Priority,
		"state":                 dto.State,
		"problem":               dto.Problem,
		"date_updated":          dto.DateUpdated,
		"start_date":            dto.StartDate,
		"end_date":              dto.EndDate,
		"c_version":             dto.Version,
	}
}

func toDomain(dto TransportOrderDTO) (*transportorder.TransportOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	state, err := transportorder.ParseState(dto.State)
	if err != nil {
		return nil, err
	}

	params := transportorder.RestoreParams{
		ID:           id,
		Priority:     transportorder.Priority(dto.Priority),
		State:        state,
		CreationDate: dto.CreationDate,
		DateUpdated:  dto.DateUpdated,
		StartDate:    dto.StartDate,
		EndDate:      dto.EndDate,
		Version:      dto.Version,
	}

	if dto.TransportUnit != nil {
		unit, unitErr := kernel.NewBarcode(*dto.TransportUnit)
		if unitErr != nil {
			return nil, unitErr
		}
		params.TransportUnit = &unit
	}
	if params.SourceLocation, err = parseLocation(dto.SourceLocation); err != nil {
		return nil, err
	}
	if params.TargetLocation, err = parseLocation(dto.TargetLocation); err != nil {
		return nil, err
	}
	if dto.TargetLocationGroup != nil {
		group, groupErr := kernel.NewLocationGroupName(*dto.TargetLocationGroup)
		if groupErr != nil {
			return nil, groupErr
		}
		params.TargetLocationGroup = &group
	}
	if p := dto.Problem.Data(); !p.isEmpty() {
		var occurred time.Time
		if p.Occurred != nil {
			occurred = *p.Occurred
		}
		problem, problemErr := kernel.NewProblem(p.Message, p.MessageNo, occurred)
		if problemErr != nil {
			return nil, problemErr
		}
		params.Problem = &problem
	}

	return transportorder.RestoreTransportOrder(params)
}

func parseLocation(v *string) (*kernel.LocationID, error) {
	if v == nil {
		return nil, nil
	}
	loc, err := kernel.ParseLocationID(*v)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func stringPtr(v string) *string {
	return &v
}
