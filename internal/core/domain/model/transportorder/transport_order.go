package transportorder

import (
	"errors"
	"fmt"
	"time"

	"tms/internal/core/domain/model/kernel"
	"tms/internal/pkg/errs"
	"tms/internal/pkg/guard"

	"github.com/jonboulle/clockwork"
)

// TransportOrder is the aggregate root of a single movement of a transport
// unit. It is a plain mutable record with no internal locking; concurrent
// writers are reconciled by the version check of the storage layer.
type TransportOrder struct {
	id *kernel.UUID

	transportUnit       *kernel.Barcode
	sourceLocation      *kernel.LocationID
	targetLocation      *kernel.LocationID
	targetLocationGroup *kernel.LocationGroupName

	priority Priority
	state    State
	problem  *kernel.Problem

	creationDate time.Time
	dateUpdated  time.Time
	startDate    *time.Time
	endDate      *time.Time

	version int64

	clock   clockwork.Clock
	changes []stateChange
	guard   guard.ConstructorGuard
}

// Option configures a TransportOrder at construction.
type Option func(*TransportOrder)

// WithClock replaces the wall clock used for creation, start and end timestamps.
func WithClock(clock clockwork.Clock) Option {
	return func(o *TransportOrder) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// NewTransportOrder returns a new, unpersisted order in state CREATED with
// priority NORMAL. Assignment fields are set afterwards through the setters.
func NewTransportOrder(opts ...Option) *TransportOrder {
	o := &TransportOrder{
		priority: DefaultPriority,
		state:    Created,
		clock:    clockwork.NewRealClock(),
		guard:    guard.NewConstructorGuard(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.creationDate = o.clock.Now().UTC()
	return o
}

// RestoreParams is the persisted form of an order. Optional references are nil
// when absent.
type RestoreParams struct {
	ID                  kernel.UUID
	TransportUnit       *kernel.Barcode
	SourceLocation      *kernel.LocationID
	TargetLocation      *kernel.LocationID
	TargetLocationGroup *kernel.LocationGroupName
	Priority            Priority
	State               State
	Problem             *kernel.Problem
	CreationDate        time.Time
	DateUpdated         time.Time
	StartDate           *time.Time
	EndDate             *time.Time
	Version             int64
}

// RestoreTransportOrder rebuilds an order loaded from storage. No lifecycle
// rule is replayed, only the stored values are checked.
func RestoreTransportOrder(p RestoreParams, opts ...Option) (*TransportOrder, error) {
	o := &TransportOrder{
		clock: clockwork.NewRealClock(),
		guard: guard.NewConstructorGuard(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if err := errors.Join(
		p.ID.Validate(),
		o.SetTransportUnit(p.TransportUnit),
		o.SetSourceLocation(p.SourceLocation),
		o.SetTargetLocation(p.TargetLocation),
		o.SetTargetLocationGroup(p.TargetLocationGroup),
		o.SetPriority(p.Priority),
		o.SetProblem(p.Problem),
		p.State.Validate(),
		validateVersion(p.Version),
		validateTimestamps(p),
	); err != nil {
		return nil, err
	}

	id := p.ID
	o.id = &id
	o.state = p.State
	o.creationDate = p.CreationDate
	o.dateUpdated = p.DateUpdated
	o.startDate = copyTime(p.StartDate)
	o.endDate = copyTime(p.EndDate)
	o.version = p.Version
	return o, nil
}

func validateVersion(version int64) error {
	if version < 0 {
		return errs.NewValueIsInvalidErrorWithCause("version", fmt.Errorf("%d is negative", version))
	}
	return nil
}

func validateTimestamps(p RestoreParams) error {
	if p.CreationDate.IsZero() {
		return errs.NewValueIsRequiredError("creation date")
	}
	if p.State == Started && p.StartDate == nil {
		return errs.NewValueIsRequiredError("start date of a started order")
	}
	if p.State < Started && p.StartDate != nil {
		return errs.NewValueIsInvalidErrorWithCause("start date",
			fmt.Errorf("order in state %s must not have a start date", p.State))
	}
	if p.State == Finished && p.EndDate == nil {
		return errs.NewValueIsRequiredError("end date of a finished order")
	}
	if p.State != Finished && p.EndDate != nil {
		return errs.NewValueIsInvalidErrorWithCause("end date",
			fmt.Errorf("order in state %s must not have an end date", p.State))
	}
	return nil
}

// Validate reports an order that was not built by NewTransportOrder or RestoreTransportOrder.
func (o *TransportOrder) Validate() error {
	if o == nil {
		return ErrTransportOrderIsNotConstructed
	}
	return o.guard.Validate(ErrTransportOrderIsNotConstructed)
}

// IsNew reports whether the order has never been persisted.
func (o *TransportOrder) IsNew() bool {
	return o.id == nil
}

// ID returns the storage-assigned identity, or nil for new orders.
func (o *TransportOrder) ID() *kernel.UUID {
	if o.id == nil {
		return nil
	}
	id := *o.id
	return &id
}

// IsEqual compares two orders by identity.
func (o *TransportOrder) IsEqual(other *TransportOrder) bool {
	if other == nil || o.id == nil || other.id == nil {
		return o == other
	}
	return o.id.IsEqual(*other.id)
}

// TransportUnit returns a copy of the assigned unit, or nil.
func (o *TransportOrder) TransportUnit() *kernel.Barcode {
	if o.transportUnit == nil {
		return nil
	}
	v := *o.transportUnit
	return &v
}

// SourceLocation returns a copy of the pickup location, or nil.
func (o *TransportOrder) SourceLocation() *kernel.LocationID {
	if o.sourceLocation == nil {
		return nil
	}
	v := *o.sourceLocation
	return &v
}

// TargetLocation returns a copy of the concrete destination, or nil.
func (o *TransportOrder) TargetLocation() *kernel.LocationID {
	if o.targetLocation == nil {
		return nil
	}
	v := *o.targetLocation
	return &v
}

// TargetLocationGroup returns a copy of the destination group, or nil.
func (o *TransportOrder) TargetLocationGroup() *kernel.LocationGroupName {
	if o.targetLocationGroup == nil {
		return nil
	}
	v := *o.targetLocationGroup
	return &v
}

// Priority returns the current priority.
func (o *TransportOrder) Priority() Priority { return o.priority }

// State returns the current lifecycle state.
func (o *TransportOrder) State() State { return o.state }

// Problem returns a copy of the last reported problem, or nil.
func (o *TransportOrder) Problem() *kernel.Problem {
	if o.problem == nil {
		return nil
	}
	v := *o.problem
	return &v
}

// CreationDate is set once when the order is created.
func (o *TransportOrder) CreationDate() time.Time { return o.creationDate }

// DateUpdated is zero until the first persisted write.
func (o *TransportOrder) DateUpdated() time.Time { return o.dateUpdated }

// StartDate is set on the first move into STARTED.
func (o *TransportOrder) StartDate() *time.Time { return copyTime(o.startDate) }

// EndDate is set on the move into FINISHED.
func (o *TransportOrder) EndDate() *time.Time { return copyTime(o.endDate) }

// Version is the optimistic-locking counter maintained by the storage layer.
func (o *TransportOrder) Version() int64 { return o.version }

// SetTransportUnit assigns the unit to move. A nil barcode clears it.
func (o *TransportOrder) SetTransportUnit(unit *kernel.Barcode) error {
	if unit == nil {
		o.transportUnit = nil
		return nil
	}
	if err := unit.Validate(); err != nil {
		return err
	}
	v := *unit
	o.transportUnit = &v
	return nil
}

// SetSourceLocation records where the unit is picked up. A nil location clears it.
func (o *TransportOrder) SetSourceLocation(loc *kernel.LocationID) error {
	if loc == nil {
		o.sourceLocation = nil
		return nil
	}
	if err := loc.Validate(); err != nil {
		return err
	}
	v := *loc
	o.sourceLocation = &v
	return nil
}

// SetTargetLocation sets the concrete destination. A nil location clears it.
func (o *TransportOrder) SetTargetLocation(loc *kernel.LocationID) error {
	if loc == nil {
		o.targetLocation = nil
		return nil
	}
	if err := loc.Validate(); err != nil {
		return err
	}
	v := *loc
	o.targetLocation = &v
	return nil
}

// SetTargetLocationGroup sets the destination group. A nil name clears it.
func (o *TransportOrder) SetTargetLocationGroup(group *kernel.LocationGroupName) error {
	if group == nil {
		o.targetLocationGroup = nil
		return nil
	}
	if err := group.Validate(); err != nil {
		return err
	}
	v := *group
	o.targetLocationGroup = &v
	return nil
}

// SetPriority changes the urgency of the order.
func (o *TransportOrder) SetPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	o.priority = priority
	return nil
}

// SetProblem replaces the last recorded problem. A nil problem clears it.
func (o *TransportOrder) SetProblem(problem *kernel.Problem) error {
	if problem == nil {
		o.problem = nil
		return nil
	}
	if err := problem.Validate(); err != nil {
		return err
	}
	v := *problem
	o.problem = &v
	return nil
}

// SetState moves the order to newState.
//
// It fails with an InvalidStateError when the transition breaks the state
// machine (see State.ValidateTransition) and with an IncompleteOrderError when
// a CREATED order without a transport unit or target is to be initialized.
// Requesting the current state of a non-terminal, non-CREATED order is a
// no-op. The order is left untouched on failure.
func (o *TransportOrder) SetState(newState State) error {
	if err := o.state.ValidateTransition(newState); err != nil {
		return err
	}
	if o.state == Created && newState == Initialized {
		if err := o.validateCompleteness(); err != nil {
			return err
		}
	}
	if newState == o.state {
		return nil
	}

	now := o.clock.Now().UTC()
	switch newState {
	case Started:
		if o.startDate == nil {
			o.startDate = &now
		}
	case Finished:
		o.endDate = &now
	}

	o.changes = append(o.changes, stateChange{from: o.state, to: newState, at: now})
	o.state = newState
	return nil
}

func (o *TransportOrder) validateCompleteness() error {
	var missing []string
	if o.transportUnit == nil {
		missing = append(missing, "transport unit")
	}
	if o.targetLocation == nil && o.targetLocationGroup == nil {
		missing = append(missing, "target location or target location group")
	}
	if len(missing) > 0 {
		return &IncompleteOrderError{Missing: missing}
	}
	return nil
}

// MarkPersisted is called by the storage layer after a successful write. It
// assigns the identity of new orders and records the stored version and update
// time. The identity of a persisted order cannot change.
func (o *TransportOrder) MarkPersisted(id kernel.UUID, version int64, dateUpdated time.Time) error {
	if err := errors.Join(id.Validate(), validateVersion(version)); err != nil {
		return err
	}
	if o.id != nil && !o.id.IsEqual(id) {
		return errs.NewValueIsInvalidErrorWithCause("id",
			fmt.Errorf("order %s cannot be persisted as %s", o.id, id))
	}
	o.id = &id
	o.version = version
	o.dateUpdated = dateUpdated
	return nil
}

// DomainEvents returns the state changes recorded since the last
// ClearDomainEvents, stamped with the current identity and transport unit.
func (o *TransportOrder) DomainEvents() []StateChanged {
	if len(o.changes) == 0 {
		return nil
	}
	var id kernel.UUID
	if o.id != nil {
		id = *o.id
	}
	var unit string
	if o.transportUnit != nil {
		unit = o.transportUnit.String()
	}
	events := make([]StateChanged, 0, len(o.changes))
	for _, c := range o.changes {
		events = append(events, StateChanged{
			OrderID:       id,
			TransportUnit: unit,
			From:          c.from,
			To:            c.to,
			OccurredAt:    c.at,
		})
	}
	return events
}

// ClearDomainEvents drops the recorded events once they were published.
func (o *TransportOrder) ClearDomainEvents() {
	o.changes = nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
