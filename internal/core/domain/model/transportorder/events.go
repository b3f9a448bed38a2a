package transportorder

import (
	"time"

	"tms/internal/core/domain/model/kernel"
)

// StateChanged is recorded by every successful SetState. Orders that change
// state before their first persistence carry their identity only once
// DomainEvents is read after the write.
type StateChanged struct {
	OrderID       kernel.UUID
	TransportUnit string
	From          State
	To            State
	OccurredAt    time.Time
}

type stateChange struct {
	from State
	to   State
	at   time.Time
}
