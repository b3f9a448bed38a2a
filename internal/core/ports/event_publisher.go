package ports

import (
	"context"

	"tms/internal/core/domain/model/transportorder"
)

// EventPublisher delivers domain events to the outside world after they were
// committed. Delivery is at most once.
type EventPublisher interface {
	PublishStateChanged(ctx context.Context, events ...transportorder.StateChanged) error
}
