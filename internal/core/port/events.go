package port

import (
	"context"
	"statushub/internal/core/domain"
)

// EventPublisher is an interface to define a lifecycle event publisher (nats, kafka, ...)
type EventPublisher interface {
	Publish(ctx context.Context, event domain.StatusEvent) error
	Close() error
}
