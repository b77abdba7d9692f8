package analytics

import "context"

// Store persists QR code lifecycle events.
type Store interface {
	SaveCreated(ctx context.Context, event *QRCodeCreatedEvent) error
	SaveDeleted(ctx context.Context, event *QRCodeDeletedEvent) error
}
