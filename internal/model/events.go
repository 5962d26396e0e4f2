package model

import "context"

// TopicUserCreated carries account creation announcements to other services.
const TopicUserCreated = "user.created"

// Publisher announces domain events to other services. Delivery is
// fire-and-forget; a failed publish must never roll back the operation
// that produced the event.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}
