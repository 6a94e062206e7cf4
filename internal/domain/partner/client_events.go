package partner

import (
	"github.com/google/uuid"
	"github.com/telops/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeClient = "Client"

// Event type constants
const (
	EventTypeClientCreated = "ClientCreated"
)

// ClientCreatedEvent is raised when a new client is registered
type ClientCreatedEvent struct {
	shared.BaseDomainEvent
	ClientID uuid.UUID      `json:"client_id"`
	Code     string         `json:"code"`
	Name     string         `json:"name"`
	Category ClientCategory `json:"category"`
}

// NewClientCreatedEvent creates a new ClientCreatedEvent
func NewClientCreatedEvent(client *Client) *ClientCreatedEvent {
	return &ClientCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientCreated, AggregateTypeClient, client.ID),
		ClientID:        client.ID,
		Code:            client.Code,
		Name:            client.Name,
		Category:        client.Category,
	}
}

// EventType returns the event type name
func (e *ClientCreatedEvent) EventType() string {
	return EventTypeClientCreated
}
