package event

import (
	"context"
	"customer-api/internal/domain/customer"
	"log/slog"
	"time"
)

// CustomerEventPayload never carries the password hash.
type CustomerEventPayload struct {
	CustomerID int64     `json:"customerId"`
	Name       string    `json:"name"`
	TaxpayerID string    `json:"taxpayerId"`
	Email      string    `json:"email"`
	Active     bool      `json:"active"`
	CreateDate time.Time `json:"createDate"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CustomerCreatedEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

type CustomerUpdatedEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

func NewCustomerEventPayload(c *customer.Customer) CustomerEventPayload {
	return CustomerEventPayload{
		CustomerID: c.CustomerID,
		Name:       c.Name,
		TaxpayerID: c.TaxpayerID.Value(),
		Email:      c.Email.Value(),
		Active:     c.Active,
		CreateDate: c.CreateDate,
		UpdatedAt:  c.UpdatedAt,
	}
}

func NewCustomerCreatedEvent(c *customer.Customer) CustomerCreatedEvent {
	return CustomerCreatedEvent{Timestamp: time.Now().UTC(), Payload: NewCustomerEventPayload(c)}
}

func NewCustomerUpdatedEvent(c *customer.Customer) CustomerUpdatedEvent {
	return CustomerUpdatedEvent{Timestamp: time.Now().UTC(), Payload: NewCustomerEventPayload(c)}
}

// LoggingEventPublisher stands in for the broker when RabbitMQ is disabled.
type LoggingEventPublisher struct {
	logger *slog.Logger
}

var _ EventPublisher = (*LoggingEventPublisher)(nil)

func NewLoggingEventPublisher(logger *slog.Logger) *LoggingEventPublisher {
	return &LoggingEventPublisher{logger: logger.With("component", "LoggingEventPublisher")}
}

func (p *LoggingEventPublisher) PublishCustomerCreated(ctx context.Context, event CustomerCreatedEvent) error {
	p.logger.InfoContext(ctx, "Customer event", "routingKey", routingKeyCustomerCreated, "customerID", event.Payload.CustomerID)
	return nil
}

func (p *LoggingEventPublisher) PublishCustomerUpdated(ctx context.Context, event CustomerUpdatedEvent) error {
	p.logger.InfoContext(ctx, "Customer event", "routingKey", routingKeyCustomerUpdated, "customerID", event.Payload.CustomerID, "active", event.Payload.Active)
	return nil
}
