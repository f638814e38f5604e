package claim

import (
	"time"

	"github.com/commerce/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant for Claim
const AggregateTypeClaim = "Claim"

// Event type constants for Claim
const (
	EventTypeClaimRequested             = "ClaimRequested"
	EventTypeClaimApproved              = "ClaimApproved"
	EventTypeClaimRejected              = "ClaimRejected"
	EventTypeClaimProcessingStarted     = "ClaimProcessingStarted"
	EventTypeClaimCompleted             = "ClaimCompleted"
	EventTypeClaimCancelled             = "ClaimCancelled"
	EventTypeReturnPickupScheduled      = "ReturnPickupScheduled"
	EventTypeReturnShippingRegistered   = "ReturnShippingRegistered"
	EventTypeReturnReceived             = "ReturnReceived"
	EventTypeExchangeShippingRegistered = "ExchangeShippingRegistered"
	EventTypeExchangeDelivered          = "ExchangeDelivered"
)

// ClaimRequestedEvent is raised when a customer files a new claim
type ClaimRequestedEvent struct {
	shared.BaseDomainEvent
	ClaimID      uuid.UUID       `json:"claim_id"`
	ClaimNumber  string          `json:"claim_number"`
	OrderID      uuid.UUID       `json:"order_id"`
	SellerID     uuid.UUID       `json:"seller_id"`
	ClaimType    ClaimType       `json:"claim_type"`
	Reason       string          `json:"reason"`
	Quantity     int             `json:"quantity"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
}

// NewClaimRequestedEvent creates a new ClaimRequestedEvent
func NewClaimRequestedEvent(c *Claim, now time.Time) *ClaimRequestedEvent {
	return &ClaimRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClaimRequested, AggregateTypeClaim, c.ID, now),
		ClaimID:         c.ID,
		ClaimNumber:     c.ClaimNumber,
		OrderID:         c.OrderID,
		SellerID:        c.SellerID,
		ClaimType:       c.Type,
		Reason:          c.Reason,
		Quantity:        c.Quantity,
		RefundAmount:    c.RefundAmount,
	}
}

// ClaimApprovedEvent is raised when an admin approves a claim
type ClaimApprovedEvent struct {
	shared.BaseDomainEvent
	ClaimID     uuid.UUID `json:"claim_id"`
	ClaimNumber string    `json:"claim_number"`
	OrderID     uuid.UUID `json:"order_id"`
	ClaimType   ClaimType `json:"claim_type"`
	ApprovedBy  uuid.UUID `json:"approved_by"`
}

// NewClaimApprovedEvent creates a new ClaimApprovedEvent
func NewClaimApprovedEvent(c *Claim, adminID uuid.UUID, now time.Time) *ClaimApprovedEvent {
	return &ClaimApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClaimApproved, AggregateTypeClaim, c.ID, now),
		ClaimID:         c.ID,
		ClaimNumber:     c.ClaimNumber,
		OrderID:         c.OrderID,
		ClaimType:       c.Type,
		ApprovedBy:      adminID,
	}
}

// ClaimRejectedEvent is raised when an admin rejects a claim
type ClaimRejectedEvent struct {
	shared.BaseDomainEvent
	ClaimID      uuid.UUID `json:"claim_id"`
	ClaimNumber  string    `json:"claim_number"`
	OrderID      uuid.UUID `json:"order_id"`
	ClaimType    ClaimType `json:"claim_type"`
	RejectedBy   uuid.UUID `json:"rejected_by"`
	RejectReason string    `json:"reject_reason"`
}

// NewClaimRejectedEvent creates a new ClaimRejectedEvent
func NewClaimRejectedEvent(c *Claim, adminID uuid.UUID, reason string, now time.Time) *ClaimRejectedEvent {
	return &ClaimRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClaimRejected, AggregateTypeClaim, c.ID, now),
		ClaimID:         c.ID,
		ClaimNumber:     c.ClaimNumber,
		OrderID:         c.OrderID,
		ClaimType:       c.Type,
		RejectedBy:      adminID,
		RejectReason:    reason,
	}
}

// ClaimProcessingStartedEvent is raised when goods movement begins
type ClaimProcessingStartedEvent struct {
	shared.BaseDomainEvent
	ClaimID     uuid.UUID `json:"claim_id"`
	ClaimNumber string    `json:"claim_number"`
	ClaimType   ClaimType `json:"claim_type"`
}

// NewClaimProcessingStartedEvent creates a new ClaimProcessingStartedEvent
func NewClaimProcessingStartedEvent(c *Claim, now time.Time) *ClaimProcessingStartedEvent {
	return &ClaimProcessingStartedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClaimProcessingStarted, AggregateTypeClaim, c.ID, now),
		ClaimID:         c.ID,
		ClaimNumber:     c.ClaimNumber,
		ClaimType:       c.Type,
	}
}

// ClaimCompletedEvent is raised when a claim settles
type ClaimCompletedEvent struct {
	shared.BaseDomainEvent
	ClaimID      uuid.UUID       `json:"claim_id"`
	ClaimNumber  string          `json:"claim_number"`
	OrderID      uuid.UUID       `json:"order_id"`
	ClaimType    ClaimType       `json:"claim_type"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	CompletedBy  uuid.UUID       `json:"completed_by"`
}

// NewClaimCompletedEvent creates a new ClaimCompletedEvent
func NewClaimCompletedEvent(c *Claim, adminID uuid.UUID, now time.Time) *ClaimCompletedEvent {
	return &ClaimCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClaimCompleted, AggregateTypeClaim, c.ID, now),
		ClaimID:         c.ID,
		ClaimNumber:     c.ClaimNumber,
		OrderID:         c.OrderID,
		ClaimType:       c.Type,
		RefundAmount:    c.RefundAmount,
		CompletedBy:     adminID,
	}
}

// ClaimCancelledEvent is raised when the requester withdraws a claim
type ClaimCancelledEvent struct {
	shared.BaseDomainEvent
	ClaimID     uuid.UUID `json:"claim_id"`
	ClaimNumber string    `json:"claim_number"`
	OrderID     uuid.UUID `json:"order_id"`
	ClaimType   ClaimType `json:"claim_type"`
}

// NewClaimCancelledEvent creates a new ClaimCancelledEvent
func NewClaimCancelledEvent(c *Claim, now time.Time) *ClaimCancelledEvent {
	return &ClaimCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClaimCancelled, AggregateTypeClaim, c.ID, now),
		ClaimID:         c.ID,
		ClaimNumber:     c.ClaimNumber,
		OrderID:         c.OrderID,
		ClaimType:       c.Type,
	}
}

// ReturnPickupScheduledEvent is raised when a carrier pickup is booked
type ReturnPickupScheduledEvent struct {
	shared.BaseDomainEvent
	ClaimID     uuid.UUID `json:"claim_id"`
	ClaimNumber string    `json:"claim_number"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// NewReturnPickupScheduledEvent creates a new ReturnPickupScheduledEvent
func NewReturnPickupScheduledEvent(c *Claim, scheduledAt, now time.Time) *ReturnPickupScheduledEvent {
	return &ReturnPickupScheduledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnPickupScheduled, AggregateTypeClaim, c.ID, now),
		ClaimID:         c.ID,
		ClaimNumber:     c.ClaimNumber,
		ScheduledAt:     scheduledAt,
	}
}

// ReturnShippingRegisteredEvent is raised when return tracking is recorded
type ReturnShippingRegisteredEvent struct {
	shared.BaseDomainEvent
	ClaimID        uuid.UUID `json:"claim_id"`
	ClaimNumber    string    `json:"claim_number"`
	TrackingNumber string    `json:"tracking_number"`
	Carrier        string    `json:"carrier"`
}

// NewReturnShippingRegisteredEvent creates a new ReturnShippingRegisteredEvent
func NewReturnShippingRegisteredEvent(c *Claim, trackingNumber, carrier string, now time.Time) *ReturnShippingRegisteredEvent {
	return &ReturnShippingRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnShippingRegistered, AggregateTypeClaim, c.ID, now),
		ClaimID:         c.ID,
		ClaimNumber:     c.ClaimNumber,
		TrackingNumber:  trackingNumber,
		Carrier:         carrier,
	}
}

// ReturnReceivedEvent is raised when the warehouse receives and inspects
// the returned goods
type ReturnReceivedEvent struct {
	shared.BaseDomainEvent
	ClaimID          uuid.UUID        `json:"claim_id"`
	ClaimNumber      string           `json:"claim_number"`
	InspectionResult InspectionResult `json:"inspection_result"`
	InspectionNote   string           `json:"inspection_note"`
}

// NewReturnReceivedEvent creates a new ReturnReceivedEvent
func NewReturnReceivedEvent(c *Claim, result InspectionResult, note string, now time.Time) *ReturnReceivedEvent {
	return &ReturnReceivedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeReturnReceived, AggregateTypeClaim, c.ID, now),
		ClaimID:          c.ID,
		ClaimNumber:      c.ClaimNumber,
		InspectionResult: result,
		InspectionNote:   note,
	}
}

// ExchangeShippingRegisteredEvent is raised when replacement tracking is
// recorded
type ExchangeShippingRegisteredEvent struct {
	shared.BaseDomainEvent
	ClaimID        uuid.UUID `json:"claim_id"`
	ClaimNumber    string    `json:"claim_number"`
	TrackingNumber string    `json:"tracking_number"`
	Carrier        string    `json:"carrier"`
}

// NewExchangeShippingRegisteredEvent creates a new ExchangeShippingRegisteredEvent
func NewExchangeShippingRegisteredEvent(c *Claim, trackingNumber, carrier string, now time.Time) *ExchangeShippingRegisteredEvent {
	return &ExchangeShippingRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExchangeShippingRegistered, AggregateTypeClaim, c.ID, now),
		ClaimID:         c.ID,
		ClaimNumber:     c.ClaimNumber,
		TrackingNumber:  trackingNumber,
		Carrier:         carrier,
	}
}

// ExchangeDeliveredEvent is raised when the replacement goods arrive
type ExchangeDeliveredEvent struct {
	shared.BaseDomainEvent
	ClaimID     uuid.UUID `json:"claim_id"`
	ClaimNumber string    `json:"claim_number"`
}

// NewExchangeDeliveredEvent creates a new ExchangeDeliveredEvent
func NewExchangeDeliveredEvent(c *Claim, now time.Time) *ExchangeDeliveredEvent {
	return &ExchangeDeliveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExchangeDelivered, AggregateTypeClaim, c.ID, now),
		ClaimID:         c.ID,
		ClaimNumber:     c.ClaimNumber,
	}
}
