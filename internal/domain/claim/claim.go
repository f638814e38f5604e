package claim

import (
	"time"

	"github.com/commerce/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Claim is the aggregate root for a customer's cancel/return/exchange
// request against an order.
//
// Lifecycle:
//
//	REQUESTED → APPROVED → IN_PROGRESS → COMPLETED
//	    │           │
//	    │           └→ CANCELLED (by requester)
//	    └→ REJECTED / CANCELLED
//
// Every mutating method takes the current time from the caller; the
// aggregate never reads the wall clock. Transitions are
// idempotent-rejecting: replaying an already-satisfied transition fails
// instead of silently succeeding, so double submissions surface to the
// caller.
type Claim struct {
	shared.BaseAggregateRoot
	ClaimNumber  string
	OrderID      uuid.UUID
	OrderItemID  *uuid.UUID // nil for whole-order claims
	MemberID     *uuid.UUID
	SellerID     uuid.UUID
	Type         ClaimType
	Status       ClaimStatus
	Reason       string
	RejectReason string
	Quantity     int
	RefundAmount decimal.Decimal
	ProcessedBy  *uuid.UUID
	RequestedAt  time.Time
	ApprovedAt   *time.Time
	RejectedAt   *time.Time
	CompletedAt  *time.Time
	CancelledAt  *time.Time

	// exactly one goods-movement variant, fixed at creation
	detail ClaimDetail
}

// NewClaim creates a claim in REQUESTED state. The claim number comes
// from the persistence boundary (see ClaimRepository.GenerateClaimNumber).
// pickupRequired applies only to CANCEL claims whose goods already
// shipped and must be collected before the refund settles.
func NewClaim(
	claimNumber string,
	orderID uuid.UUID,
	orderItemID, memberID *uuid.UUID,
	sellerID uuid.UUID,
	claimType ClaimType,
	reason string,
	quantity int,
	refundAmount decimal.Decimal,
	pickupRequired bool,
	now time.Time,
) (*Claim, error) {
	if err := requireText("claimNumber", claimNumber); err != nil {
		return nil, err
	}
	if orderID == uuid.Nil {
		return nil, &ValidationError{Field: "orderID", Message: "must not be empty"}
	}
	if sellerID == uuid.Nil {
		return nil, &ValidationError{Field: "sellerID", Message: "must not be empty"}
	}
	if !claimType.IsValid() {
		return nil, &ValidationError{Field: "claimType", Message: "unknown claim type"}
	}
	if err := requireText("reason", reason); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, &ValidationError{Field: "quantity", Message: "must be positive"}
	}
	if refundAmount.IsNegative() {
		return nil, &ValidationError{Field: "refundAmount", Message: "must not be negative"}
	}
	if pickupRequired && claimType == TypeExchange {
		return nil, &ValidationError{Field: "pickupRequired", Message: "exchange claims carry their own shipping flow"}
	}

	var detail ClaimDetail
	switch {
	case claimType == TypeReturn:
		detail = &ReturnDetail{Flow: NewReturnShippingFlow()}
	case claimType == TypeCancel && pickupRequired:
		detail = &ReturnDetail{Flow: NewReturnShippingFlow()}
	case claimType == TypeExchange:
		detail = &ExchangeDetail{Flow: NewExchangeShippingFlow()}
	default:
		detail = &CancelDetail{}
	}

	c := &Claim{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(now),
		ClaimNumber:       claimNumber,
		OrderID:           orderID,
		OrderItemID:       orderItemID,
		MemberID:          memberID,
		SellerID:          sellerID,
		Type:              claimType,
		Status:            StatusRequested,
		Reason:            reason,
		Quantity:          quantity,
		RefundAmount:      refundAmount,
		RequestedAt:       now,
		detail:            detail,
	}

	c.AddDomainEvent(NewClaimRequestedEvent(c, now))

	return c, nil
}

// RestoreState carries every persisted field needed to rebuild a claim.
// At most one of ReturnFlow/ExchangeFlow may be set; neither means a
// pure cancel.
type RestoreState struct {
	ID           uuid.UUID
	Version      int
	ClaimNumber  string
	OrderID      uuid.UUID
	OrderItemID  *uuid.UUID
	MemberID     *uuid.UUID
	SellerID     uuid.UUID
	Type         ClaimType
	Status       ClaimStatus
	Reason       string
	RejectReason string
	Quantity     int
	RefundAmount decimal.Decimal
	ProcessedBy  *uuid.UUID
	RequestedAt  time.Time
	ApprovedAt   *time.Time
	RejectedAt   *time.Time
	CompletedAt  *time.Time
	CancelledAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ReturnFlow   *ReturnShippingFlow
	ExchangeFlow *ExchangeShippingFlow
}

// Restore rebuilds a persisted claim without running creation rules
func Restore(s RestoreState) *Claim {
	var detail ClaimDetail
	switch {
	case s.ReturnFlow != nil:
		detail = &ReturnDetail{Flow: s.ReturnFlow}
	case s.ExchangeFlow != nil:
		detail = &ExchangeDetail{Flow: s.ExchangeFlow}
	default:
		detail = &CancelDetail{}
	}

	return &Claim{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        s.ID,
				CreatedAt: s.CreatedAt,
				UpdatedAt: s.UpdatedAt,
			},
			Version: s.Version,
		},
		ClaimNumber:  s.ClaimNumber,
		OrderID:      s.OrderID,
		OrderItemID:  s.OrderItemID,
		MemberID:     s.MemberID,
		SellerID:     s.SellerID,
		Type:         s.Type,
		Status:       s.Status,
		Reason:       s.Reason,
		RejectReason: s.RejectReason,
		Quantity:     s.Quantity,
		RefundAmount: s.RefundAmount,
		ProcessedBy:  s.ProcessedBy,
		RequestedAt:  s.RequestedAt,
		ApprovedAt:   s.ApprovedAt,
		RejectedAt:   s.RejectedAt,
		CompletedAt:  s.CompletedAt,
		CancelledAt:  s.CancelledAt,
		detail:       detail,
	}
}

// Approve accepts the claim for processing.
// Legal only from REQUESTED.
func (c *Claim) Approve(adminID uuid.UUID, now time.Time) error {
	if !c.Status.CanTransitionTo(StatusApproved) {
		return newStateError("Claim", "approve", c.Status)
	}
	if adminID == uuid.Nil {
		return &ValidationError{Field: "adminID", Message: "must not be empty"}
	}

	c.Status = StatusApproved
	c.ApprovedAt = &now
	c.ProcessedBy = &adminID
	c.UpdatedAt = now

	c.AddDomainEvent(NewClaimApprovedEvent(c, adminID, now))

	return nil
}

// Reject turns the claim down with a mandatory reason.
// Legal only from REQUESTED; REJECTED is terminal.
func (c *Claim) Reject(adminID uuid.UUID, reason string, now time.Time) error {
	if !c.Status.CanTransitionTo(StatusRejected) {
		return newStateError("Claim", "reject", c.Status)
	}
	if adminID == uuid.Nil {
		return &ValidationError{Field: "adminID", Message: "must not be empty"}
	}
	if err := requireText("rejectReason", reason); err != nil {
		return err
	}

	c.Status = StatusRejected
	c.RejectedAt = &now
	c.RejectReason = reason
	c.ProcessedBy = &adminID
	c.UpdatedAt = now

	c.AddDomainEvent(NewClaimRejectedEvent(c, adminID, reason, now))

	return nil
}

// MoveToInProgress marks goods movement as underway.
// Legal only from APPROVED and only for claims that actually move goods;
// the first shipping operation also performs this transition implicitly.
func (c *Claim) MoveToInProgress(now time.Time) error {
	if !c.Status.CanTransitionTo(StatusInProgress) {
		return newStateError("Claim", "move to in-progress", c.Status)
	}
	if !c.detail.requiresMovement() {
		return typeNotApplicable(c.Type, "start goods movement")
	}

	c.startMovement(now)
	return nil
}

// Complete settles the claim. Legal from IN_PROGRESS, or directly from
// APPROVED for claims with no goods movement. Claims that move goods
// must have their sub-flow at its end state: INSPECTED with PASS for
// returns, DELIVERED for exchanges.
func (c *Claim) Complete(adminID uuid.UUID, now time.Time) error {
	if c.Status != StatusInProgress && c.Status != StatusApproved {
		return newStateError("Claim", "complete", c.Status)
	}
	if adminID == uuid.Nil {
		return &ValidationError{Field: "adminID", Message: "must not be empty"}
	}
	if err := c.detail.readyForCompletion(c.Type); err != nil {
		return err
	}

	c.Status = StatusCompleted
	c.CompletedAt = &now
	c.ProcessedBy = &adminID
	c.UpdatedAt = now

	c.AddDomainEvent(NewClaimCompletedEvent(c, adminID, now))

	return nil
}

// CancelByCustomer withdraws the claim at the requester's initiative.
// Legal while the claim has not entered goods movement.
func (c *Claim) CancelByCustomer(now time.Time) error {
	if !c.Status.CanTransitionTo(StatusCancelled) {
		return newStateError("Claim", "cancel", c.Status)
	}

	c.Status = StatusCancelled
	c.CancelledAt = &now
	c.UpdatedAt = now

	c.AddDomainEvent(NewClaimCancelledEvent(c, now))

	return nil
}

// ScheduleReturnPickup books a carrier pickup for the return leg
func (c *Claim) ScheduleReturnPickup(scheduledAt time.Time, pickupAddress, customerPhone string, now time.Time) error {
	flow, err := c.returnFlowFor("schedule return pickup")
	if err != nil {
		return err
	}
	if err := flow.SchedulePickup(scheduledAt, pickupAddress, customerPhone, now); err != nil {
		return err
	}

	c.startMovement(now)
	c.UpdatedAt = now
	c.AddDomainEvent(NewReturnPickupScheduledEvent(c, scheduledAt, now))

	return nil
}

// RegisterReturnShipping records the return parcel's carrier and
// tracking number
func (c *Claim) RegisterReturnShipping(method ReturnShippingMethod, trackingNumber, carrier string, now time.Time) error {
	flow, err := c.returnFlowFor("register return shipping")
	if err != nil {
		return err
	}
	if err := flow.RegisterShipping(method, trackingNumber, carrier); err != nil {
		return err
	}

	c.startMovement(now)
	c.UpdatedAt = now
	c.AddDomainEvent(NewReturnShippingRegisteredEvent(c, trackingNumber, carrier, now))

	return nil
}

// UpdateReturnShippingStatus records a carrier-reported status for the
// return parcel without moving the flow's own state machine
func (c *Claim) UpdateReturnShippingStatus(carrierStatus, trackingNumber string, now time.Time) error {
	flow, err := c.returnFlowFor("update return shipping status")
	if err != nil {
		return err
	}
	if err := flow.UpdateShippingStatus(carrierStatus, trackingNumber); err != nil {
		return err
	}

	c.UpdatedAt = now
	return nil
}

// ConfirmReturnReceived records warehouse receipt and the inspection
// outcome. A FAIL result does not reject the claim; it leaves the claim
// in progress with completion permanently blocked, for the admin to
// settle out of band.
func (c *Claim) ConfirmReturnReceived(result InspectionResult, note string, now time.Time) error {
	flow, err := c.returnFlowFor("confirm return received")
	if err != nil {
		return err
	}
	if err := flow.ConfirmReceived(result, note, now); err != nil {
		return err
	}

	c.startMovement(now)
	c.UpdatedAt = now
	c.AddDomainEvent(NewReturnReceivedEvent(c, result, note, now))

	return nil
}

// RegisterExchangeShipping records the replacement parcel's carrier and
// tracking number
func (c *Claim) RegisterExchangeShipping(trackingNumber, carrier string, now time.Time) error {
	flow, err := c.exchangeFlowFor("register exchange shipping")
	if err != nil {
		return err
	}
	if err := flow.RegisterShipping(trackingNumber, carrier, now); err != nil {
		return err
	}

	c.startMovement(now)
	c.UpdatedAt = now
	c.AddDomainEvent(NewExchangeShippingRegisteredEvent(c, trackingNumber, carrier, now))

	return nil
}

// ConfirmExchangeDelivered records delivery of the replacement goods.
// Completion stays a separate admin action.
func (c *Claim) ConfirmExchangeDelivered(now time.Time) error {
	flow, err := c.exchangeFlowFor("confirm exchange delivered")
	if err != nil {
		return err
	}
	if err := flow.ConfirmDelivered(now); err != nil {
		return err
	}

	c.UpdatedAt = now
	c.AddDomainEvent(NewExchangeDeliveredEvent(c, now))

	return nil
}

// returnFlowFor guards a return-leg operation: the claim must carry a
// return flow and must already be approved.
func (c *Claim) returnFlowFor(operation string) (*ReturnShippingFlow, error) {
	d, ok := c.detail.(*ReturnDetail)
	if !ok {
		return nil, typeNotApplicable(c.Type, operation)
	}
	if c.Status != StatusApproved && c.Status != StatusInProgress {
		return nil, newStateError("Claim", operation, c.Status)
	}
	return d.Flow, nil
}

// exchangeFlowFor guards an exchange-leg operation
func (c *Claim) exchangeFlowFor(operation string) (*ExchangeShippingFlow, error) {
	d, ok := c.detail.(*ExchangeDetail)
	if !ok {
		return nil, typeNotApplicable(c.Type, operation)
	}
	if c.Status != StatusApproved && c.Status != StatusInProgress {
		return nil, newStateError("Claim", operation, c.Status)
	}
	return d.Flow, nil
}

// startMovement advances APPROVED to IN_PROGRESS on the first shipping
// operation; already-in-progress claims are left alone.
func (c *Claim) startMovement(now time.Time) {
	if c.Status != StatusApproved {
		return
	}
	c.Status = StatusInProgress
	c.UpdatedAt = now
	c.AddDomainEvent(NewClaimProcessingStartedEvent(c, now))
}

// Detail returns the goods-movement variant of this claim
func (c *Claim) Detail() ClaimDetail {
	return c.detail
}

// ReturnFlow returns the return shipping flow, or nil if this claim has
// none
func (c *Claim) ReturnFlow() *ReturnShippingFlow {
	if d, ok := c.detail.(*ReturnDetail); ok {
		return d.Flow
	}
	return nil
}

// ExchangeFlow returns the exchange shipping flow, or nil if this claim
// has none
func (c *Claim) ExchangeFlow() *ExchangeShippingFlow {
	if d, ok := c.detail.(*ExchangeDetail); ok {
		return d.Flow
	}
	return nil
}

// IsFullOrderClaim returns true when the claim covers the whole order
func (c *Claim) IsFullOrderClaim() bool {
	return c.OrderItemID == nil
}

// IsTerminal returns true if the claim is in a terminal state
func (c *Claim) IsTerminal() bool {
	return c.Status.IsTerminal()
}

// IsActive returns true while the claim counts against the
// one-active-claim-per-order rule
func (c *Claim) IsActive() bool {
	return c.Status.IsActive()
}
