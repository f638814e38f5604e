package claim

// ClaimDetail is the goods-movement variant of a claim, keyed by claim
// type at construction. Modelling the variants as a sealed interface
// makes it impossible for one claim to carry both a return flow and an
// exchange flow.
type ClaimDetail interface {
	// requiresMovement reports whether physical goods movement stands
	// between approval and completion
	requiresMovement() bool

	// readyForCompletion returns nil when the variant's sub-flow has
	// reached the state required for the claim to complete
	readyForCompletion(t ClaimType) error

	isClaimDetail()
}

// ReturnDetail carries the return leg for RETURN claims and for CANCEL
// claims where already-shipped goods must be picked up first.
type ReturnDetail struct {
	Flow *ReturnShippingFlow
}

func (d *ReturnDetail) requiresMovement() bool { return true }

func (d *ReturnDetail) readyForCompletion(t ClaimType) error {
	if !d.Flow.IsInspectedPass() {
		return &NotReadyForCompletionError{
			ClaimType: t,
			Reason:    "returned goods must be received and pass inspection",
		}
	}
	return nil
}

func (d *ReturnDetail) isClaimDetail() {}

// ExchangeDetail carries the replacement-goods leg for EXCHANGE claims.
type ExchangeDetail struct {
	Flow *ExchangeShippingFlow
}

func (d *ExchangeDetail) requiresMovement() bool { return true }

func (d *ExchangeDetail) readyForCompletion(t ClaimType) error {
	if !d.Flow.IsDelivered() {
		return &NotReadyForCompletionError{
			ClaimType: t,
			Reason:    "replacement goods must be delivered",
		}
	}
	return nil
}

func (d *ExchangeDetail) isClaimDetail() {}

// CancelDetail is the no-movement variant: a cancellation before
// shipment needs no goods back and can complete straight from approval.
type CancelDetail struct{}

func (d *CancelDetail) requiresMovement() bool { return false }

func (d *CancelDetail) readyForCompletion(ClaimType) error { return nil }

func (d *CancelDetail) isClaimDetail() {}
