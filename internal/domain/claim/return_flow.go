package claim

import (
	"strings"
	"time"
)

// ReturnShippingFlow is the sub-state-machine for getting goods back
// from the customer: pickup scheduling, carrier registration, carrier
// status updates, then warehouse receipt combined with inspection. It is
// owned by the Claim aggregate and is only mutated through it.
type ReturnShippingFlow struct {
	Status             ReturnShippingStatus
	Method             ReturnShippingMethod
	ScheduledPickupAt  *time.Time
	PickupAddress      string
	CustomerPhone      string
	TrackingNumber     string
	Carrier            string
	LastCarrierStatus  string
	ReceivedAt         *time.Time
	InspectionResult   InspectionResult
	InspectionNote     string
}

// NewReturnShippingFlow creates a return flow awaiting pickup scheduling
func NewReturnShippingFlow() *ReturnShippingFlow {
	return &ReturnShippingFlow{Status: ReturnNotScheduled}
}

// SchedulePickup books a carrier visit to collect the goods.
// scheduledAt must not be in the past relative to the supplied clock.
func (f *ReturnShippingFlow) SchedulePickup(scheduledAt time.Time, pickupAddress, customerPhone string, now time.Time) error {
	if !f.Status.CanTransitionTo(ReturnPickupScheduled) {
		return newStateError("ReturnShippingFlow", "schedule pickup", f.Status)
	}
	if scheduledAt.Before(now) {
		return &ValidationError{Field: "scheduledAt", Message: "pickup must be scheduled at or after the current time"}
	}
	if err := requireText("pickupAddress", pickupAddress); err != nil {
		return err
	}
	if err := requireText("customerPhone", customerPhone); err != nil {
		return err
	}

	f.Status = ReturnPickupScheduled
	f.Method = MethodSellerPickup
	f.ScheduledPickupAt = &scheduledAt
	f.PickupAddress = pickupAddress
	f.CustomerPhone = customerPhone

	return nil
}

// RegisterShipping records the carrier and tracking number for the
// return parcel. Legal after pickup scheduling, or directly from
// NOT_SCHEDULED when the customer ships or drops off the goods
// themselves.
func (f *ReturnShippingFlow) RegisterShipping(method ReturnShippingMethod, trackingNumber, carrier string) error {
	if !f.Status.CanTransitionTo(ReturnShippingRegistered) {
		return newStateError("ReturnShippingFlow", "register shipping", f.Status)
	}
	if !method.IsValid() {
		return &ValidationError{Field: "method", Message: "unknown return shipping method"}
	}
	if err := requireText("trackingNumber", trackingNumber); err != nil {
		return err
	}
	if err := requireText("carrier", carrier); err != nil {
		return err
	}

	f.Status = ReturnShippingRegistered
	f.Method = method
	f.TrackingNumber = trackingNumber
	f.Carrier = carrier

	return nil
}

// UpdateShippingStatus records a carrier-reported intermediate status
// (IN_TRANSIT and the like). The flow's own status stays at
// SHIPPING_REGISTERED; only the raw carrier status string is kept.
func (f *ReturnShippingFlow) UpdateShippingStatus(carrierStatus, trackingNumber string) error {
	if f.Status != ReturnShippingRegistered {
		return newStateError("ReturnShippingFlow", "update shipping status", f.Status)
	}
	if err := requireText("carrierStatus", carrierStatus); err != nil {
		return err
	}

	f.LastCarrierStatus = carrierStatus
	if strings.TrimSpace(trackingNumber) != "" {
		f.TrackingNumber = trackingNumber
	}

	return nil
}

// ConfirmReceived records warehouse receipt and the inspection outcome
// in one step. Receipt and QA happen as a single physical event at the
// warehouse dock, so the flow passes through RECEIVED straight to
// INSPECTED.
func (f *ReturnShippingFlow) ConfirmReceived(result InspectionResult, note string, now time.Time) error {
	if !f.Status.CanTransitionTo(ReturnReceived) {
		return newStateError("ReturnShippingFlow", "confirm received", f.Status)
	}
	if !result.IsValid() {
		return &ValidationError{Field: "inspectionResult", Message: "must be PASS or FAIL"}
	}

	f.Status = ReturnInspected
	f.ReceivedAt = &now
	f.InspectionResult = result
	f.InspectionNote = note

	return nil
}

// IsInspectedPass returns true once inspection has passed
func (f *ReturnShippingFlow) IsInspectedPass() bool {
	return f.Status == ReturnInspected && f.InspectionResult == InspectionPass
}
