package claim

import "time"

// ExchangeShippingFlow is the sub-state-machine for shipping replacement
// goods to the customer. It is owned by the Claim aggregate and is only
// mutated through it.
type ExchangeShippingFlow struct {
	Status         ExchangeShippingStatus
	TrackingNumber string
	Carrier        string
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
}

// NewExchangeShippingFlow creates an exchange flow awaiting shipment
func NewExchangeShippingFlow() *ExchangeShippingFlow {
	return &ExchangeShippingFlow{Status: ExchangeNotRegistered}
}

// RegisterShipping records the carrier and tracking number for the
// replacement parcel
func (f *ExchangeShippingFlow) RegisterShipping(trackingNumber, carrier string, now time.Time) error {
	if !f.Status.CanTransitionTo(ExchangeShippingRegistered) {
		return newStateError("ExchangeShippingFlow", "register shipping", f.Status)
	}
	if err := requireText("trackingNumber", trackingNumber); err != nil {
		return err
	}
	if err := requireText("carrier", carrier); err != nil {
		return err
	}

	f.Status = ExchangeShippingRegistered
	f.TrackingNumber = trackingNumber
	f.Carrier = carrier
	f.ShippedAt = &now

	return nil
}

// ConfirmDelivered marks the replacement as delivered. The carrier API
// only reports the fact of delivery, so there is no payload.
func (f *ExchangeShippingFlow) ConfirmDelivered(now time.Time) error {
	if !f.Status.CanTransitionTo(ExchangeDelivered) {
		return newStateError("ExchangeShippingFlow", "confirm delivered", f.Status)
	}

	f.Status = ExchangeDelivered
	f.DeliveredAt = &now

	return nil
}

// IsDelivered returns true once the replacement reached the customer
func (f *ExchangeShippingFlow) IsDelivered() bool {
	return f.Status == ExchangeDelivered
}
