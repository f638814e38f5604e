package claim

// ClaimStatus represents the top-level lifecycle status of a claim
type ClaimStatus string

const (
	StatusRequested  ClaimStatus = "REQUESTED"   // Waiting for admin review
	StatusApproved   ClaimStatus = "APPROVED"    // Approved, goods movement not started
	StatusRejected   ClaimStatus = "REJECTED"    // Rejected by admin
	StatusInProgress ClaimStatus = "IN_PROGRESS" // Goods movement underway
	StatusCompleted  ClaimStatus = "COMPLETED"   // Claim fully settled
	StatusCancelled  ClaimStatus = "CANCELLED"   // Withdrawn by the requester
)

// IsValid checks if the status is a valid ClaimStatus
func (s ClaimStatus) IsValid() bool {
	switch s {
	case StatusRequested, StatusApproved, StatusRejected,
		StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of ClaimStatus
func (s ClaimStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s ClaimStatus) CanTransitionTo(target ClaimStatus) bool {
	switch s {
	case StatusRequested:
		return target == StatusApproved || target == StatusRejected || target == StatusCancelled
	case StatusApproved:
		return target == StatusInProgress || target == StatusCompleted || target == StatusCancelled
	case StatusInProgress:
		return target == StatusCompleted
	case StatusRejected, StatusCompleted, StatusCancelled:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true if no further transition is possible
func (s ClaimStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusCompleted || s == StatusCancelled
}

// IsActive returns true for statuses that count against the
// one-active-claim-per-order rule
func (s ClaimStatus) IsActive() bool {
	return s == StatusRequested || s == StatusApproved || s == StatusInProgress
}

// ActiveStatuses returns the statuses considered active for the
// duplicate-claim check
func ActiveStatuses() []ClaimStatus {
	return []ClaimStatus{StatusRequested, StatusApproved, StatusInProgress}
}

// ClaimType represents the kind of remedy the customer requested.
// The type is fixed at creation and decides which goods-movement
// sub-flow the claim carries.
type ClaimType string

const (
	TypeCancel   ClaimType = "CANCEL"
	TypeReturn   ClaimType = "RETURN"
	TypeExchange ClaimType = "EXCHANGE"
)

// IsValid checks if the type is a valid ClaimType
func (t ClaimType) IsValid() bool {
	switch t {
	case TypeCancel, TypeReturn, TypeExchange:
		return true
	}
	return false
}

// String returns the string representation of ClaimType
func (t ClaimType) String() string {
	return string(t)
}

// InspectionResult is the outcome of inspecting returned goods
type InspectionResult string

const (
	InspectionPass InspectionResult = "PASS"
	InspectionFail InspectionResult = "FAIL"
)

// IsValid checks if the result is a valid InspectionResult
func (r InspectionResult) IsValid() bool {
	return r == InspectionPass || r == InspectionFail
}

// String returns the string representation of InspectionResult
func (r InspectionResult) String() string {
	return string(r)
}

// ReturnShippingStatus tracks the return leg of goods movement
type ReturnShippingStatus string

const (
	ReturnNotScheduled       ReturnShippingStatus = "NOT_SCHEDULED"
	ReturnPickupScheduled    ReturnShippingStatus = "PICKUP_SCHEDULED"
	ReturnShippingRegistered ReturnShippingStatus = "SHIPPING_REGISTERED"
	ReturnReceived           ReturnShippingStatus = "RECEIVED"
	ReturnInspected          ReturnShippingStatus = "INSPECTED"
)

// IsValid checks if the status is a valid ReturnShippingStatus
func (s ReturnShippingStatus) IsValid() bool {
	switch s {
	case ReturnNotScheduled, ReturnPickupScheduled, ReturnShippingRegistered,
		ReturnReceived, ReturnInspected:
		return true
	}
	return false
}

// String returns the string representation of ReturnShippingStatus
func (s ReturnShippingStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// SHIPPING_REGISTERED is reachable straight from NOT_SCHEDULED for
// self-drop-off returns that skip pickup scheduling.
func (s ReturnShippingStatus) CanTransitionTo(target ReturnShippingStatus) bool {
	switch s {
	case ReturnNotScheduled:
		return target == ReturnPickupScheduled || target == ReturnShippingRegistered
	case ReturnPickupScheduled:
		return target == ReturnShippingRegistered
	case ReturnShippingRegistered:
		return target == ReturnReceived
	case ReturnReceived:
		return target == ReturnInspected
	case ReturnInspected:
		return false
	}
	return false
}

// ReturnShippingMethod describes how returned goods travel back
type ReturnShippingMethod string

const (
	MethodSellerPickup ReturnShippingMethod = "SELLER_PICKUP"
	MethodParcel       ReturnShippingMethod = "PARCEL"
	MethodDropOff      ReturnShippingMethod = "DROP_OFF"
)

// IsValid checks if the method is a valid ReturnShippingMethod
func (m ReturnShippingMethod) IsValid() bool {
	switch m {
	case MethodSellerPickup, MethodParcel, MethodDropOff:
		return true
	}
	return false
}

// String returns the string representation of ReturnShippingMethod
func (m ReturnShippingMethod) String() string {
	return string(m)
}

// ExchangeShippingStatus tracks the replacement-goods leg of an exchange
type ExchangeShippingStatus string

const (
	ExchangeNotRegistered      ExchangeShippingStatus = "NOT_REGISTERED"
	ExchangeShippingRegistered ExchangeShippingStatus = "SHIPPING_REGISTERED"
	ExchangeDelivered          ExchangeShippingStatus = "DELIVERED"
)

// IsValid checks if the status is a valid ExchangeShippingStatus
func (s ExchangeShippingStatus) IsValid() bool {
	switch s {
	case ExchangeNotRegistered, ExchangeShippingRegistered, ExchangeDelivered:
		return true
	}
	return false
}

// String returns the string representation of ExchangeShippingStatus
func (s ExchangeShippingStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s ExchangeShippingStatus) CanTransitionTo(target ExchangeShippingStatus) bool {
	switch s {
	case ExchangeNotRegistered:
		return target == ExchangeShippingRegistered
	case ExchangeShippingRegistered:
		return target == ExchangeDelivered
	case ExchangeDelivered:
		return false
	}
	return false
}
