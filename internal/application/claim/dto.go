package claim

import (
	"time"

	"github.com/commerce/backoffice/internal/domain/claim"
	"github.com/commerce/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Request DTOs ====================

// RequestClaimRequest represents a customer's new claim filing
type RequestClaimRequest struct {
	OrderID        uuid.UUID       `json:"order_id"`
	OrderItemID    *uuid.UUID      `json:"order_item_id"`
	MemberID       *uuid.UUID      `json:"member_id"`
	SellerID       uuid.UUID       `json:"seller_id"`
	ClaimType      claim.ClaimType `json:"claim_type"`
	Reason         string          `json:"reason"`
	Quantity       int             `json:"quantity"`
	RefundAmount   decimal.Decimal `json:"refund_amount"`
	PickupRequired bool            `json:"pickup_required"`
}

// RejectClaimRequest carries the mandatory rejection reason
type RejectClaimRequest struct {
	Reason string `json:"reason"`
}

// SchedulePickupRequest books a carrier pickup for the return leg
type SchedulePickupRequest struct {
	ScheduledAt   time.Time `json:"scheduled_at"`
	PickupAddress string    `json:"pickup_address"`
	CustomerPhone string    `json:"customer_phone"`
}

// RegisterReturnShippingRequest records return tracking details
type RegisterReturnShippingRequest struct {
	Method         claim.ReturnShippingMethod `json:"method"`
	TrackingNumber string                     `json:"tracking_number"`
	Carrier        string                     `json:"carrier"`
}

// UpdateReturnShippingStatusRequest carries a carrier webhook payload.
// EventID is the carrier's delivery id, used for at-least-once
// deduplication; an empty EventID skips the dedup check.
type UpdateReturnShippingStatusRequest struct {
	EventID        string `json:"event_id"`
	CarrierStatus  string `json:"carrier_status"`
	TrackingNumber string `json:"tracking_number"`
}

// ConfirmReturnReceivedRequest records warehouse receipt and inspection
type ConfirmReturnReceivedRequest struct {
	InspectionResult claim.InspectionResult `json:"inspection_result"`
	InspectionNote   string                 `json:"inspection_note"`
}

// RegisterExchangeShippingRequest records replacement tracking details
type RegisterExchangeShippingRequest struct {
	TrackingNumber string `json:"tracking_number"`
	Carrier        string `json:"carrier"`
}

// ClaimSearchFilter narrows the admin claim listing. LastClaimID is the
// opaque cursor returned by the previous page.
type ClaimSearchFilter struct {
	SellerID      *uuid.UUID          `json:"seller_id"`
	OrderID       *uuid.UUID          `json:"order_id"`
	MemberID      *uuid.UUID          `json:"member_id"`
	ClaimType     *claim.ClaimType    `json:"claim_type"`
	ClaimTypes    []claim.ClaimType   `json:"claim_types"`
	Status        *claim.ClaimStatus  `json:"status"`
	Statuses      []claim.ClaimStatus `json:"statuses"`
	Keyword       string              `json:"keyword"`
	RequestedFrom *time.Time          `json:"requested_from"`
	RequestedTo   *time.Time          `json:"requested_to"`
	LastClaimID   *uuid.UUID          `json:"last_claim_id"`
	Size          int                 `json:"size"`
}

// ==================== Response DTOs ====================

// ReturnShippingResponse is the return-leg view of a claim
type ReturnShippingResponse struct {
	Status            claim.ReturnShippingStatus `json:"status"`
	Method            claim.ReturnShippingMethod `json:"method,omitempty"`
	ScheduledPickupAt *time.Time                 `json:"scheduled_pickup_at,omitempty"`
	PickupAddress     string                     `json:"pickup_address,omitempty"`
	CustomerPhone     string                     `json:"customer_phone,omitempty"`
	TrackingNumber    string                     `json:"tracking_number,omitempty"`
	Carrier           string                     `json:"carrier,omitempty"`
	LastCarrierStatus string                     `json:"last_carrier_status,omitempty"`
	ReceivedAt        *time.Time                 `json:"received_at,omitempty"`
	InspectionResult  claim.InspectionResult     `json:"inspection_result,omitempty"`
	InspectionNote    string                     `json:"inspection_note,omitempty"`
}

// ExchangeShippingResponse is the replacement-leg view of a claim
type ExchangeShippingResponse struct {
	Status         claim.ExchangeShippingStatus `json:"status"`
	TrackingNumber string                       `json:"tracking_number,omitempty"`
	Carrier        string                       `json:"carrier,omitempty"`
	ShippedAt      *time.Time                   `json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time                   `json:"delivered_at,omitempty"`
}

// ClaimResponse is the full view of a single claim
type ClaimResponse struct {
	ID               uuid.UUID                 `json:"id"`
	ClaimNumber      string                    `json:"claim_number"`
	OrderID          uuid.UUID                 `json:"order_id"`
	OrderItemID      *uuid.UUID                `json:"order_item_id,omitempty"`
	MemberID         *uuid.UUID                `json:"member_id,omitempty"`
	SellerID         uuid.UUID                 `json:"seller_id"`
	ClaimType        claim.ClaimType           `json:"claim_type"`
	Status           claim.ClaimStatus         `json:"status"`
	Reason           string                    `json:"reason"`
	RejectReason     string                    `json:"reject_reason,omitempty"`
	Quantity         int                       `json:"quantity"`
	RefundAmount     decimal.Decimal           `json:"refund_amount"`
	ProcessedBy      *uuid.UUID                `json:"processed_by,omitempty"`
	RequestedAt      time.Time                 `json:"requested_at"`
	ApprovedAt       *time.Time                `json:"approved_at,omitempty"`
	RejectedAt       *time.Time                `json:"rejected_at,omitempty"`
	CompletedAt      *time.Time                `json:"completed_at,omitempty"`
	CancelledAt      *time.Time                `json:"cancelled_at,omitempty"`
	ReturnShipping   *ReturnShippingResponse   `json:"return_shipping,omitempty"`
	ExchangeShipping *ExchangeShippingResponse `json:"exchange_shipping,omitempty"`
	Version          int                       `json:"version"`
	CreatedAt        time.Time                 `json:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at"`
}

// ClaimListItemResponse is the compact listing view of a claim
type ClaimListItemResponse struct {
	ID           uuid.UUID         `json:"id"`
	ClaimNumber  string            `json:"claim_number"`
	OrderID      uuid.UUID         `json:"order_id"`
	SellerID     uuid.UUID         `json:"seller_id"`
	ClaimType    claim.ClaimType   `json:"claim_type"`
	Status       claim.ClaimStatus `json:"status"`
	Reason       string            `json:"reason"`
	Quantity     int               `json:"quantity"`
	RefundAmount decimal.Decimal   `json:"refund_amount"`
	RequestedAt  time.Time         `json:"requested_at"`
}

// ClaimSliceResponse is one cursor page of the admin listing
type ClaimSliceResponse = shared.Slice[ClaimListItemResponse]

// StatusCountResponse is one bucket of the per-status summary
type StatusCountResponse struct {
	Status claim.ClaimStatus `json:"status"`
	Count  int64             `json:"count"`
}

// ==================== Mappers ====================

// ToClaimResponse converts a domain claim to its full response
func ToClaimResponse(c *claim.Claim) ClaimResponse {
	resp := ClaimResponse{
		ID:           c.ID,
		ClaimNumber:  c.ClaimNumber,
		OrderID:      c.OrderID,
		OrderItemID:  c.OrderItemID,
		MemberID:     c.MemberID,
		SellerID:     c.SellerID,
		ClaimType:    c.Type,
		Status:       c.Status,
		Reason:       c.Reason,
		RejectReason: c.RejectReason,
		Quantity:     c.Quantity,
		RefundAmount: c.RefundAmount,
		ProcessedBy:  c.ProcessedBy,
		RequestedAt:  c.RequestedAt,
		ApprovedAt:   c.ApprovedAt,
		RejectedAt:   c.RejectedAt,
		CompletedAt:  c.CompletedAt,
		CancelledAt:  c.CancelledAt,
		Version:      c.Version,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}

	if f := c.ReturnFlow(); f != nil {
		resp.ReturnShipping = &ReturnShippingResponse{
			Status:            f.Status,
			Method:            f.Method,
			ScheduledPickupAt: f.ScheduledPickupAt,
			PickupAddress:     f.PickupAddress,
			CustomerPhone:     f.CustomerPhone,
			TrackingNumber:    f.TrackingNumber,
			Carrier:           f.Carrier,
			LastCarrierStatus: f.LastCarrierStatus,
			ReceivedAt:        f.ReceivedAt,
			InspectionResult:  f.InspectionResult,
			InspectionNote:    f.InspectionNote,
		}
	}

	if f := c.ExchangeFlow(); f != nil {
		resp.ExchangeShipping = &ExchangeShippingResponse{
			Status:         f.Status,
			TrackingNumber: f.TrackingNumber,
			Carrier:        f.Carrier,
			ShippedAt:      f.ShippedAt,
			DeliveredAt:    f.DeliveredAt,
		}
	}

	return resp
}

// ToClaimListItemResponse converts a domain claim to its listing view
func ToClaimListItemResponse(c *claim.Claim) ClaimListItemResponse {
	return ClaimListItemResponse{
		ID:           c.ID,
		ClaimNumber:  c.ClaimNumber,
		OrderID:      c.OrderID,
		SellerID:     c.SellerID,
		ClaimType:    c.Type,
		Status:       c.Status,
		Reason:       c.Reason,
		Quantity:     c.Quantity,
		RefundAmount: c.RefundAmount,
		RequestedAt:  c.RequestedAt,
	}
}

// ToClaimListItemResponses converts a slice of domain claims
func ToClaimListItemResponses(claims []claim.Claim) []ClaimListItemResponse {
	responses := make([]ClaimListItemResponse, len(claims))
	for i := range claims {
		responses[i] = ToClaimListItemResponse(&claims[i])
	}
	return responses
}

// ToStatusCountResponses converts repository status counts
func ToStatusCountResponses(counts []claim.StatusCount) []StatusCountResponse {
	responses := make([]StatusCountResponse, len(counts))
	for i, c := range counts {
		responses[i] = StatusCountResponse{Status: c.Status, Count: c.Count}
	}
	return responses
}
