package models

import (
	"time"

	"github.com/commerce/backoffice/internal/domain/claim"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClaimModel is the persistence model for the Claim aggregate root.
// The goods-movement sub-flows are flattened into nullable column
// groups; a non-null return_status or exchange_status column tells the
// mapper which variant to rebuild.
type ClaimModel struct {
	AggregateModel
	ClaimNumber  string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	OrderID      uuid.UUID         `gorm:"type:uuid;not null;index:idx_claims_order"`
	OrderItemID  *uuid.UUID        `gorm:"type:uuid;index"`
	MemberID     *uuid.UUID        `gorm:"type:uuid;index"`
	SellerID     uuid.UUID         `gorm:"type:uuid;not null;index:idx_claims_seller_status,priority:1"`
	ClaimType    claim.ClaimType   `gorm:"type:varchar(20);not null"`
	Status       claim.ClaimStatus `gorm:"type:varchar(20);not null;index:idx_claims_seller_status,priority:2"`
	Reason       string            `gorm:"type:text;not null"`
	RejectReason string            `gorm:"type:varchar(500)"`
	Quantity     int               `gorm:"not null"`
	RefundAmount decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	ProcessedBy  *uuid.UUID        `gorm:"type:uuid"`
	RequestedAt  time.Time         `gorm:"not null;index"`
	ApprovedAt   *time.Time
	RejectedAt   *time.Time
	CompletedAt  *time.Time
	CancelledAt  *time.Time

	// return leg, present for RETURN claims and pickup-required CANCEL claims
	ReturnStatus            *claim.ReturnShippingStatus `gorm:"type:varchar(30)"`
	ReturnMethod            claim.ReturnShippingMethod  `gorm:"type:varchar(20)"`
	ReturnScheduledPickupAt *time.Time
	ReturnPickupAddress     string `gorm:"type:varchar(500)"`
	ReturnCustomerPhone     string `gorm:"type:varchar(30)"`
	ReturnTrackingNumber    string `gorm:"type:varchar(100)"`
	ReturnCarrier           string `gorm:"type:varchar(100)"`
	ReturnLastCarrierStatus string `gorm:"type:varchar(50)"`
	ReturnReceivedAt        *time.Time
	ReturnInspectionResult  claim.InspectionResult `gorm:"type:varchar(10)"`
	ReturnInspectionNote    string                 `gorm:"type:text"`

	// exchange leg, present for EXCHANGE claims
	ExchangeStatus         *claim.ExchangeShippingStatus `gorm:"type:varchar(30)"`
	ExchangeTrackingNumber string                        `gorm:"type:varchar(100)"`
	ExchangeCarrier        string                        `gorm:"type:varchar(100)"`
	ExchangeShippedAt      *time.Time
	ExchangeDeliveredAt    *time.Time
}

// TableName returns the table name for GORM
func (ClaimModel) TableName() string {
	return "claims"
}

// ToDomain converts the persistence model to a domain Claim entity.
func (m *ClaimModel) ToDomain() *claim.Claim {
	state := claim.RestoreState{
		ID:           m.ID,
		Version:      m.Version,
		ClaimNumber:  m.ClaimNumber,
		OrderID:      m.OrderID,
		OrderItemID:  m.OrderItemID,
		MemberID:     m.MemberID,
		SellerID:     m.SellerID,
		Type:         m.ClaimType,
		Status:       m.Status,
		Reason:       m.Reason,
		RejectReason: m.RejectReason,
		Quantity:     m.Quantity,
		RefundAmount: m.RefundAmount,
		ProcessedBy:  m.ProcessedBy,
		RequestedAt:  m.RequestedAt,
		ApprovedAt:   m.ApprovedAt,
		RejectedAt:   m.RejectedAt,
		CompletedAt:  m.CompletedAt,
		CancelledAt:  m.CancelledAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}

	if m.ReturnStatus != nil {
		state.ReturnFlow = &claim.ReturnShippingFlow{
			Status:            *m.ReturnStatus,
			Method:            m.ReturnMethod,
			ScheduledPickupAt: m.ReturnScheduledPickupAt,
			PickupAddress:     m.ReturnPickupAddress,
			CustomerPhone:     m.ReturnCustomerPhone,
			TrackingNumber:    m.ReturnTrackingNumber,
			Carrier:           m.ReturnCarrier,
			LastCarrierStatus: m.ReturnLastCarrierStatus,
			ReceivedAt:        m.ReturnReceivedAt,
			InspectionResult:  m.ReturnInspectionResult,
			InspectionNote:    m.ReturnInspectionNote,
		}
	}

	if m.ExchangeStatus != nil {
		state.ExchangeFlow = &claim.ExchangeShippingFlow{
			Status:         *m.ExchangeStatus,
			TrackingNumber: m.ExchangeTrackingNumber,
			Carrier:        m.ExchangeCarrier,
			ShippedAt:      m.ExchangeShippedAt,
			DeliveredAt:    m.ExchangeDeliveredAt,
		}
	}

	return claim.Restore(state)
}

// FromDomain populates the persistence model from a domain Claim entity.
func (m *ClaimModel) FromDomain(c *claim.Claim) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.ClaimNumber = c.ClaimNumber
	m.OrderID = c.OrderID
	m.OrderItemID = c.OrderItemID
	m.MemberID = c.MemberID
	m.SellerID = c.SellerID
	m.ClaimType = c.Type
	m.Status = c.Status
	m.Reason = c.Reason
	m.RejectReason = c.RejectReason
	m.Quantity = c.Quantity
	m.RefundAmount = c.RefundAmount
	m.ProcessedBy = c.ProcessedBy
	m.RequestedAt = c.RequestedAt
	m.ApprovedAt = c.ApprovedAt
	m.RejectedAt = c.RejectedAt
	m.CompletedAt = c.CompletedAt
	m.CancelledAt = c.CancelledAt

	if f := c.ReturnFlow(); f != nil {
		status := f.Status
		m.ReturnStatus = &status
		m.ReturnMethod = f.Method
		m.ReturnScheduledPickupAt = f.ScheduledPickupAt
		m.ReturnPickupAddress = f.PickupAddress
		m.ReturnCustomerPhone = f.CustomerPhone
		m.ReturnTrackingNumber = f.TrackingNumber
		m.ReturnCarrier = f.Carrier
		m.ReturnLastCarrierStatus = f.LastCarrierStatus
		m.ReturnReceivedAt = f.ReceivedAt
		m.ReturnInspectionResult = f.InspectionResult
		m.ReturnInspectionNote = f.InspectionNote
	}

	if f := c.ExchangeFlow(); f != nil {
		status := f.Status
		m.ExchangeStatus = &status
		m.ExchangeTrackingNumber = f.TrackingNumber
		m.ExchangeCarrier = f.Carrier
		m.ExchangeShippedAt = f.ShippedAt
		m.ExchangeDeliveredAt = f.DeliveredAt
	}
}

// ClaimModelFromDomain creates a new persistence model from a domain Claim entity.
func ClaimModelFromDomain(c *claim.Claim) *ClaimModel {
	m := &ClaimModel{}
	m.FromDomain(c)
	return m
}
