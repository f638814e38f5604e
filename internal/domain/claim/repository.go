package claim

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SearchCondition narrows the admin claim listing. Zero-value fields
// are not applied. LastCreatedAt/LastClaimID together form the keyset
// cursor: results strictly older than that pair, newest first.
type SearchCondition struct {
	SellerID      *uuid.UUID
	OrderID       *uuid.UUID
	MemberID      *uuid.UUID
	Type          *ClaimType
	Types         []ClaimType
	Status        *ClaimStatus
	Statuses      []ClaimStatus
	Keyword       string
	RequestedFrom *time.Time
	RequestedTo   *time.Time
	LastCreatedAt *time.Time
	LastClaimID   *uuid.UUID
	Size          int
}

const (
	defaultSearchSize = 20
	maxSearchSize     = 100
)

// Limit returns the page size clamped to [1, maxSearchSize], defaulting
// when unset
func (c SearchCondition) Limit() int {
	if c.Size <= 0 {
		return defaultSearchSize
	}
	if c.Size > maxSearchSize {
		return maxSearchSize
	}
	return c.Size
}

// StatusCount is one bucket of the per-status claim summary
type StatusCount struct {
	Status ClaimStatus
	Count  int64
}

// ClaimRepository defines the interface for claim persistence
type ClaimRepository interface {
	// FindByID finds a claim by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Claim, error)

	// FindByClaimNumber finds a claim by its business number
	FindByClaimNumber(ctx context.Context, claimNumber string) (*Claim, error)

	// FindByOrder finds all claims filed against an order, newest first
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Claim, error)

	// FindByStatus finds all claims in the given status, newest first
	FindByStatus(ctx context.Context, status ClaimStatus) ([]Claim, error)

	// ExistsActiveByOrder reports whether the order already has a claim
	// in a non-terminal state, optionally scoped to one order item
	ExistsActiveByOrder(ctx context.Context, orderID uuid.UUID, orderItemID *uuid.UUID) (bool, error)

	// Search lists claims matching the condition with keyset pagination,
	// fetching one row beyond the limit so the caller can detect a next page
	Search(ctx context.Context, condition SearchCondition) ([]Claim, error)

	// CountByStatus counts claims per status for a seller; a nil seller
	// counts across all sellers
	CountByStatus(ctx context.Context, sellerID *uuid.UUID) ([]StatusCount, error)

	// Save creates or updates a claim
	Save(ctx context.Context, c *Claim) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, c *Claim) error

	// GenerateClaimNumber generates a unique claim number
	GenerateClaimNumber(ctx context.Context) (string, error)
}
