package claim

import (
	"context"

	"github.com/commerce/backoffice/internal/domain/claim"
	"github.com/commerce/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// ClaimService handles claim business operations. Mutations load the
// aggregate, apply the transition with the service clock's time, then
// save with optimistic locking; a version conflict surfaces as
// shared.ErrConcurrencyConflict for the caller to retry.
type ClaimService struct {
	claimRepo      claim.ClaimRepository
	clock          shared.Clock
	eventPublisher shared.EventPublisher
	idempotency    shared.IdempotencyStore
	idemConfig     shared.IdempotencyConfig
}

// NewClaimService creates a new ClaimService
func NewClaimService(claimRepo claim.ClaimRepository, clock shared.Clock) *ClaimService {
	return &ClaimService{
		claimRepo:  claimRepo,
		clock:      clock,
		idemConfig: shared.DefaultIdempotencyConfig(),
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ClaimService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetIdempotencyStore enables carrier-webhook deduplication
func (s *ClaimService) SetIdempotencyStore(store shared.IdempotencyStore, cfg shared.IdempotencyConfig) {
	s.idempotency = store
	s.idemConfig = cfg
}

// Request files a new claim against an order. An order (or order item)
// can carry at most one active claim at a time.
func (s *ClaimService) Request(ctx context.Context, req RequestClaimRequest) (*ClaimResponse, error) {
	exists, err := s.claimRepo.ExistsActiveByOrder(ctx, req.OrderID, req.OrderItemID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, claim.ErrDuplicateActiveClaim
	}

	claimNumber, err := s.claimRepo.GenerateClaimNumber(ctx)
	if err != nil {
		return nil, err
	}

	c, err := claim.NewClaim(
		claimNumber,
		req.OrderID,
		req.OrderItemID,
		req.MemberID,
		req.SellerID,
		req.ClaimType,
		req.Reason,
		req.Quantity,
		req.RefundAmount,
		req.PickupRequired,
		s.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err := s.claimRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, c)

	response := ToClaimResponse(c)
	return &response, nil
}

// GetByID retrieves a claim by ID
func (s *ClaimService) GetByID(ctx context.Context, claimID uuid.UUID) (*ClaimResponse, error) {
	c, err := s.claimRepo.FindByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	response := ToClaimResponse(c)
	return &response, nil
}

// GetByClaimNumber retrieves a claim by its business number
func (s *ClaimService) GetByClaimNumber(ctx context.Context, claimNumber string) (*ClaimResponse, error) {
	c, err := s.claimRepo.FindByClaimNumber(ctx, claimNumber)
	if err != nil {
		return nil, err
	}
	response := ToClaimResponse(c)
	return &response, nil
}

// ListByOrder retrieves all claims filed against an order, newest first
func (s *ClaimService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]ClaimListItemResponse, error) {
	claims, err := s.claimRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToClaimListItemResponses(claims), nil
}

// ListByStatus retrieves all claims in the given status, newest first
func (s *ClaimService) ListByStatus(ctx context.Context, status claim.ClaimStatus) ([]ClaimListItemResponse, error) {
	if !status.IsValid() {
		return nil, &claim.ValidationError{Field: "status", Message: "unknown claim status"}
	}
	claims, err := s.claimRepo.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return ToClaimListItemResponses(claims), nil
}

// List retrieves one cursor page of claims matching the filter. The
// cursor is the last claim id of the previous page; its creation time is
// resolved here so the repository can apply a stable keyset predicate.
func (s *ClaimService) List(ctx context.Context, filter ClaimSearchFilter) (*ClaimSliceResponse, error) {
	condition := claim.SearchCondition{
		SellerID:      filter.SellerID,
		OrderID:       filter.OrderID,
		MemberID:      filter.MemberID,
		Type:          filter.ClaimType,
		Types:         filter.ClaimTypes,
		Status:        filter.Status,
		Statuses:      filter.Statuses,
		Keyword:       filter.Keyword,
		RequestedFrom: filter.RequestedFrom,
		RequestedTo:   filter.RequestedTo,
		Size:          filter.Size,
	}

	if filter.LastClaimID != nil {
		cursor, err := s.claimRepo.FindByID(ctx, *filter.LastClaimID)
		if err != nil {
			return nil, err
		}
		createdAt := cursor.CreatedAt
		condition.LastCreatedAt = &createdAt
		condition.LastClaimID = filter.LastClaimID
	}

	claims, err := s.claimRepo.Search(ctx, condition)
	if err != nil {
		return nil, err
	}

	slice := shared.NewSlice(
		ToClaimListItemResponses(claims),
		condition.Limit(),
		func(item ClaimListItemResponse) uuid.UUID { return item.ID },
	)
	return &slice, nil
}

// StatusSummary counts claims per status, optionally scoped to a seller
func (s *ClaimService) StatusSummary(ctx context.Context, sellerID *uuid.UUID) ([]StatusCountResponse, error) {
	counts, err := s.claimRepo.CountByStatus(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return ToStatusCountResponses(counts), nil
}

// Approve accepts a requested claim for processing
func (s *ClaimService) Approve(ctx context.Context, claimID, adminID uuid.UUID) (*ClaimResponse, error) {
	return s.mutate(ctx, claimID, func(c *claim.Claim) error {
		return c.Approve(adminID, s.clock.Now())
	})
}

// Reject turns a requested claim down
func (s *ClaimService) Reject(ctx context.Context, claimID, adminID uuid.UUID, req RejectClaimRequest) (*ClaimResponse, error) {
	return s.mutate(ctx, claimID, func(c *claim.Claim) error {
		return c.Reject(adminID, req.Reason, s.clock.Now())
	})
}

// MoveToInProgress explicitly starts goods movement on an approved claim
func (s *ClaimService) MoveToInProgress(ctx context.Context, claimID uuid.UUID) (*ClaimResponse, error) {
	return s.mutate(ctx, claimID, func(c *claim.Claim) error {
		return c.MoveToInProgress(s.clock.Now())
	})
}

// Complete settles a claim whose goods movement, if any, has finished
func (s *ClaimService) Complete(ctx context.Context, claimID, adminID uuid.UUID) (*ClaimResponse, error) {
	return s.mutate(ctx, claimID, func(c *claim.Claim) error {
		return c.Complete(adminID, s.clock.Now())
	})
}

// Cancel withdraws a claim at the requester's initiative
func (s *ClaimService) Cancel(ctx context.Context, claimID uuid.UUID) (*ClaimResponse, error) {
	return s.mutate(ctx, claimID, func(c *claim.Claim) error {
		return c.CancelByCustomer(s.clock.Now())
	})
}

// ScheduleReturnPickup books a carrier pickup for the return leg
func (s *ClaimService) ScheduleReturnPickup(ctx context.Context, claimID uuid.UUID, req SchedulePickupRequest) (*ClaimResponse, error) {
	return s.mutate(ctx, claimID, func(c *claim.Claim) error {
		return c.ScheduleReturnPickup(req.ScheduledAt, req.PickupAddress, req.CustomerPhone, s.clock.Now())
	})
}

// RegisterReturnShipping records the return parcel's tracking details
func (s *ClaimService) RegisterReturnShipping(ctx context.Context, claimID uuid.UUID, req RegisterReturnShippingRequest) (*ClaimResponse, error) {
	return s.mutate(ctx, claimID, func(c *claim.Claim) error {
		return c.RegisterReturnShipping(req.Method, req.TrackingNumber, req.Carrier, s.clock.Now())
	})
}

// UpdateReturnShippingStatus applies a carrier tracking webhook.
// Deliveries are at-least-once; a payload whose event id was already
// processed is acknowledged without touching the claim.
func (s *ClaimService) UpdateReturnShippingStatus(ctx context.Context, claimID uuid.UUID, req UpdateReturnShippingStatusRequest) (*ClaimResponse, error) {
	if req.EventID != "" && s.idempotency != nil && s.idemConfig.Enabled {
		fresh, err := s.idempotency.MarkProcessed(ctx, req.EventID, s.idemConfig.TTL)
		if err != nil {
			return nil, err
		}
		if !fresh {
			return s.GetByID(ctx, claimID)
		}
	}

	return s.mutate(ctx, claimID, func(c *claim.Claim) error {
		return c.UpdateReturnShippingStatus(req.CarrierStatus, req.TrackingNumber, s.clock.Now())
	})
}

// ConfirmReturnReceived records warehouse receipt and inspection outcome
func (s *ClaimService) ConfirmReturnReceived(ctx context.Context, claimID uuid.UUID, req ConfirmReturnReceivedRequest) (*ClaimResponse, error) {
	return s.mutate(ctx, claimID, func(c *claim.Claim) error {
		return c.ConfirmReturnReceived(req.InspectionResult, req.InspectionNote, s.clock.Now())
	})
}

// RegisterExchangeShipping records the replacement parcel's tracking details
func (s *ClaimService) RegisterExchangeShipping(ctx context.Context, claimID uuid.UUID, req RegisterExchangeShippingRequest) (*ClaimResponse, error) {
	return s.mutate(ctx, claimID, func(c *claim.Claim) error {
		return c.RegisterExchangeShipping(req.TrackingNumber, req.Carrier, s.clock.Now())
	})
}

// ConfirmExchangeDelivered records delivery of the replacement goods
func (s *ClaimService) ConfirmExchangeDelivered(ctx context.Context, claimID uuid.UUID) (*ClaimResponse, error) {
	return s.mutate(ctx, claimID, func(c *claim.Claim) error {
		return c.ConfirmExchangeDelivered(s.clock.Now())
	})
}

// mutate loads a claim, applies the transition and saves with optimistic
// locking
func (s *ClaimService) mutate(ctx context.Context, claimID uuid.UUID, fn func(*claim.Claim) error) (*ClaimResponse, error) {
	c, err := s.claimRepo.FindByID(ctx, claimID)
	if err != nil {
		return nil, err
	}

	if err := fn(c); err != nil {
		return nil, err
	}

	if err := s.claimRepo.SaveWithLock(ctx, c); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, c)

	response := ToClaimResponse(c)
	return &response, nil
}

func (s *ClaimService) publishEvents(ctx context.Context, c *claim.Claim) {
	if s.eventPublisher == nil {
		return
	}
	events := c.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// publish failures must not fail the committed operation
	_ = s.eventPublisher.Publish(ctx, events...)
	c.ClearDomainEvents()
}
