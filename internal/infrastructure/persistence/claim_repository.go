package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/commerce/backoffice/internal/domain/claim"
	"github.com/commerce/backoffice/internal/domain/shared"
	"github.com/commerce/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormClaimRepository implements ClaimRepository using GORM
type GormClaimRepository struct {
	db *gorm.DB
}

// NewGormClaimRepository creates a new GormClaimRepository
func NewGormClaimRepository(db *gorm.DB) *GormClaimRepository {
	return &GormClaimRepository{db: db}
}

// FindByID finds a claim by its ID
func (r *GormClaimRepository) FindByID(ctx context.Context, id uuid.UUID) (*claim.Claim, error) {
	var model models.ClaimModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByClaimNumber finds a claim by its business number
func (r *GormClaimRepository) FindByClaimNumber(ctx context.Context, claimNumber string) (*claim.Claim, error) {
	var model models.ClaimModel
	if err := r.db.WithContext(ctx).
		Where("claim_number = ?", claimNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrder finds all claims filed against an order, newest first
func (r *GormClaimRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]claim.Claim, error) {
	var claimModels []models.ClaimModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC, id DESC").
		Find(&claimModels).Error; err != nil {
		return nil, err
	}
	return toDomainClaims(claimModels), nil
}

// FindByStatus finds all claims in the given status, newest first
func (r *GormClaimRepository) FindByStatus(ctx context.Context, status claim.ClaimStatus) ([]claim.Claim, error) {
	var claimModels []models.ClaimModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC, id DESC").
		Find(&claimModels).Error; err != nil {
		return nil, err
	}
	return toDomainClaims(claimModels), nil
}

// ExistsActiveByOrder reports whether the order already carries a claim
// in a non-terminal state. A whole-order claim conflicts with any active
// claim; an item-level claim conflicts with whole-order claims and with
// claims on the same item.
func (r *GormClaimRepository) ExistsActiveByOrder(ctx context.Context, orderID uuid.UUID, orderItemID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ClaimModel{}).
		Where("order_id = ? AND status IN ?", orderID, claim.ActiveStatuses())

	if orderItemID != nil {
		query = query.Where("order_item_id IS NULL OR order_item_id = ?", *orderItemID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Search lists claims matching the condition, newest first, using keyset
// pagination. One extra row beyond the limit is fetched so the service
// can detect whether a next page exists.
func (r *GormClaimRepository) Search(ctx context.Context, condition claim.SearchCondition) ([]claim.Claim, error) {
	query := r.applyCondition(r.db.WithContext(ctx).Model(&models.ClaimModel{}), condition)

	var claimModels []models.ClaimModel
	if err := query.
		Order("created_at DESC, id DESC").
		Limit(condition.Limit() + 1).
		Find(&claimModels).Error; err != nil {
		return nil, err
	}
	return toDomainClaims(claimModels), nil
}

// CountByStatus counts claims per status, optionally for one seller
func (r *GormClaimRepository) CountByStatus(ctx context.Context, sellerID *uuid.UUID) ([]claim.StatusCount, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ClaimModel{}).
		Select("status, COUNT(*) as count").
		Group("status")

	if sellerID != nil {
		query = query.Where("seller_id = ?", *sellerID)
	}

	var counts []claim.StatusCount
	if err := query.Order("status").Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// Save creates or updates a claim
func (r *GormClaimRepository) Save(ctx context.Context, c *claim.Claim) error {
	model := models.ClaimModelFromDomain(c)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a claim with optimistic locking. The version is
// compared and incremented inside one transaction; a mismatch means the
// claim changed under the caller.
func (r *GormClaimRepository) SaveWithLock(ctx context.Context, c *claim.Claim) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		if err := tx.Model(&models.ClaimModel{}).
			Where("id = ?", c.ID).
			Select("version").
			Take(&currentVersion).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if currentVersion != c.Version {
			return shared.ErrConcurrencyConflict
		}

		c.IncrementVersion()
		model := models.ClaimModelFromDomain(c)

		// Updates with a map so cleared and nullable columns are written
		result := tx.Model(&models.ClaimModel{}).
			Where("id = ? AND version = ?", c.ID, currentVersion).
			Updates(map[string]any{
				"status":                     model.Status,
				"reject_reason":              model.RejectReason,
				"refund_amount":              model.RefundAmount,
				"processed_by":               model.ProcessedBy,
				"approved_at":                model.ApprovedAt,
				"rejected_at":                model.RejectedAt,
				"completed_at":               model.CompletedAt,
				"cancelled_at":               model.CancelledAt,
				"return_status":              model.ReturnStatus,
				"return_method":              model.ReturnMethod,
				"return_scheduled_pickup_at": model.ReturnScheduledPickupAt,
				"return_pickup_address":      model.ReturnPickupAddress,
				"return_customer_phone":      model.ReturnCustomerPhone,
				"return_tracking_number":     model.ReturnTrackingNumber,
				"return_carrier":             model.ReturnCarrier,
				"return_last_carrier_status": model.ReturnLastCarrierStatus,
				"return_received_at":         model.ReturnReceivedAt,
				"return_inspection_result":   model.ReturnInspectionResult,
				"return_inspection_note":     model.ReturnInspectionNote,
				"exchange_status":            model.ExchangeStatus,
				"exchange_tracking_number":   model.ExchangeTrackingNumber,
				"exchange_carrier":           model.ExchangeCarrier,
				"exchange_shipped_at":        model.ExchangeShippedAt,
				"exchange_delivered_at":      model.ExchangeDeliveredAt,
				"version":                    model.Version,
				"updated_at":                 model.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return nil
	})
}

// ExistsByClaimNumber checks whether a claim number is already taken
func (r *GormClaimRepository) ExistsByClaimNumber(ctx context.Context, claimNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ClaimModel{}).
		Where("claim_number = ?", claimNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GenerateClaimNumber generates a unique claim number.
// Format: CLM-YYYY-NNNNN (e.g., CLM-2026-00001)
func (r *GormClaimRepository) GenerateClaimNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("CLM-%d-", year)

	var lastClaim models.ClaimModel
	err := r.db.WithContext(ctx).
		Model(&models.ClaimModel{}).
		Where("claim_number LIKE ?", prefix+"%").
		Order("claim_number DESC").
		First(&lastClaim).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastClaim.ClaimNumber != "" {
		parts := strings.Split(lastClaim.ClaimNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	claimNumber := fmt.Sprintf("%s%05d", prefix, nextNum)

	exists, err := r.ExistsByClaimNumber(ctx, claimNumber)
	if err != nil {
		return "", err
	}
	if exists {
		for i := 0; i < 100; i++ {
			nextNum++
			claimNumber = fmt.Sprintf("%s%05d", prefix, nextNum)
			exists, err = r.ExistsByClaimNumber(ctx, claimNumber)
			if err != nil {
				return "", err
			}
			if !exists {
				break
			}
		}
	}

	return claimNumber, nil
}

// applyCondition translates a SearchCondition into WHERE clauses.
// The keyset cursor orders by (created_at, id) descending, matching the
// Search ordering exactly so no row is skipped or repeated across pages.
func (r *GormClaimRepository) applyCondition(query *gorm.DB, condition claim.SearchCondition) *gorm.DB {
	if condition.SellerID != nil {
		query = query.Where("seller_id = ?", *condition.SellerID)
	}
	if condition.OrderID != nil {
		query = query.Where("order_id = ?", *condition.OrderID)
	}
	if condition.MemberID != nil {
		query = query.Where("member_id = ?", *condition.MemberID)
	}
	if condition.Type != nil {
		query = query.Where("claim_type = ?", *condition.Type)
	}
	if len(condition.Types) > 0 {
		query = query.Where("claim_type IN ?", condition.Types)
	}
	if condition.Status != nil {
		query = query.Where("status = ?", *condition.Status)
	}
	if len(condition.Statuses) > 0 {
		query = query.Where("status IN ?", condition.Statuses)
	}
	if condition.Keyword != "" {
		pattern := "%" + condition.Keyword + "%"
		query = query.Where("claim_number ILIKE ? OR reason ILIKE ?", pattern, pattern)
	}
	if condition.RequestedFrom != nil {
		query = query.Where("requested_at >= ?", *condition.RequestedFrom)
	}
	if condition.RequestedTo != nil {
		query = query.Where("requested_at <= ?", *condition.RequestedTo)
	}
	if condition.LastCreatedAt != nil && condition.LastClaimID != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			*condition.LastCreatedAt, *condition.LastCreatedAt, *condition.LastClaimID,
		)
	}
	return query
}

func toDomainClaims(claimModels []models.ClaimModel) []claim.Claim {
	claims := make([]claim.Claim, len(claimModels))
	for i := range claimModels {
		claims[i] = *claimModels[i].ToDomain()
	}
	return claims
}
