package subscription

import (
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
	"github.com/jackyeh168/club_ledger/src/internal/domain/subscription"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// GORMSubscriptionRepository 訂閱倉儲實現（GORM）
type GORMSubscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository 創建新的訂閱倉儲實例
func NewSubscriptionRepository(db *gorm.DB) subscription.SubscriptionRepository {
	return &GORMSubscriptionRepository{db: db}
}

// Save 保存新訂閱
func (r *GORMSubscriptionRepository) Save(ctx shared.TransactionContext, s *subscription.Subscription) error {
	db := persistence.GetDB(ctx, r.db)

	if err := db.Create(subscriptionToGORM(s)).Error; err != nil {
		return shared.WrapUnavailable("save subscription", err)
	}
	return nil
}

// FindByID 依 ID 查找訂閱
func (r *GORMSubscriptionRepository) FindByID(ctx shared.TransactionContext, id subscription.SubscriptionID) (*subscription.Subscription, error) {
	db := persistence.GetDB(ctx, r.db)

	var model SubscriptionGORM
	result := db.Where("subscription_id = ?", id.String()).First(&model)
	if result.Error != nil {
		if persistence.IsRecordNotFound(result.Error) {
			return nil, subscription.ErrSubscriptionNotFound.WithContext("subscription_id", id.String())
		}
		return nil, shared.WrapUnavailable("find subscription", result.Error)
	}
	return model.toDomain()
}

// FindByMemberID 列出會員的所有訂閱（依開始日排序）
func (r *GORMSubscriptionRepository) FindByMemberID(ctx shared.TransactionContext, memberID subscription.MemberID) ([]*subscription.Subscription, error) {
	db := persistence.GetDB(ctx, r.db)

	var models []SubscriptionGORM
	if err := db.Where("member_id = ?", memberID.String()).Order("start_date ASC").Find(&models).Error; err != nil {
		return nil, shared.WrapUnavailable("list subscriptions", err)
	}

	subs := make([]*subscription.Subscription, 0, len(models))
	for i := range models {
		s, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, nil
}

// Update 更新訂閱（樂觀鎖）
//
// 以載入時的版本作為條件，成功後版本加一；
// 沒有資料列被更新時區分「不存在」與「已被其他請求修改」。
func (r *GORMSubscriptionRepository) Update(ctx shared.TransactionContext, s *subscription.Subscription) error {
	db := persistence.GetDB(ctx, r.db)

	result := db.Model(&SubscriptionGORM{}).
		Where("subscription_id = ? AND version = ?", s.ID().String(), s.Version()).
		Updates(map[string]any{
			"plan_code":  s.PlanCode().String(),
			"cadence":    s.Cadence().String(),
			"start_date": s.Start().Time(),
			"updated_at": s.UpdatedAt(),
			"version":    gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return shared.WrapUnavailable("update subscription", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, s.ID()); err != nil {
			return err
		}
		return subscription.ErrSubscriptionConflict.WithContext(
			"subscription_id", s.ID().String(),
			"version", s.Version(),
		)
	}
	return nil
}
