package subscription

import (
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
	"github.com/jackyeh168/club_ledger/src/internal/domain/subscription"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMPlanRepository 方案目錄倉儲實現（GORM）
type GORMPlanRepository struct {
	db *gorm.DB
}

// NewPlanRepository 創建新的方案倉儲實例
func NewPlanRepository(db *gorm.DB) *GORMPlanRepository {
	return &GORMPlanRepository{db: db}
}

// FindByCode 依代碼查找方案
func (r *GORMPlanRepository) FindByCode(ctx shared.TransactionContext, code subscription.PlanCode) (subscription.Plan, error) {
	db := persistence.GetDB(ctx, r.db)

	var model PlanGORM
	result := db.Where("code = ?", code.String()).First(&model)
	if result.Error != nil {
		if persistence.IsRecordNotFound(result.Error) {
			return subscription.Plan{}, subscription.ErrPlanNotFound.WithContext("code", code.String())
		}
		return subscription.Plan{}, shared.WrapUnavailable("find plan", result.Error)
	}
	return model.toDomain()
}

// List 列出所有方案（依代碼排序）
func (r *GORMPlanRepository) List(ctx shared.TransactionContext) ([]subscription.Plan, error) {
	db := persistence.GetDB(ctx, r.db)

	var models []PlanGORM
	if err := db.Order("code ASC").Find(&models).Error; err != nil {
		return nil, shared.WrapUnavailable("list plans", err)
	}

	plans := make([]subscription.Plan, 0, len(models))
	for i := range models {
		plan, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// Upsert 新增或更新方案（目錄匯入使用）
//
// 既有訂閱保存的是週期快照，方案修改不影響已推導的到期日。
func (r *GORMPlanRepository) Upsert(ctx shared.TransactionContext, plans ...subscription.Plan) error {
	if len(plans) == 0 {
		return nil
	}
	db := persistence.GetDB(ctx, r.db)

	models := make([]*PlanGORM, 0, len(plans))
	for _, p := range plans {
		models = append(models, planToGORM(p))
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "cadence", "price", "currency", "updated_at"}),
	}).Create(&models)
	if result.Error != nil {
		return shared.WrapUnavailable("upsert plans", result.Error)
	}
	return nil
}
