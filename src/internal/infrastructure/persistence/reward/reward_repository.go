package reward

import (
	"github.com/jackyeh168/club_ledger/src/internal/domain/reward"
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMRewardRepository 獎品目錄倉儲實現（GORM）
type GORMRewardRepository struct {
	db *gorm.DB
}

// NewRewardRepository 創建新的獎品倉儲實例
func NewRewardRepository(db *gorm.DB) *GORMRewardRepository {
	return &GORMRewardRepository{db: db}
}

// FindByID 依 ID 查找獎品
//
// 錯誤處理：
// - gorm.ErrRecordNotFound → reward.ErrRewardNotFound
// - 其他資料庫錯誤 → ErrUnavailable
func (r *GORMRewardRepository) FindByID(ctx shared.TransactionContext, id reward.RewardID) (reward.Reward, error) {
	db := persistence.GetDB(ctx, r.db)

	var model RewardGORM
	result := db.Where("reward_id = ?", id.Int64()).First(&model)
	if result.Error != nil {
		if persistence.IsRecordNotFound(result.Error) {
			return reward.Reward{}, reward.ErrRewardNotFound.WithContext("reward_id", id.Int64())
		}
		return reward.Reward{}, shared.WrapUnavailable("find reward", result.Error)
	}

	return model.toDomain()
}

// List 列出所有獎品（依 ID 排序）
func (r *GORMRewardRepository) List(ctx shared.TransactionContext) ([]reward.Reward, error) {
	db := persistence.GetDB(ctx, r.db)

	var models []RewardGORM
	if err := db.Order("reward_id ASC").Find(&models).Error; err != nil {
		return nil, shared.WrapUnavailable("list rewards", err)
	}

	rewards := make([]reward.Reward, 0, len(models))
	for i := range models {
		rw, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		rewards = append(rewards, rw)
	}
	return rewards, nil
}

// Upsert 新增或更新目錄項目（目錄匯入使用）
//
// 既有兌換交易保存的是名稱與扣點快照，目錄修改不影響歷史。
func (r *GORMRewardRepository) Upsert(ctx shared.TransactionContext, rewards ...reward.Reward) error {
	if len(rewards) == 0 {
		return nil
	}
	db := persistence.GetDB(ctx, r.db)

	models := make([]*RewardGORM, 0, len(rewards))
	for _, rw := range rewards {
		models = append(models, toGORM(rw))
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "reward_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "image_ref", "cost", "updated_at"}),
	}).Create(&models)
	if result.Error != nil {
		return shared.WrapUnavailable("upsert rewards", result.Error)
	}
	return nil
}
